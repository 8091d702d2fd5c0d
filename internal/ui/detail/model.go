package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/render"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// draftHeight is the number of text rows in the reply editor.
const draftHeight = 6

// BackMsg signals the parent to return focus to the email list.
type BackMsg struct{}

// ActionMsg signals the parent to run an agent action on the selected email.
type ActionMsg struct {
	Action Action
}

// Action identifies a detail panel action.
type Action string

const (
	ActionSummarize Action = "summarize"
	ActionSendReply Action = "send"
	ActionFollowUp  Action = "followup"
)

// Model is the email detail panel: header, summary, original text, the
// reply draft editor and the status banner.
type Model struct {
	session      *mailbox.Session
	keys         *keys.KeyMap
	viewport     viewport.Model
	draft        textarea.Model
	seeded       string // session draft last loaded into the editor
	spinner      spinner.Model
	editing      bool
	showOriginal bool
	width        int
	height       int
	now          func() time.Time
}

// New creates a new detail view model bound to the session.
func New(s *mailbox.Session, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, viewportHeight(height))
	vp.Style = lipgloss.NewStyle()

	ta := textarea.New()
	ta.Placeholder = "Write a reply, or press s to have the agent draft one..."
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetWidth(width - 4)
	ta.SetHeight(draftHeight)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		session:  s,
		keys:     k,
		viewport: vp,
		draft:    ta,
		spinner:  sp,
		width:    width,
		height:   height,
		now:      time.Now,
	}
}

func viewportHeight(total int) int {
	h := total - draftHeight - 4
	if h < 3 {
		h = 3
	}
	return h
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Editing reports whether the draft editor has focus.
func (m Model) Editing() bool {
	return m.editing
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.LoadingDetail {
			m.viewport.SetContent(m.renderContent())
		}
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKeys(msg)
		}
		return m.handleViewKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.draft.Blur()
		return m, nil

	case key.Matches(msg, m.keys.SendReply):
		return m, action(ActionSendReply)
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	m.session.Draft = m.draft.Value()
	m.seeded = m.session.Draft
	return m, cmd
}

func (m Model) handleViewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.session.Selected() == nil {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Summarize):
		return m, action(ActionSummarize)

	case key.Matches(msg, m.keys.SendReply):
		return m, action(ActionSendReply)

	case key.Matches(msg, m.keys.FollowUp):
		return m, action(ActionFollowUp)

	case key.Matches(msg, m.keys.EditDraft):
		m.editing = true
		cmd := m.draft.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleOriginal):
		m.showOriginal = !m.showOriginal
		m.viewport.SetContent(m.renderContent())
		return m, nil
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func action(a Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}

// Refresh re-renders the panel from the session and pulls the session's
// draft buffer into the editor when it changed. The editor normalizes what
// it is given, so the comparison is against the last loaded buffer.
func (m *Model) Refresh() {
	if m.session.Draft != m.seeded {
		m.draft.SetValue(m.session.Draft)
		m.seeded = m.session.Draft
	}
	m.viewport.SetContent(m.renderContent())
}

// Reset collapses the original text, leaves edit mode and scrolls to the top.
// It is called when a different email is opened.
func (m *Model) Reset() {
	m.editing = false
	m.showOriginal = false
	m.draft.Blur()
	m.Refresh()
	m.viewport.GotoTop()
}

// View renders the detail view.
func (m Model) View() string {
	e := m.session.Selected()
	if e == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Select an email to view details")
	}

	draftTitle := theme.SectionTitleStyle.Render("Reply Draft")
	if m.session.SendingReply {
		draftTitle += " " + m.spinner.View() + theme.MutedStyle.Render(" Sending...")
	}

	hints := "e edit • ctrl+s send • f follow-up"
	if m.editing {
		hints = "esc done • ctrl+s send"
	}

	draftBox := lipgloss.JoinVertical(lipgloss.Left,
		draftTitle,
		m.draft.View(),
		theme.HelpStyle.Render(hints),
	)

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), draftBox),
	)
}

// renderContent builds the scrollable part of the panel.
func (m Model) renderContent() string {
	e := m.session.Selected()
	if e == nil {
		return ""
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var sections []string

	// Header
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, wrap.Inherit(titleStyle).Render(e.Subject))
	badge := theme.CategoryStyle(string(e.Category)).Render(e.Category.Label())
	sections = append(sections, fmt.Sprintf("%s %s %s",
		render.Initials(e.Sender),
		lipgloss.NewStyle().Bold(true).Render(e.Sender),
		theme.MutedStyle.Render("<"+e.SenderEmail+">"),
	)+"  "+badge)
	sections = append(sections, theme.MutedStyle.Render(render.RelativeTime(e.Timestamp, m.now())))
	sections = append(sections, "")

	// Status banner
	if st := m.session.Status; st != nil {
		sections = append(sections, wrap.Inherit(theme.BannerStyle(string(st.Severity))).
			Render(bannerIcon(st.Severity)+" "+st.Text), "")
	}

	// Summary
	sections = append(sections, theme.SectionTitleStyle.Render("AI Summary"))
	switch {
	case m.session.LoadingDetail:
		sections = append(sections, m.spinner.View()+" Analyzing email and drafting reply...")
	case e.Summary != "":
		sections = append(sections, wrap.Render(render.Markdown(e.Summary)))
	default:
		sections = append(sections, theme.MutedStyle.Render(fmt.Sprintf(
			"Press s to summarize this thread and draft a %s reply.",
			strings.ToLower(m.session.Tone.Label()),
		)))
	}
	sections = append(sections, "")

	// Original email
	if m.showOriginal {
		sections = append(sections, theme.SectionTitleStyle.Render("▾ Original email"))
		sections = append(sections, wrap.Render(e.Preview))
	} else {
		sections = append(sections, theme.SectionTitleStyle.Render("▸ Original email")+
			theme.MutedStyle.Render("  (o to expand)"))
	}

	if e.ThreadID != "" {
		sections = append(sections, "", theme.MutedStyle.Render("Thread: "+e.ThreadID))
	}

	return strings.Join(sections, "\n")
}

func bannerIcon(s model.Severity) string {
	switch s {
	case model.SeveritySuccess:
		return "✓"
	case model.SeverityError:
		return "✗"
	default:
		return "ℹ"
	}
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 2
	m.viewport.Height = viewportHeight(height)
	m.draft.SetWidth(width - 4)
	m.viewport.SetContent(m.renderContent())
}

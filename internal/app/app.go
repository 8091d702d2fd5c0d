package app

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/store"
	"github.com/nhle/inbox-pilot/internal/theme"
	"github.com/nhle/inbox-pilot/internal/ui"
	"github.com/nhle/inbox-pilot/internal/ui/command"
	"github.com/nhle/inbox-pilot/internal/ui/detail"
	"github.com/nhle/inbox-pilot/internal/ui/followupform"
	"github.com/nhle/inbox-pilot/internal/ui/followups"
	helpview "github.com/nhle/inbox-pilot/internal/ui/help"
	"github.com/nhle/inbox-pilot/internal/ui/inbox"
	"github.com/nhle/inbox-pilot/internal/ui/sent"
	"github.com/nhle/inbox-pilot/internal/ui/settings"
)

// ViewState represents the overlay drawn over the main panels.
type ViewState int

const (
	ViewMain ViewState = iota
	ViewHelp
	ViewCommand
	ViewFollowUpForm
)

// focus tracks which inbox pane receives keys.
type focus int

const (
	focusList focus = iota
	focusDetail
)

// splitMinWidth is the content width at which the list and detail panes are
// shown side by side.
const splitMinWidth = 90

// Options configures the root model.
type Options struct {
	Agent   agent.Agent
	AgentID string
	// Backend is the human-readable name of the agent transport.
	Backend string
	// KeyName is the keyring entry holding the backend's API key.
	KeyName string
	// NewAgent rebuilds the agent after an API key is saved in settings.
	NewAgent func(apiKey string) (agent.Agent, error)
	Store    store.Store
	Prefs    model.Preferences
	Log      *zap.Logger
	Now      func() time.Time
}

// crashState is shared across model copies so View can record a panic.
type crashState struct {
	message string
}

// Model is the root Bubble Tea model that owns the session, routes keys to
// the active panel and runs agent calls.
type Model struct {
	currentView  ViewState
	previousView ViewState
	focus        focus
	layout       ui.Layout
	session      *mailbox.Session
	keys         *keys.KeyMap

	inbox        inbox.Model
	detail       detail.Model
	sentView     sent.Model
	followUps    followups.Model
	settingsView settings.Model
	helpView     helpview.Model
	commandView  command.Model
	followUpForm followupform.Model

	agent    agent.Agent
	newAgent func(apiKey string) (agent.Agent, error)
	agentID  string
	backend  string
	store    store.Store
	log      *zap.Logger
	now      func() time.Time

	// schedulingFollowUp is set while a calendar call is outstanding.
	schedulingFollowUp bool

	crash *crashState
	ready bool
}

// New creates the root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	s := mailbox.NewSession(opts.Prefs)

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	agentID := opts.AgentID
	if agentID == "" {
		agentID = model.DefaultAgentID
	}

	sv := settings.New(opts.Store, k, settings.AgentInfo{
		Agent:   opts.Agent,
		AgentID: agentID,
		Backend: opts.Backend,
		KeyName: opts.KeyName,
	}, 80, 24)
	sv.SetPreferences(opts.Prefs)

	return Model{
		currentView:  ViewMain,
		session:      s,
		keys:         k,
		inbox:        inbox.New(s, k, 80, 24),
		detail:       detail.New(s, k, 80, 24),
		sentView:     sent.New(s, 80, 24),
		followUps:    followups.New(s, k, 80, 24),
		settingsView: sv,
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		followUpForm: followupform.New(80, 24),
		agent:        opts.Agent,
		newAgent:     opts.NewAgent,
		agentID:      agentID,
		backend:      opts.Backend,
		store:        opts.Store,
		log:          log,
		now:          now,
		crash:        &crashState{},
	}
}

// Session exposes the page state, mainly for tests.
func (m Model) Session() *mailbox.Session {
	return m.session
}

// Init starts the spinners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.inbox.Init(),
		m.detail.Init(),
	)
}

// Update handles messages and dispatches to the active view. A panic is
// recovered and turned into the error screen.
func (m Model) Update(msg tea.Msg) (result tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.recordPanic("update", r)
			result, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		// Each spinner ignores ticks that carry another spinner's id.
		var c1, c2, c3 tea.Cmd
		m.inbox, c1 = m.inbox.Update(msg)
		m.detail, c2 = m.detail.Update(msg)
		m.settingsView, c3 = m.settingsView.Update(msg)
		return m, tea.Batch(c1, c2, c3)

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Agent results

	case syncResultMsg:
		m.session.FinishSync(msg.resp, msg.err)
		m.refreshAll()
		return m, nil

	case summarizeResultMsg:
		m.session.FinishSummarize(msg.emailID, msg.resp, msg.err)
		m.refreshAll()
		return m, nil

	case sendResultMsg:
		m.session.FinishSendReply(msg.email, msg.draft, msg.resp, msg.err, m.now())
		m.refreshAll()
		return m, nil

	case followUpResultMsg:
		m.schedulingFollowUp = false
		fu := m.session.ScheduleFollowUp(msg.email, msg.date, msg.clock, msg.note, msg.resp, msg.err)
		m.log.Info("follow-up recorded",
			zap.String("follow_up_id", fu.ID),
			zap.String("email_id", fu.EmailID),
			zap.String("date", fu.Date),
			zap.String("time", fu.Time),
		)
		m.refreshAll()
		return m, nil

	case preferenceSavedMsg:
		if msg.err != nil {
			m.log.Error("saving preference", zap.String("key", msg.key), zap.Error(msg.err))
		} else {
			m.log.Debug("preference saved", zap.String("key", msg.key))
		}
		return m, nil

	// Panel messages

	case inbox.SelectedEmailMsg:
		m.session.Select(msg.Email)
		m.focus = focusDetail
		m.detail.Reset()
		m.inbox.Refresh()
		return m, nil

	case inbox.FilterChangedMsg:
		return m, nil

	case detail.BackMsg:
		m.focus = focusList
		return m, nil

	case detail.ActionMsg:
		return m.handleAction(msg.Action)

	case followupform.SubmitMsg:
		m.currentView = ViewMain
		cmd := m.scheduleFollowUp(msg.Email, msg.Date, msg.Time, msg.Note)
		return m, cmd

	case followupform.CancelMsg:
		m.currentView = ViewMain
		m.schedulingFollowUp = false
		return m, nil

	case followups.OpenEmailMsg:
		if m.session.NavigateToEmail(msg.EmailID) {
			m.focus = focusDetail
			m.detail.Reset()
			m.refreshAll()
		}
		return m, nil

	case settings.PreferencesSavedMsg:
		m.applyPreferences(msg.Prefs)
		m.log.Info("preferences saved",
			zap.String("tone", string(msg.Prefs.Tone)),
			zap.String("follow_up_duration", string(msg.Prefs.FollowUpDuration)),
			zap.Bool("sample_data", msg.Prefs.SampleData),
		)
		return m, nil

	case settings.APIKeySavedMsg:
		m.replaceAgent(msg.Key)
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleKey routes a key press. Global shortcuts are skipped while a text
// field or form has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.crash.message != "" {
		if msg.String() == "r" {
			m.resetAfterCrash()
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
		}
		return m, nil

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil
		}
		return m.updateActiveView(msg)

	case ViewFollowUpForm:
		return m.updateActiveView(msg)
	}

	if m.capturing() {
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ViewInbox):
		m.switchView(model.ViewInbox)
		return m, nil

	case key.Matches(msg, m.keys.ViewSent):
		m.switchView(model.ViewSent)
		return m, nil

	case key.Matches(msg, m.keys.ViewFollowUps):
		m.switchView(model.ViewFollowUps)
		return m, nil

	case key.Matches(msg, m.keys.ViewSettings):
		m.switchView(model.ViewSettings)
		return m, nil

	case key.Matches(msg, m.keys.Sync):
		cmd := m.startSync()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleSample):
		cmd := m.setSampleData(!m.session.SampleData())
		return m, cmd
	}

	return m.updateActiveView(msg)
}

// capturing reports whether the focused panel owns all key input.
func (m Model) capturing() bool {
	switch m.session.View {
	case model.ViewInbox:
		if m.focus == focusDetail {
			return m.detail.Editing()
		}
		return m.inbox.Searching()
	case model.ViewSettings:
		return m.settingsView.Capturing()
	}
	return false
}

// handleAction runs a detail panel action against the selected email.
func (m Model) handleAction(a detail.Action) (tea.Model, tea.Cmd) {
	switch a {
	case detail.ActionSummarize:
		cmd := m.startSummarize()
		return m, cmd

	case detail.ActionSendReply:
		cmd := m.startSendReply()
		return m, cmd

	case detail.ActionFollowUp:
		cmd := m.openFollowUpForm()
		return m, cmd
	}
	return m, nil
}

// openFollowUpForm shows the scheduler for the selected email, pre-filled
// from the default follow-up duration.
func (m *Model) openFollowUpForm() tea.Cmd {
	sel := m.session.Selected()
	if sel == nil || m.schedulingFollowUp {
		return nil
	}
	date, clock := m.session.DefaultFollowUpDate(m.now())
	m.previousView = ViewMain
	m.currentView = ViewFollowUpForm
	return m.followUpForm.Start(*sel, date, clock)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd
	case ViewFollowUpForm:
		m.followUpForm, cmd = m.followUpForm.Update(msg)
		return m, cmd
	}

	switch m.session.View {
	case model.ViewInbox:
		if m.focus == focusDetail {
			m.detail, cmd = m.detail.Update(msg)
		} else {
			m.inbox, cmd = m.inbox.Update(msg)
		}
	case model.ViewSent:
		m.sentView, cmd = m.sentView.Update(msg)
	case model.ViewFollowUps:
		m.followUps, cmd = m.followUps.Update(msg)
	case model.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	return m, cmd
}

// replaceAgent rebuilds the agent with a newly saved API key.
func (m *Model) replaceAgent(apiKey string) {
	if m.newAgent == nil {
		return
	}
	a, err := m.newAgent(apiKey)
	if err != nil {
		m.log.Warn("rebuilding agent with new API key", zap.Error(err))
		return
	}
	m.agent = a
	m.settingsView.SetAgent(a)
	m.log.Info("agent rebuilt with new API key", zap.String("backend", m.backend))
}

// switchView changes the main panel.
func (m *Model) switchView(v model.View) {
	m.session.View = v
	if v == model.ViewInbox && m.session.Selected() == nil {
		m.focus = focusList
	}
	m.refreshAll()
}

// applyPreferences pushes saved settings into the session. Turning sample
// data on or off resets the selection.
func (m *Model) applyPreferences(p model.Preferences) {
	m.session.Tone = p.Tone
	m.session.Duration = p.FollowUpDuration
	if p.SampleData != m.session.SampleData() {
		m.session.SetSampleData(p.SampleData)
		m.focus = focusList
	}
	m.settingsView.SetPreferences(p)
	m.refreshAll()
}

// refreshAll re-renders every panel from the session.
func (m *Model) refreshAll() {
	m.inbox.Refresh()
	m.detail.Refresh()
	m.sentView.Refresh()
	m.followUps.Refresh()
}

// resize recomputes panel sizes from the layout.
func (m *Model) resize() {
	cw := m.layout.ContentWidth()
	ch := m.layout.ContentHeight()

	if m.split() {
		m.inbox.SetSize(m.layout.ListWidth(), ch)
		m.detail.SetSize(m.layout.DetailWidth(), ch)
	} else {
		m.inbox.SetSize(cw, ch)
		m.detail.SetSize(cw, ch)
	}
	m.sentView.SetSize(cw, ch)
	m.followUps.SetSize(cw, ch)
	m.settingsView.SetSize(cw, ch)
	m.helpView.SetSize(cw, ch)
	m.commandView.SetSize(cw, ch)
	m.followUpForm.SetSize(cw, ch)
}

func (m Model) split() bool {
	return m.layout.ContentWidth() >= splitMinWidth
}

// recordPanic logs a recovered panic and switches to the error screen.
func (m Model) recordPanic(where string, r any) {
	m.crash.message = fmt.Sprint(r)
	m.log.Error("recovered panic",
		zap.String("where", where),
		zap.String("panic", m.crash.message),
		zap.ByteString("stack", debug.Stack()),
	)
}

// resetAfterCrash returns to the inbox with a clean selection.
func (m *Model) resetAfterCrash() {
	m.crash.message = ""
	m.currentView = ViewMain
	m.focus = focusList
	m.session.View = model.ViewInbox
	m.session.ClearSelection()
	m.session.Status = nil
	m.detail.Reset()
	m.refreshAll()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() (out string) {
	if !m.ready {
		return "Loading..."
	}

	defer func() {
		if r := recover(); r != nil {
			m.recordPanic("view", r)
			out = m.renderCrash()
		}
	}()

	if m.crash.message != "" {
		return m.renderCrash()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.syncStatus())
	sidebar := m.layout.RenderSidebar(m.sidebarInfo())
	content := lipgloss.NewStyle().
		Width(m.layout.ContentWidth()).
		Height(m.layout.ContentHeight()).
		MaxHeight(m.layout.ContentHeight()).
		Render(m.renderContent())
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, sidebar, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewFollowUpForm:
		return m.followUpForm.View()
	}

	switch m.session.View {
	case model.ViewSent:
		return m.sentView.View()
	case model.ViewFollowUps:
		return m.followUps.View()
	case model.ViewSettings:
		return m.settingsView.View()
	}

	if m.split() {
		return m.layout.SplitPanes(m.inbox.View(), m.detail.View())
	}
	if m.focus == focusDetail {
		return m.detail.View()
	}
	return m.inbox.View()
}

func (m Model) renderCrash() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorRed).
		Render("Something went wrong")
	body := lipgloss.NewStyle().Width(m.layout.Width - 8).Render(m.crash.message)
	hint := theme.HelpStyle.Render("r reset | q quit")

	return lipgloss.NewStyle().
		Width(m.layout.Width).
		Height(m.layout.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", hint))
}

func (m Model) headerTitle() string {
	title := "InboxPilot · " + m.session.View.Title()
	if n := m.session.UnreadCount(); n > 0 {
		title = fmt.Sprintf("%s [%d unread]", title, n)
	}
	return title
}

// syncStatus returns a short string describing the agent and data state.
func (m Model) syncStatus() string {
	switch {
	case m.session.Syncing:
		return "syncing..."
	case m.session.LoadingDetail:
		return "summarizing..."
	case m.session.SendingReply:
		return "sending..."
	case m.schedulingFollowUp:
		return "scheduling..."
	case m.session.SampleData():
		return "sample data"
	default:
		return "live"
	}
}

func (m Model) busy() bool {
	return m.session.Syncing || m.session.LoadingDetail || m.session.SendingReply || m.schedulingFollowUp
}

func (m Model) sidebarInfo() ui.SidebarInfo {
	return ui.SidebarInfo{
		Active: m.session.View,
		Entries: []ui.NavEntry{
			{View: model.ViewInbox, Key: "1", Count: m.session.UnreadCount()},
			{View: model.ViewSent, Key: "2", Count: len(m.session.Sent())},
			{View: model.ViewFollowUps, Key: "3", Count: len(m.session.DisplayFollowUps())},
			{View: model.ViewSettings, Key: "4"},
		},
		AgentName: "Email Agent",
		Backend:   m.backend,
		Busy:      m.busy(),
	}
}

// statusLine shows the latest status message outside the detail panel, and
// keyboard hints otherwise.
func (m Model) statusLine() string {
	st := m.session.Status
	detailVisible := m.session.View == model.ViewInbox && (m.split() || m.focus == focusDetail) &&
		m.session.Selected() != nil
	if st != nil && m.currentView == ViewMain && !detailVisible {
		return st.Text
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewFollowUpForm:
		return "enter next | esc cancel"
	}

	switch m.session.View {
	case model.ViewSent:
		return "1-4 views | j/k move | ? help | q quit"
	case model.ViewFollowUps:
		return "enter open email | 1-4 views | ? help | q quit"
	case model.ViewSettings:
		return "enter edit | a API key | t test | 1-4 views"
	}

	if m.focus == focusDetail {
		if m.detail.Editing() {
			return "esc done | ctrl+s send"
		}
		return "s summarize | e edit | ctrl+s send | f follow-up | o original | esc back"
	}
	if m.inbox.Searching() {
		return "enter done | esc clear"
	}
	return "q quit | ? help | / search | tab category | S sync | D sample | : command"
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(input string) tea.Cmd {
	c, ok := command.Parse(input)
	if !ok {
		m.session.Status = model.Failure(fmt.Sprintf("Unknown command: %s", input))
		return nil
	}

	switch c.Name {
	case command.Sync:
		return m.startSync()
	case command.Sample:
		on := !m.session.SampleData()
		if len(c.Args) > 0 {
			switch c.Args[0] {
			case "on", "true", "yes":
				on = true
			case "off", "false", "no":
				on = false
			}
		}
		return m.setSampleData(on)
	case command.Inbox:
		m.switchView(model.ViewInbox)
	case command.Sent:
		m.switchView(model.ViewSent)
	case command.FollowUps:
		m.switchView(model.ViewFollowUps)
	case command.Settings:
		m.switchView(model.ViewSettings)
	case command.Summarize:
		return m.startSummarize()
	case command.Send:
		return m.startSendReply()
	case command.FollowUp:
		return m.openFollowUpForm()
	case command.Quit:
		return tea.Quit
	}
	return nil
}

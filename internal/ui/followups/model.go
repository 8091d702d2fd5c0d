// Package followups renders scheduled follow-up reminders.
package followups

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/render"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// OpenEmailMsg asks the app to open the email a follow-up refers to.
type OpenEmailMsg struct {
	EmailID string
}

// Item wraps a follow-up for the list.
type Item struct {
	FollowUp model.FollowUp
}

// FilterValue returns the string used for list filtering.
func (i Item) FilterValue() string { return i.FollowUp.Subject }

type delegate struct{}

func (d delegate) Height() int                             { return 3 }
func (d delegate) Spacing() int                            { return 1 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	f := it.FollowUp

	statusStyle := lipgloss.NewStyle().Foreground(theme.ColorYellow)
	if f.Status == model.FollowUpCompleted {
		statusStyle = lipgloss.NewStyle().Foreground(theme.ColorGreen)
	}

	line1 := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Bold(true).Render(f.Subject),
		statusStyle.Render(string(f.Status)))
	line2 := "⏰ " + render.FollowUpWhen(f.Date, f.Time)
	line3 := theme.MutedStyle.Render(f.Note)

	row := line1 + "\n" + line2 + "\n" + line3
	if index == m.Index() {
		row = theme.SelectedItemStyle.Render(row)
	} else {
		row = theme.ListItemStyle.Render(row)
	}
	fmt.Fprint(w, row)
}

// Model is the follow-ups panel.
type Model struct {
	list    list.Model
	session *mailbox.Session
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates a follow-ups panel bound to the session.
func New(s *mailbox.Session, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, delegate{}, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := Model{list: l, session: s, keys: k, width: width, height: height}
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles navigation and opening the referenced email.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		item, ok := m.list.SelectedItem().(Item)
		if !ok {
			return m, nil
		}
		id := item.FollowUp.EmailID
		return m, func() tea.Msg { return OpenEmailMsg{EmailID: id} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Refresh reloads the list from the session.
func (m *Model) Refresh() {
	fus := m.session.DisplayFollowUps()
	items := make([]list.Item, len(fus))
	for i, f := range fus {
		items[i] = Item{FollowUp: f}
	}
	m.list.SetItems(items)
}

// View renders the panel.
func (m Model) View() string {
	title := lipgloss.NewStyle().Padding(0, 1).
		Render(theme.SectionTitleStyle.Render(fmt.Sprintf("Follow-ups (%d)", len(m.list.Items()))))

	var body string
	if len(m.list.Items()) == 0 {
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(m.height-2).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No follow-ups scheduled.\nOpen an email and press f to schedule one.")
	} else {
		body = m.list.View()
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

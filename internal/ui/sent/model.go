// Package sent renders the replies sent during this session.
package sent

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/render"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// Item wraps a sent reply for the list.
type Item struct {
	Email model.Email
}

// FilterValue returns the string used for list filtering.
func (i Item) FilterValue() string { return i.Email.Subject }

// Body returns the reply text, falling back to the original preview.
func (i Item) Body() string {
	if strings.TrimSpace(i.Email.DraftReply) != "" {
		return i.Email.DraftReply
	}
	return i.Email.Preview
}

type delegate struct {
	now func() time.Time
}

func (d delegate) Height() int                             { return 3 }
func (d delegate) Spacing() int                            { return 1 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	e := it.Email

	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	to := lipgloss.NewStyle().Bold(true).Render("To: " + e.Sender)
	line1 := fmt.Sprintf("%s  %s", to, theme.MutedStyle.Render(render.RelativeTime(e.Timestamp, now)))
	line2 := "Re: " + e.Subject

	width := m.Width() - 6
	body := strings.Join(strings.Fields(it.Body()), " ")
	if width > 10 {
		body = truncate(body, width)
	}
	line3 := theme.MutedStyle.Render(body)

	row := line1 + "\n" + line2 + "\n" + line3
	if index == m.Index() {
		row = theme.SelectedItemStyle.Render(row)
	} else {
		row = theme.ListItemStyle.Render(row)
	}
	fmt.Fprint(w, row)
}

// Model is the sent-replies panel.
type Model struct {
	list    list.Model
	session *mailbox.Session
	width   int
	height  int
}

// New creates a sent panel bound to the session.
func New(s *mailbox.Session, width, height int) Model {
	l := list.New([]list.Item{}, delegate{}, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := Model{list: l, session: s, width: width, height: height}
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update delegates navigation to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Refresh reloads the list from the session.
func (m *Model) Refresh() {
	sent := m.session.Sent()
	items := make([]list.Item, len(sent))
	for i, e := range sent {
		items[i] = Item{Email: e}
	}
	m.list.SetItems(items)
}

// View renders the panel.
func (m Model) View() string {
	title := lipgloss.NewStyle().Padding(0, 1).
		Render(theme.SectionTitleStyle.Render(fmt.Sprintf("Sent (%d)", len(m.list.Items()))))

	var body string
	if len(m.list.Items()) == 0 {
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(m.height-2).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No sent replies yet.\nReplies you send from an email appear here.")
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

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

package inbox

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/render"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// EmailItem wraps a model.Email so it can be used in a bubbles/list.
type EmailItem struct {
	Email model.Email
}

// FilterValue returns the string used for list filtering.
func (i EmailItem) FilterValue() string { return i.Email.Subject }

// Title returns the email subject for the list.
func (i EmailItem) Title() string { return i.Email.Subject }

// Description returns the sender line for the list.
func (i EmailItem) Description() string { return i.Email.Sender }

// ItemDelegate implements list.ItemDelegate for rendering inbox rows.
type ItemDelegate struct {
	// now is overridable so rendering is deterministic in tests.
	now func() time.Time
	// selectedID marks the email open in the detail panel.
	selectedID *string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a two-line inbox row: sender and time, then subject and
// category badge.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(EmailItem)
	if !ok {
		return
	}
	e := ei.Email
	isCursor := index == m.Index()

	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	marker := statusMarker(e.Status)
	avatar := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).
		Render(fmt.Sprintf("%-2s", render.Initials(e.Sender)))

	senderStyle := lipgloss.NewStyle()
	if e.Status == model.EmailStatusUnread {
		senderStyle = senderStyle.Bold(true)
	}
	if d.selectedID != nil && *d.selectedID == e.ID {
		senderStyle = senderStyle.Underline(true)
	}
	timeStr := theme.MutedStyle.Render(render.RelativeTime(e.Timestamp, now))

	line1 := fmt.Sprintf("%s %s %s  %s", marker, avatar, senderStyle.Render(e.Sender), timeStr)

	width := m.Width() - 6
	subject := e.Subject
	if width > 10 && lipgloss.Width(subject) > width-12 {
		subject = truncate(subject, width-12)
	}
	badge := theme.CategoryStyle(string(e.Category)).Render(e.Category.Label())
	line2 := fmt.Sprintf("     %s %s", subject, badge)

	row := line1 + "\n" + line2
	if isCursor {
		row = theme.SelectedItemStyle.Render(row)
	} else {
		row = theme.ListItemStyle.Render(row)
	}

	fmt.Fprint(w, row)
}

// statusMarker returns the one-character indicator for an email status.
func statusMarker(s model.EmailStatus) string {
	style := theme.EmailStatusStyle(string(s))
	switch s {
	case model.EmailStatusUnread:
		return style.Render("●")
	case model.EmailStatusReplied:
		return style.Render("↩")
	case model.EmailStatusFollowUp:
		return style.Render("⚑")
	default:
		return " "
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// sidebarWidth is the fixed width of the navigation column, border included.
const sidebarWidth = 26

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// SidebarWidth returns the navigation column width, or zero on terminals
// too narrow to show it.
func (l Layout) SidebarWidth() int {
	if l.Width < 80 {
		return 0
	}
	return sidebarWidth
}

// ContentWidth returns the width left for the main panel.
func (l Layout) ContentWidth() int {
	return l.Width - l.SidebarWidth()
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// ListWidth returns the width of the email list when it shares the content
// area with the detail panel.
func (l Layout) ListWidth() int {
	w := l.ContentWidth() * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

// DetailWidth returns the width of the email detail panel.
func (l Layout) DetailWidth() int {
	w := l.ContentWidth() - l.ListWidth()
	if w < 0 {
		w = 0
	}
	return w
}

// RenderHeader renders the top header bar with a title and sync status.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(syncStatus)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// NavEntry is one row of the sidebar navigation.
type NavEntry struct {
	View  model.View
	Key   string
	Count int
}

// SidebarInfo is what the sidebar shows besides navigation.
type SidebarInfo struct {
	Active    model.View
	Entries   []NavEntry
	AgentName string
	Backend   string
	Busy      bool
}

// RenderSidebar renders the navigation column.
func (l Layout) RenderSidebar(info SidebarInfo) string {
	w := l.SidebarWidth()
	if w == 0 {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render("InboxPilot")
	subtitle := theme.MutedStyle.Render("AI Email Assistant")

	var nav []string
	for _, e := range info.Entries {
		label := fmt.Sprintf("%s %s", e.Key, e.View.Title())
		if e.Count > 0 {
			label += theme.MutedStyle.Render(fmt.Sprintf(" (%d)", e.Count))
		}
		if e.View == info.Active {
			nav = append(nav, theme.SelectedItemStyle.Render(label))
		} else {
			nav = append(nav, theme.ListItemStyle.Render(label))
		}
	}

	dot := theme.MutedStyle.Render("○ idle")
	if info.Busy {
		dot = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("● working")
	}
	agent := lipgloss.JoinVertical(lipgloss.Left,
		theme.SectionTitleStyle.Render(info.AgentName),
		theme.MutedStyle.Width(w-4).Render("Powered by "+info.Backend+" with Gmail and Calendar tools"),
		dot,
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		strings.Join(nav, "\n"),
		"",
		agent,
	)

	return theme.SidebarStyle.
		Width(w - 1).
		Height(l.ContentHeight()).
		Render(body)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar. The sidebar is placed left of
// the content when present.
func (l Layout) RenderWithFrame(
	header string,
	sidebar string,
	content string,
	statusBar string,
) string {
	if sidebar != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// SplitPanes places the list and detail panels side by side.
func (l Layout) SplitPanes(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

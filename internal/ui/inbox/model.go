package inbox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// SelectedEmailMsg is sent when the user opens an email.
type SelectedEmailMsg struct {
	Email model.Email
}

// FilterChangedMsg is sent when the search query or category chip changes.
type FilterChangedMsg struct{}

// Model is the inbox list with its search bar and category chips.
type Model struct {
	list        list.Model
	session     *mailbox.Session
	keys        *keys.KeyMap
	selectedID  *string
	searchMode  bool
	searchInput textinput.Model
	spinner     spinner.Model
	width       int
	height      int
}

// New creates a new inbox model bound to the session.
func New(s *mailbox.Session, k *keys.KeyMap, width, height int) Model {
	selectedID := new(string)
	l := list.New([]list.Item{}, ItemDelegate{selectedID: selectedID}, width, height-4)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search sender, subject, preview..."
	si.Prompt = "/ "
	si.Width = width - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	m := Model{
		list:        l,
		session:     s,
		keys:        k,
		selectedID:  selectedID,
		searchInput: si,
		spinner:     sp,
		width:       width,
		height:      height,
	}
	m.Refresh()
	return m
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Update handles messages for the inbox view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode. The filter is
// applied as the user types.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.session.Filter.Query = ""
		m.Refresh()
		return m, filterChanged
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.session.Filter.Query {
		m.session.Filter.Query = q
		m.Refresh()
		return m, tea.Batch(cmd, filterChanged)
	}
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(EmailItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedEmailMsg{Email: item.Email}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.session.Filter.Query)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleCategory):
		m.session.Filter.Category = mailbox.NextCategory(m.session.Filter.Category)
		m.Refresh()
		return m, filterChanged
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func filterChanged() tea.Msg { return FilterChangedMsg{} }

// Refresh reloads the list from the session's filtered emails, keeping the
// cursor on the same email when it is still visible.
func (m *Model) Refresh() {
	var cursorID string
	if item, ok := m.list.SelectedItem().(EmailItem); ok {
		cursorID = item.Email.ID
	}

	emails := m.session.FilteredEmails()
	items := make([]list.Item, len(emails))
	cursor := 0
	for i, e := range emails {
		items[i] = EmailItem{Email: e}
		if e.ID == cursorID {
			cursor = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(cursor)
	}

	*m.selectedID = ""
	if sel := m.session.Selected(); sel != nil {
		*m.selectedID = sel.ID
	}
}

// View renders the inbox view.
func (m Model) View() string {
	parts := []string{m.renderChips()}

	if m.searchMode || m.session.Filter.Query != "" {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		if !m.searchMode {
			searchBar = lipgloss.NewStyle().Padding(0, 1).
				Render(theme.MutedStyle.Render("/ " + m.session.Filter.Query))
		}
		parts = append(parts, searchBar)
	}

	if m.session.Syncing {
		parts = append(parts, lipgloss.NewStyle().Padding(0, 1).
			Render(m.spinner.View()+" "+m.session.SyncStatus))
	}

	if len(m.list.Items()) == 0 {
		parts = append(parts, m.renderEmptyState())
	} else {
		parts = append(parts, m.list.View())
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderChips draws the category filter row.
func (m Model) renderChips() string {
	var chips []string
	for _, c := range mailbox.CategoryCycle() {
		label := "All"
		if c != model.CategoryAll {
			label = model.Category(c).Label()
		}
		if c == m.session.Filter.Category {
			chips = append(chips, theme.CategoryStyle(c).Reverse(true).Render(label))
		} else {
			chips = append(chips, theme.MutedStyle.Padding(0, 1).Render(label))
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(chips, ""))
}

// renderEmptyState shows guidance text when no emails are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 4).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.session.Filter.Query != "" || m.session.Filter.Category != model.CategoryAll {
		return style.Render("No matching emails.\nTry adjusting your search or category.")
	}

	return style.Render(
		"No emails yet.\n\n" +
			"Press S to sync your inbox,\nor D to explore with sample data.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	m.searchInput.Width = width - 4
}

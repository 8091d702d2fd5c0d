package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/theme"
)

// Name identifies a palette command.
type Name string

const (
	Sync      Name = "sync"
	Sample    Name = "sample"
	Inbox     Name = "inbox"
	Sent      Name = "sent"
	FollowUps Name = "followups"
	Settings  Name = "settings"
	Summarize Name = "summarize"
	Send      Name = "send"
	FollowUp  Name = "followup"
	Quit      Name = "quit"
)

// Entry describes a command for the palette hint and the help overlay.
type Entry struct {
	Name        Name
	Usage       string
	Description string
	Aliases     []string
}

// Commands lists every command the palette understands.
var Commands = []Entry{
	{Sync, "sync", "Fetch the latest emails", []string{"refresh"}},
	{Sample, "sample [on|off]", "Toggle sample data", nil},
	{Inbox, "inbox", "Show the inbox", nil},
	{Sent, "sent", "Show sent replies", nil},
	{FollowUps, "followups", "Show scheduled follow-ups", []string{"fu"}},
	{Settings, "settings", "Open settings", []string{"prefs"}},
	{Summarize, "summarize", "Summarize the selected email", []string{"sum"}},
	{Send, "send", "Send the current draft", nil},
	{FollowUp, "followup", "Schedule a follow-up", nil},
	{Quit, "quit", "Exit", []string{"q", "exit"}},
}

// Command is a parsed palette entry.
type Command struct {
	Name Name
	Args []string
}

// Parse resolves input to a known command. Matching is case-insensitive and
// honors aliases.
func Parse(input string) (Command, bool) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, false
	}
	word := fields[0]
	for _, c := range Commands {
		if string(c.Name) == word {
			return Command{Name: c.Name, Args: fields[1:]}, true
		}
		for _, a := range c.Aliases {
			if a == word {
				return Command{Name: c.Name, Args: fields[1:]}, true
			}
		}
	}
	return Command{}, false
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "sync, sample on, followups..."
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = string(c.Name)
	}
	hint := theme.HelpStyle.Render(strings.Join(names, " · "))

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

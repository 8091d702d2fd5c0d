package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/credential"
	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/store"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// Mode represents the current state of the settings view.
type Mode int

const (
	ModeOverview       Mode = iota // Current preferences
	ModeForm                       // Preferences form
	ModeAPIKey                     // API key entry
	ModeValidating                 // Testing the agent connection
	ModeValidateResult             // Show validation result
)

// PreferencesSavedMsg signals that preferences were persisted.
type PreferencesSavedMsg struct {
	Prefs model.Preferences
}

// ValidateResultMsg carries the result of an agent connection test.
type ValidateResultMsg struct {
	Message string
	Err     error
}

// APIKeySavedMsg signals that a new API key was written to the keyring so
// the agent can be rebuilt with it.
type APIKeySavedMsg struct {
	Key string
}

// prefsSavedInternalMsg is sent after preferences are persisted.
type prefsSavedInternalMsg struct {
	prefs model.Preferences
	err   error
}

// keySavedInternalMsg is sent after the API key is written to the keyring.
type keySavedInternalMsg struct {
	key string
	err error
}

// AgentInfo describes the configured agent for display and connection tests.
type AgentInfo struct {
	Agent   agent.Agent
	AgentID string
	Backend string
	// KeyName is the keyring entry the backend reads its API key from.
	KeyName string
}

// Model is the Bubble Tea model for the settings view.
type Model struct {
	mode  Mode
	store store.Store
	keys  *keys.KeyMap
	info  AgentInfo
	prefs model.Preferences

	form    *huh.Form
	keyForm *huh.Form

	// Form field values (huh binds to these). Held on the heap so the
	// pointers survive model copies.
	fb *formBindings

	validResult string
	validError  error
	spinner     spinner.Model

	// Status message for transient feedback
	statusMsg string

	width, height int
}

type formBindings struct {
	tone       string
	duration   string
	sampleData bool
	apiKey     string
}

// New creates a new settings view model.
func New(s store.Store, k *keys.KeyMap, info AgentInfo, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:    ModeOverview,
		store:   s,
		keys:    k,
		info:    info,
		prefs:   model.DefaultPreferences(),
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetPreferences updates the preferences shown in the overview.
func (m *Model) SetPreferences(p model.Preferences) {
	m.prefs = p
}

// SetAgent replaces the agent used for connection tests.
func (m *Model) SetAgent(a agent.Agent) {
	m.info.Agent = a
}

// Capturing reports whether a form currently owns keyboard input.
func (m Model) Capturing() bool {
	return m.mode == ModeForm || m.mode == ModeAPIKey
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsSavedInternalMsg:
		m.mode = ModeOverview
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		m.prefs = msg.prefs
		m.statusMsg = "Settings saved"
		prefs := msg.prefs
		return m, func() tea.Msg { return PreferencesSavedMsg{Prefs: prefs} }

	case keySavedInternalMsg:
		m.mode = ModeOverview
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving API key: %v", msg.err)
			return m, nil
		}
		m.statusMsg = "API key saved to the system keyring"
		saved := msg.key
		return m, func() tea.Msg { return APIKeySavedMsg{Key: saved} }

	case ValidateResultMsg:
		m.validResult = msg.Message
		m.validError = msg.Err
		m.mode = ModeValidateResult
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Delegate to active form
	return m.updateActiveForm(msg)
}

// handleKeyMsg processes key messages based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeOverview:
		return m.handleOverviewKeys(msg)
	case ModeForm:
		return m.updatePrefsForm(msg)
	case ModeAPIKey:
		return m.updateKeyForm(msg)
	case ModeValidateResult:
		switch msg.String() {
		case "enter", "esc":
			m.mode = ModeOverview
			m.validResult = ""
			m.validError = nil
		}
		return m, nil
	case ModeValidating:
		// Only allow escape during validation
		if msg.String() == "esc" {
			m.mode = ModeOverview
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleOverviewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select), msg.String() == "e":
		m.fb.tone = string(m.prefs.Tone)
		m.fb.duration = string(m.prefs.FollowUpDuration)
		m.fb.sampleData = m.prefs.SampleData
		m.form = m.buildPrefsForm()
		m.mode = ModeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case msg.String() == "a":
		m.fb.apiKey = ""
		m.keyForm = m.buildKeyForm()
		m.mode = ModeAPIKey
		m.statusMsg = ""
		return m, m.keyForm.Init()

	case msg.String() == "t":
		if m.info.Agent == nil {
			m.statusMsg = "No agent configured"
			return m, nil
		}
		m.mode = ModeValidating
		return m, tea.Batch(m.spinner.Tick, m.validateAgent())
	}
	return m, nil
}

// updateActiveForm dispatches non-key messages to the currently active form.
func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeForm:
		return m.updatePrefsForm(msg)
	case ModeAPIKey:
		return m.updateKeyForm(msg)
	}
	return m, nil
}

// --- Preferences form ---

func (m *Model) buildPrefsForm() *huh.Form {
	toneOpts := make([]huh.Option[string], len(model.Tones))
	for i, t := range model.Tones {
		toneOpts[i] = huh.NewOption(t.Label(), string(t))
	}
	durOpts := make([]huh.Option[string], len(model.FollowUpDurations))
	for i, d := range model.FollowUpDurations {
		durOpts[i] = huh.NewOption(d.Label(), string(d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reply Tone").
				Description("Tone of AI-drafted replies").
				Options(toneOpts...).
				Value(&m.fb.tone),
			huh.NewSelect[string]().
				Title("Default Follow-up Duration").
				Description("Pre-fills the follow-up scheduler").
				Options(durOpts...).
				Value(&m.fb.duration),
			huh.NewConfirm().
				Title("Sample Data").
				Description("Show demo emails and follow-ups instead of your inbox").
				Affirmative("On").
				Negative("Off").
				Value(&m.fb.sampleData),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updatePrefsForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		prefs := model.Preferences{
			Tone:             model.Tone(m.fb.tone),
			FollowUpDuration: model.FollowUpDuration(m.fb.duration),
			SampleData:       m.fb.sampleData,
		}
		return m, m.savePreferences(prefs)
	}
	if m.form.State == huh.StateAborted {
		m.mode = ModeOverview
		return m, nil
	}

	return m, cmd
}

// --- API key form ---

func (m *Model) buildKeyForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API Key").
				Description(fmt.Sprintf("Stored in the system keyring as %q", m.info.KeyName)).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.apiKey).
				Validate(validateRequired("API key")),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateKeyForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.keyForm == nil {
		return m, nil
	}

	mdl, cmd := m.keyForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.keyForm = f
	}

	if m.keyForm.State == huh.StateCompleted {
		return m, m.saveAPIKey(strings.TrimSpace(m.fb.apiKey))
	}
	if m.keyForm.State == huh.StateAborted {
		m.mode = ModeOverview
		return m, nil
	}

	return m, cmd
}

// --- View ---

// View renders the settings UI based on the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeForm:
		return m.viewForm(m.form)
	case ModeAPIKey:
		return m.viewForm(m.keyForm)
	case ModeValidating:
		return m.viewValidating()
	case ModeValidateResult:
		return m.viewValidateResult()
	default:
		return m.viewOverview()
	}
}

func (m Model) viewOverview() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Width(28).Foreground(theme.ColorGray)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	sample := "Off"
	if m.prefs.SampleData {
		sample = "On"
	}
	rows := [][2]string{
		{"Reply Tone", m.prefs.Tone.Label()},
		{"Default Follow-up Duration", m.prefs.FollowUpDuration.Label()},
		{"Sample Data", sample},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]) + r[1] + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.SectionTitleStyle.Render("Category Priority"))
	b.WriteString("\n")
	for i, c := range model.CategoryPriority {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, theme.CategoryStyle(string(c)).Render(c.Label())))
	}

	b.WriteString("\n")
	b.WriteString(theme.SectionTitleStyle.Render("Agent"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Backend") + m.info.Backend + "\n")
	b.WriteString(labelStyle.Render("Agent ID") + m.info.AgentID + "\n")

	if m.statusMsg != "" {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Italic(true)
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	hintStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	b.WriteString(hintStyle.Render(
		"enter/e edit | a set API key | t test agent",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(f.View())
}

func (m Model) viewValidating() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	content := fmt.Sprintf(
		"%s Contacting agent...\n\nPress esc to cancel.",
		m.spinner.View(),
	)

	return style.Render(content)
}

func (m Model) viewValidateResult() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	var content string
	if m.validError != nil {
		errStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorRed)
		content = errStyle.Render("Agent unreachable") + "\n\n" +
			m.validError.Error() + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back")
	} else {
		okStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen)
		msg := m.validResult
		if msg == "" {
			msg = "OK"
		}
		content = okStyle.Render("Agent responded") + "\n\n" +
			msg + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorGray).
				Render("enter/esc back")
	}

	return style.Render(content)
}

// --- Helpers ---

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// savePreferences returns a command that persists preferences to the store.
func (m Model) savePreferences(p model.Preferences) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if s == nil {
			return prefsSavedInternalMsg{prefs: p}
		}
		err := s.SavePreferences(context.Background(), p)
		return prefsSavedInternalMsg{prefs: p, err: err}
	}
}

// saveAPIKey returns a command that writes the API key to the keyring.
func (m Model) saveAPIKey(value string) tea.Cmd {
	name := m.info.KeyName
	return func() tea.Msg {
		return keySavedInternalMsg{key: value, err: credential.Set(name, value)}
	}
}

// validateAgent sends a trivial instruction to check the agent answers.
func (m Model) validateAgent() tea.Cmd {
	a := m.info.Agent
	id := m.info.AgentID
	return func() tea.Msg {
		resp, err := a.Call(context.Background(), agent.PingPrompt(), id)
		if err != nil {
			return ValidateResultMsg{Err: err}
		}
		if resp == nil || !resp.Success {
			msg := "agent reported failure"
			if resp != nil && resp.Error != "" {
				msg = resp.Error
			}
			return ValidateResultMsg{Err: errors.New(msg)}
		}
		return ValidateResultMsg{Message: resp.Result.First("message", "status")}
	}
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

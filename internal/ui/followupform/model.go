package followupform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/theme"
)

// SubmitMsg is dispatched when the user schedules a follow-up.
type SubmitMsg struct {
	Email model.Email
	Date  string
	Time  string
	Note  string
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date string
	time string
	note string
}

// Model is the Bubble Tea model for the follow-up scheduler.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	email  model.Email
	width  int
	height int
}

// New creates a new follow-up form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for email with the given initial date and time.
func (m *Model) Start(email model.Email, date, clock string) tea.Cmd {
	m.email = email
	m.fb.date = date
	m.fb.time = clock
	m.fb.note = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the follow-up form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the follow-up form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	content := titleStyle.Render("Schedule Follow-up") + "\n" +
		theme.MutedStyle.Render(m.email.Subject) + "\n\n" +
		m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM").
				Value(&m.fb.time).
				Validate(validateTime),
			huh.NewInput().
				Title("Note (optional)").
				Placeholder("e.g., Check if issue was resolved").
				Value(&m.fb.note),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Email: m.email,
		Date:  strings.TrimSpace(m.fb.date),
		Time:  strings.TrimSpace(m.fb.time),
		Note:  strings.TrimSpace(m.fb.note),
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("time is required")
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

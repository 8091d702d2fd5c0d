package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/ui/command"
	"github.com/nhle/inbox-pilot/internal/ui/followupform"
	"github.com/nhle/inbox-pilot/internal/ui/settings"
	"github.com/nhle/inbox-pilot/tests/testutil"
)

// scriptedAgent returns canned replies in order and records instructions.
type scriptedAgent struct {
	replies      []*agent.Response
	err          error
	instructions []string
}

func (a *scriptedAgent) Call(_ context.Context, instruction, _ string) (*agent.Response, error) {
	a.instructions = append(a.instructions, instruction)
	if a.err != nil {
		return nil, a.err
	}
	if len(a.replies) == 0 {
		return &agent.Response{Success: true, Result: agent.Result{"status": "success"}}, nil
	}
	r := a.replies[0]
	a.replies = a.replies[1:]
	return r, nil
}

func newTestModel(t *testing.T, a agent.Agent, prefs model.Preferences) Model {
	t.Helper()
	m := New(Options{
		Agent:   a,
		Backend: "test",
		Prefs:   prefs,
		Now:     func() time.Time { return time.Date(2025, 2, 22, 12, 0, 0, 0, time.UTC) },
	})
	m, _ = send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = send(m, cmd())
	return m
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestSyncReplacesInbox(t *testing.T) {
	a := &scriptedAgent{replies: []*agent.Response{{
		Success: true,
		Result: agent.Result{
			"message": "Fetched 2 emails",
			"emails": []any{
				map[string]any{"sender": "Ada", "sender_email": "ada@example.com", "subject": "Hello"},
				map[string]any{"sender": "Bob", "sender_email": "bob@example.com", "subject": "Lunch?"},
			},
		},
	}}}
	m := newTestModel(t, a, model.DefaultPreferences())

	m, cmd := send(m, keyRune("S"))
	if !m.Session().Syncing {
		t.Fatal("expected Syncing after S")
	}
	m = run(t, m, cmd)

	if m.Session().Syncing {
		t.Error("expected Syncing cleared after result")
	}
	if got := len(m.Session().DisplayEmails()); got != 2 {
		t.Fatalf("expected 2 emails, got %d", got)
	}
	if st := m.Session().Status; st == nil || st.Text != "Fetched 2 emails" {
		t.Errorf("unexpected status: %+v", st)
	}
	if len(a.instructions) != 1 || a.instructions[0] != agent.SyncInboxPrompt() {
		t.Errorf("unexpected instructions: %v", a.instructions)
	}
}

func TestSyncIgnoredWhileOutstanding(t *testing.T) {
	m := newTestModel(t, &scriptedAgent{}, model.DefaultPreferences())

	m, first := send(m, keyRune("S"))
	if first == nil {
		t.Fatal("expected a command for the first sync")
	}
	_, second := send(m, keyRune("S"))
	if second != nil {
		t.Error("expected no command while a sync is outstanding")
	}
}

func TestSummarizeSelectedEmail(t *testing.T) {
	a := &scriptedAgent{replies: []*agent.Response{{
		Success: true,
		Result: agent.Result{
			"summary":     "**Board meeting** on Friday",
			"draft_reply": "Thanks Sarah, I will review it today.",
		},
	}}}
	m := newTestModel(t, a, model.Preferences{
		Tone:             model.ToneProfessional,
		FollowUpDuration: model.Duration1Day,
		SampleData:       true,
	})

	// Open the first email.
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)
	sel := m.Session().Selected()
	if sel == nil || sel.ID != "1" {
		t.Fatalf("expected email 1 selected, got %+v", sel)
	}
	if m.focus != focusDetail {
		t.Fatal("expected focus on the detail pane")
	}

	// Summarize it: the detail pane emits an action, which starts the call.
	m, cmd = send(m, keyRune("s"))
	m, cmd = send(m, cmd())
	if !m.Session().LoadingDetail {
		t.Fatal("expected LoadingDetail while summarizing")
	}
	m = run(t, m, cmd)

	sel = m.Session().Selected()
	if sel.Summary != "**Board meeting** on Friday" {
		t.Errorf("Summary = %q", sel.Summary)
	}
	if sel.Status != model.EmailStatusRead {
		t.Errorf("Status = %q, want read", sel.Status)
	}
	if m.Session().Draft != "Thanks Sarah, I will review it today." {
		t.Errorf("Draft = %q", m.Session().Draft)
	}
	if !strings.Contains(a.instructions[0], "professional") {
		t.Errorf("expected tone in instruction, got %q", a.instructions[0])
	}
}

func TestFollowUpFormSchedulesFollowUp(t *testing.T) {
	a := &scriptedAgent{}
	m := newTestModel(t, a, model.Preferences{
		Tone:             model.ToneProfessional,
		FollowUpDuration: model.Duration1Day,
		SampleData:       true,
	})
	before := len(m.Session().DisplayFollowUps())

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, cmd = send(m, keyRune("f"))
	m, _ = send(m, cmd())
	if m.currentView != ViewFollowUpForm {
		t.Fatalf("expected follow-up form, got view %d", m.currentView)
	}

	e := *m.Session().Selected()
	m, cmd = send(m, followUpSubmit(e))
	if m.currentView != ViewMain {
		t.Error("expected the form to close on submit")
	}
	m = run(t, m, cmd)

	// Sample follow-ups are shown while sample data is on; the new one
	// lands in the live list.
	if got := len(m.Session().DisplayFollowUps()); got != before {
		t.Errorf("sample follow-ups changed: %d -> %d", before, got)
	}
	if m.Session().Selected().Status != model.EmailStatusFollowUp {
		t.Errorf("expected email marked follow-up, got %q", m.Session().Selected().Status)
	}
	if st := m.Session().Status; st == nil || st.Severity != model.SeveritySuccess {
		t.Errorf("expected success status, got %+v", st)
	}
}

func TestToggleSampleDataPersists(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := New(Options{Agent: &scriptedAgent{}, Store: s, Prefs: model.DefaultPreferences()})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, cmd := send(m, keyRune("D"))
	if !m.Session().SampleData() {
		t.Fatal("expected sample data on after D")
	}
	m = run(t, m, cmd)

	stored, err := s.LoadPreferences(context.Background(), model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if !stored.SampleData {
		t.Error("stored sample_data = false, want true")
	}
	if got := len(m.Session().DisplayEmails()); got != 5 {
		t.Errorf("expected 5 sample emails, got %d", got)
	}
}

func TestViewSwitchKeys(t *testing.T) {
	m := newTestModel(t, &scriptedAgent{}, model.DefaultPreferences())

	tests := []struct {
		key  string
		want model.View
	}{
		{"2", model.ViewSent},
		{"3", model.ViewFollowUps},
		{"4", model.ViewSettings},
		{"1", model.ViewInbox},
	}
	for _, tt := range tests {
		m, _ = send(m, keyRune(tt.key))
		if m.Session().View != tt.want {
			t.Errorf("after %q view = %q, want %q", tt.key, m.Session().View, tt.want)
		}
	}
}

func TestCommandPaletteSample(t *testing.T) {
	m := newTestModel(t, &scriptedAgent{}, model.DefaultPreferences())

	m, _ = send(m, keyRune(":"))
	if m.currentView != ViewCommand {
		t.Fatal("expected command palette")
	}
	m, _ = send(m, commandMsg("sample on"))
	if m.currentView != ViewMain {
		t.Error("expected palette to close")
	}
	if !m.Session().SampleData() {
		t.Error("expected sample data on")
	}

	m, _ = send(m, commandMsg("bogus"))
	if st := m.Session().Status; st == nil || !strings.Contains(st.Text, "Unknown command") {
		t.Errorf("expected unknown command status, got %+v", st)
	}
}

func TestRecoveredPanicShowsFallback(t *testing.T) {
	m := newTestModel(t, &scriptedAgent{}, model.DefaultPreferences())

	m.recordPanic("test", "boom")
	view := m.View()
	if !strings.Contains(view, "Something went wrong") || !strings.Contains(view, "boom") {
		t.Fatalf("expected fallback screen, got:\n%s", view)
	}

	// Other keys are swallowed until reset.
	m, _ = send(m, keyRune("2"))
	if m.Session().View != model.ViewInbox {
		t.Error("expected keys ignored on the error screen")
	}

	m, _ = send(m, keyRune("r"))
	if strings.Contains(m.View(), "Something went wrong") {
		t.Error("expected r to reset the error screen")
	}
}

func followUpSubmit(e model.Email) tea.Msg {
	return followupform.SubmitMsg{Email: e, Date: "2025-02-23", Time: "10:00", Note: "Check in"}
}

func commandMsg(s string) tea.Msg {
	return command.CommandMsg(s)
}

func TestAPIKeySavedRebuildsAgent(t *testing.T) {
	old := &scriptedAgent{}
	fresh := &scriptedAgent{}
	var gotKey string
	m := New(Options{
		Agent:   old,
		Backend: "test",
		NewAgent: func(apiKey string) (agent.Agent, error) {
			gotKey = apiKey
			return fresh, nil
		},
		Prefs: model.DefaultPreferences(),
	})

	m, _ = send(m, settings.APIKeySavedMsg{Key: "sk-new"})
	if gotKey != "sk-new" {
		t.Fatalf("NewAgent called with %q, want sk-new", gotKey)
	}

	m, cmd := send(m, keyRune("S"))
	run(t, m, cmd)
	if len(old.instructions) != 0 {
		t.Errorf("old agent received %d calls", len(old.instructions))
	}
	if len(fresh.instructions) != 1 {
		t.Errorf("new agent received %d calls, want 1", len(fresh.instructions))
	}
}

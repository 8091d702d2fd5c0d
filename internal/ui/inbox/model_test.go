package inbox

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
)

func newSampleInbox(t *testing.T) (Model, *mailbox.Session) {
	t.Helper()
	s := mailbox.NewSession(model.Preferences{SampleData: true})
	return New(s, keys.DefaultKeyMap(), 100, 30), s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	m, s := newSampleInbox(t)

	m, _ = m.Update(runes("/"))
	if !m.Searching() {
		t.Fatal("expected search mode after /")
	}
	for _, r := range "benefits" {
		m, _ = m.Update(runes(string(r)))
	}

	if s.Filter.Query != "benefits" {
		t.Errorf("Filter.Query = %q, want %q", s.Filter.Query, "benefits")
	}
	if got := len(m.list.Items()); got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Searching() {
		t.Error("expected esc to leave search mode")
	}
	if s.Filter.Query != "" {
		t.Errorf("expected esc to clear the query, got %q", s.Filter.Query)
	}
	if got := len(m.list.Items()); got != 5 {
		t.Errorf("expected all 5 emails after clearing, got %d", got)
	}
}

func TestTabCyclesCategory(t *testing.T) {
	m, s := newSampleInbox(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s.Filter.Category != string(model.CategoryCustomer) {
		t.Fatalf("Category = %q, want customer", s.Filter.Category)
	}
	for _, item := range m.list.Items() {
		if item.(EmailItem).Email.Category != model.CategoryCustomer {
			t.Errorf("unexpected category %q in filtered list", item.(EmailItem).Email.Category)
		}
	}
}

func TestEnterSelectsEmail(t *testing.T) {
	m, _ := newSampleInbox(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(SelectedEmailMsg)
	if !ok {
		t.Fatalf("expected SelectedEmailMsg, got %T", cmd())
	}
	if msg.Email.ID != "1" {
		t.Errorf("selected %q, want first email", msg.Email.ID)
	}
}

func TestEmptyStates(t *testing.T) {
	s := mailbox.NewSession(model.DefaultPreferences())
	m := New(s, keys.DefaultKeyMap(), 100, 30)

	if !strings.Contains(m.View(), "No emails yet") {
		t.Errorf("expected empty inbox text, got:\n%s", m.View())
	}

	s.SetSampleData(true)
	s.Filter.Query = "zzz-no-match"
	m.Refresh()
	if !strings.Contains(m.View(), "No matching emails") {
		t.Errorf("expected no-match text, got:\n%s", m.View())
	}
}

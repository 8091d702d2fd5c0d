package followups

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
)

func TestSampleFollowUpsListed(t *testing.T) {
	s := mailbox.NewSession(model.Preferences{SampleData: true})
	k := keys.DefaultKeyMap()
	m := New(s, k, 100, 30)

	if got, want := len(m.list.Items()), len(mailbox.SampleFollowUps()); got != want {
		t.Fatalf("items = %d, want %d", got, want)
	}
	if !strings.Contains(m.View(), "Follow-ups (2)") {
		t.Errorf("expected count in title, got:\n%s", m.View())
	}
}

func TestEnterOpensReferencedEmail(t *testing.T) {
	s := mailbox.NewSession(model.Preferences{SampleData: true})
	k := keys.DefaultKeyMap()
	m := New(s, k, 100, 30)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(OpenEmailMsg)
	if !ok {
		t.Fatalf("expected OpenEmailMsg, got %T", cmd())
	}
	if msg.EmailID != mailbox.SampleFollowUps()[0].EmailID {
		t.Errorf("EmailID = %q, want %q", msg.EmailID, mailbox.SampleFollowUps()[0].EmailID)
	}
}

func TestEmptyState(t *testing.T) {
	s := mailbox.NewSession(model.DefaultPreferences())
	k := keys.DefaultKeyMap()
	m := New(s, k, 80, 20)

	if !strings.Contains(m.View(), "No follow-ups scheduled") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

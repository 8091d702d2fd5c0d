package sent

import (
	"strings"
	"testing"
	"time"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/mailbox"
	"github.com/nhle/inbox-pilot/internal/model"
)

func TestEmptyState(t *testing.T) {
	s := mailbox.NewSession(model.DefaultPreferences())
	m := New(s, 80, 20)

	if !strings.Contains(m.View(), "No sent replies yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestRefreshShowsSentReplies(t *testing.T) {
	s := mailbox.NewSession(model.Preferences{SampleData: true})
	e := s.DisplayEmails()[0]
	s.Select(e)
	s.Draft = "Thanks, will do."

	email, draft, ok := s.BeginSendReply()
	if !ok {
		t.Fatal("BeginSendReply returned false")
	}
	resp := &agent.Response{Success: true, Result: agent.Result{"status": "success"}}
	s.FinishSendReply(email, draft, resp, nil, time.Now())

	m := New(s, 100, 20)
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected 1 sent item, got %d", len(m.list.Items()))
	}
	view := m.View()
	if !strings.Contains(view, "To: "+e.Sender) {
		t.Errorf("expected recipient in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Sent (1)") {
		t.Errorf("expected count in title, got:\n%s", view)
	}
}

func TestItemBodyFallsBackToPreview(t *testing.T) {
	it := Item{Email: model.Email{Preview: "original preview", DraftReply: "  "}}
	if it.Body() != "original preview" {
		t.Errorf("Body() = %q, want preview", it.Body())
	}
	it.Email.DraftReply = "reply"
	if it.Body() != "reply" {
		t.Errorf("Body() = %q, want reply", it.Body())
	}
}

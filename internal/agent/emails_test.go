package agent

import (
	"testing"

	"github.com/nhle/inbox-pilot/internal/model"
)

func TestParseEmails(t *testing.T) {
	records := []map[string]any{
		{
			"id":           "m1",
			"sender":       "Sarah Mitchell",
			"sender_email": "sarah@acme.com",
			"subject":      "Q4 Revenue",
			"preview":      "Please review",
			"category":     "Internal",
			"timestamp":    "2025-02-22T09:15:00Z",
			"thread_id":    "thread-001",
		},
		{
			"from":     "James Rodriguez <james@client.io>",
			"subject":  "API 503",
			"snippet":  "We are seeing errors",
			"category": "urgent",
			"date":     "2025-02-22T08:00:00Z",
			"threadId": "t-2",
			"status":   "read",
		},
		{
			"sender":      "noreply@notion.so",
			"senderEmail": "",
			"subject":     "Notion AI 2.0",
			"body":        "New features",
		},
		{"preview": "no sender and no subject"},
	}

	got := ParseEmails(records)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	first := got[0]
	if first.ID != "m1" || first.Sender != "Sarah Mitchell" || first.SenderEmail != "sarah@acme.com" {
		t.Errorf("first = %+v", first)
	}
	if first.Category != model.CategoryInternal {
		t.Errorf("category = %q, want internal", first.Category)
	}
	if first.Status != model.EmailStatusUnread {
		t.Errorf("status = %q, want unread", first.Status)
	}
	if first.ThreadID != "thread-001" {
		t.Errorf("thread id = %q", first.ThreadID)
	}

	second := got[1]
	if second.Sender != "James Rodriguez" || second.SenderEmail != "james@client.io" {
		t.Errorf("address split: %+v", second)
	}
	if second.ID == "" {
		t.Error("missing id was not generated")
	}
	if second.Category != "urgent" {
		t.Errorf("unknown category = %q, want kept verbatim", second.Category)
	}
	if second.Preview != "We are seeing errors" || second.Timestamp != "2025-02-22T08:00:00Z" || second.ThreadID != "t-2" {
		t.Errorf("alternate keys: %+v", second)
	}
	if second.Status != model.EmailStatusRead {
		t.Errorf("status = %q, want read", second.Status)
	}

	third := got[2]
	if third.SenderEmail != "noreply@notion.so" || third.Sender != "noreply@notion.so" {
		t.Errorf("bare address: %+v", third)
	}
	if third.Preview != "New features" {
		t.Errorf("preview = %q", third.Preview)
	}
}

func TestParseEmails_Empty(t *testing.T) {
	if got := ParseEmails(nil); len(got) != 0 {
		t.Errorf("ParseEmails(nil) = %v", got)
	}
}

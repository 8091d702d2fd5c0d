package agent

import (
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/nhle/inbox-pilot/internal/model"
)

// ParseEmails converts the loosely-typed records of an "emails" payload into
// model.Email values. Alternate key spellings are accepted and records
// without a subject or a sender are skipped.
func ParseEmails(records []map[string]any) []model.Email {
	out := make([]model.Email, 0, len(records))
	for _, rec := range records {
		r := Result(rec)

		sender := r.First("sender", "from", "sender_name", "senderName")
		addr := r.First("sender_email", "senderEmail", "email", "from_email")
		name, parsed := splitAddress(sender)
		if addr == "" {
			addr = parsed
		}
		if name == "" {
			name = addr
		}

		subject := r.First("subject", "title")
		if subject == "" && name == "" {
			continue
		}

		id := r.First("id", "message_id", "messageId")
		if id == "" {
			id = uuid.New().String()
		}

		out = append(out, model.Email{
			ID:          id,
			Sender:      name,
			SenderEmail: addr,
			Subject:     subject,
			Preview:     r.First("preview", "snippet", "body"),
			Category:    model.ParseCategory(r.Category()),
			Timestamp:   r.First("timestamp", "date", "received_at"),
			ThreadID:    r.First("thread_id", "threadId"),
			Status:      model.ParseEmailStatus(r.Status()),
		})
	}
	return out
}

// splitAddress separates a "Name <addr>" sender into its parts. Plain names
// and bare addresses are returned unchanged in the matching slot.
func splitAddress(s string) (name, addr string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if a, err := mail.ParseAddress(s); err == nil {
		if a.Name == "" {
			return "", a.Address
		}
		return a.Name, a.Address
	}
	return s, ""
}

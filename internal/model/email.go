package model

import "strings"

// Category is the agent-assigned classification of an email. Values outside
// the known set are kept verbatim so nothing the agent says is lost.
type Category string

const (
	CategoryCustomer  Category = "customer"
	CategoryInternal  Category = "internal"
	CategoryAdmin     Category = "admin"
	CategoryMarketing Category = "marketing"
	CategoryPersonal  Category = "personal"
)

// CategoryAll is the pseudo-category used by the inbox filter to mean
// "no category restriction".
const CategoryAll = "all"

// CategoryPriority is the display order used in settings and filter chips.
var CategoryPriority = []Category{
	CategoryCustomer,
	CategoryInternal,
	CategoryAdmin,
	CategoryPersonal,
	CategoryMarketing,
}

var categoryLabels = map[Category]string{
	CategoryCustomer:  "Customer",
	CategoryInternal:  "Internal",
	CategoryAdmin:     "Admin",
	CategoryMarketing: "Marketing",
	CategoryPersonal:  "Personal",
}

// Label returns the human-readable name of the category. Unknown categories
// render as their raw value.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Known reports whether c is one of the five recognized categories.
func (c Category) Known() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory normalizes a free-form category string from the agent.
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// EmailStatus is the read/reply lifecycle of an email in the mailbox.
type EmailStatus string

const (
	EmailStatusUnread   EmailStatus = "unread"
	EmailStatusRead     EmailStatus = "read"
	EmailStatusReplied  EmailStatus = "replied"
	EmailStatusFollowUp EmailStatus = "follow-up"
)

// ParseEmailStatus maps an agent-supplied status onto a known value,
// defaulting to unread.
func ParseEmailStatus(s string) EmailStatus {
	switch st := EmailStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case EmailStatusRead, EmailStatusReplied, EmailStatusFollowUp:
		return st
	default:
		return EmailStatusUnread
	}
}

// Email is a single mailbox entry as presented in the inbox.
type Email struct {
	ID          string      `json:"id"`
	Sender      string      `json:"sender"`
	SenderEmail string      `json:"sender_email"`
	Subject     string      `json:"subject"`
	Preview     string      `json:"preview"`
	Category    Category    `json:"category"`
	Timestamp   string      `json:"timestamp"`
	ThreadID    string      `json:"thread_id,omitempty"`
	Status      EmailStatus `json:"status"`

	// Summary and DraftReply are filled in by the agent on request.
	Summary    string `json:"summary,omitempty"`
	DraftReply string `json:"draft_reply,omitempty"`
}

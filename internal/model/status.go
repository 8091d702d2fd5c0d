package model

// Severity classifies a StatusMessage for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// StatusMessage is one-shot user feedback shown as a banner.
type StatusMessage struct {
	Severity Severity
	Text     string
}

// Success builds a success banner.
func Success(text string) *StatusMessage {
	return &StatusMessage{Severity: SeveritySuccess, Text: text}
}

// Failure builds an error banner.
func Failure(text string) *StatusMessage {
	return &StatusMessage{Severity: SeverityError, Text: text}
}

// Info builds an informational banner.
func Info(text string) *StatusMessage {
	return &StatusMessage{Severity: SeverityInfo, Text: text}
}

// View identifies the panel shown in the main content area.
type View string

const (
	ViewInbox     View = "inbox"
	ViewSent      View = "sent"
	ViewFollowUps View = "followups"
	ViewSettings  View = "settings"
)

// Title returns the heading shown in the top bar for the view.
func (v View) Title() string {
	switch v {
	case ViewSent:
		return "Sent"
	case ViewFollowUps:
		return "Follow-ups"
	case ViewSettings:
		return "Settings"
	default:
		return "Inbox"
	}
}

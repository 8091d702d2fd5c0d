package model

// FollowUpStatus is the lifecycle tag of a follow-up reminder.
type FollowUpStatus string

const (
	FollowUpUpcoming  FollowUpStatus = "upcoming"
	FollowUpOverdue   FollowUpStatus = "overdue"
	FollowUpCompleted FollowUpStatus = "completed"
)

// DefaultFollowUpNote is used when the user schedules a follow-up without
// a note.
const DefaultFollowUpNote = "Follow up on this email thread"

// FollowUp is a user-scheduled reminder tied to an email. It is optionally
// mirrored to the user's calendar by the agent.
type FollowUp struct {
	ID      string         `json:"id"`
	EmailID string         `json:"email_id"`
	Subject string         `json:"subject"`
	Date    string         `json:"date"` // YYYY-MM-DD
	Time    string         `json:"time"` // HH:MM
	Note    string         `json:"note"`
	Status  FollowUpStatus `json:"status"`
}

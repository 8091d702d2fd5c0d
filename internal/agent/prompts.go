package agent

import (
	"fmt"

	"github.com/nhle/inbox-pilot/internal/model"
)

// SyncInboxPrompt asks the agent to fetch and categorize recent mail.
func SyncInboxPrompt() string {
	return "Fetch my recent emails from Gmail and categorize each one as customer, internal, admin, marketing, or personal. " +
		"For each email, provide the sender name, sender email, subject, preview snippet, category, and timestamp. " +
		`Return them in an "emails" array.`
}

// SummarizePrompt asks for a thread summary and a reply draft in the given tone.
func SummarizePrompt(e model.Email, tone model.Tone) string {
	return fmt.Sprintf(
		"Summarize this email thread and draft a professional reply in a %s tone. "+
			"Subject: \"%s\", From: %s (%s), Content: \"%s\". "+
			"Provide a concise summary and a well-crafted reply draft.",
		tone.PromptPhrase(), e.Subject, e.Sender, e.SenderEmail, e.Preview,
	)
}

// SendReplyPrompt asks the agent to send draft as a reply on the email's thread.
func SendReplyPrompt(e model.Email, draft string) string {
	return fmt.Sprintf(
		"Send this reply via Gmail using GMAIL_REPLY_TO_THREAD. Reply text: \"%s\". Thread subject: \"%s\". Recipient: %s.",
		draft, e.Subject, e.SenderEmail,
	)
}

// FollowUpPrompt asks the agent to create a calendar reminder for the email.
func FollowUpPrompt(e model.Email, date, clock, note string) string {
	if note == "" {
		note = model.DefaultFollowUpNote
	}
	return fmt.Sprintf(
		"Create a follow-up reminder as a Google Calendar event using GOOGLECALENDAR_CREATE_EVENT. "+
			"Title: \"%s\". Date: %s. Time: %s. Note: %s.",
		"Follow up - "+e.Subject, date, clock, note,
	)
}

// PingPrompt asks the agent for a trivial acknowledgement.
func PingPrompt() string {
	return `Reply with a JSON object {"status":"success","message":"InboxPilot agent is reachable"} and take no other action.`
}

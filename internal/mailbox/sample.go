package mailbox

import "github.com/nhle/inbox-pilot/internal/model"

// SampleEmails returns the demo inbox shown while sample data is on. A fresh
// slice is returned on every call.
func SampleEmails() []model.Email {
	return []model.Email{
		{
			ID:          "1",
			Sender:      "Sarah Mitchell",
			SenderEmail: "sarah.mitchell@acmewidgets.com",
			Subject:     "Q4 Revenue Report - Urgent Review Needed",
			Preview:     "Hi team, please review the attached Q4 revenue report before the board meeting on Friday. Key highlights include a 12% increase in recurring revenue...",
			Category:    model.CategoryInternal,
			Timestamp:   "2025-02-22T09:14:00Z",
			Status:      model.EmailStatusUnread,
			ThreadID:    "thread-001",
		},
		{
			ID:          "2",
			Sender:      "James Rodriguez",
			SenderEmail: "james.r@cloudserv.io",
			Subject:     "Re: API Integration Support Request",
			Preview:     "We are experiencing intermittent 503 errors when calling the /v2/analytics endpoint. Could your team investigate the rate limiting configuration?",
			Category:    model.CategoryCustomer,
			Timestamp:   "2025-02-22T08:45:00Z",
			Status:      model.EmailStatusUnread,
			ThreadID:    "thread-002",
		},
		{
			ID:          "3",
			Sender:      "HR Department",
			SenderEmail: "hr@company.com",
			Subject:     "Benefits Enrollment Deadline - Action Required",
			Preview:     "This is a reminder that the annual benefits enrollment period ends on March 1st. Please log in to the HR portal to review and update your selections.",
			Category:    model.CategoryAdmin,
			Timestamp:   "2025-02-21T16:30:00Z",
			Status:      model.EmailStatusRead,
			ThreadID:    "thread-003",
		},
		{
			ID:          "4",
			Sender:      "Notion",
			SenderEmail: "updates@notion.so",
			Subject:     "Introducing Notion AI 2.0 - Transform Your Workflow",
			Preview:     "We are excited to announce Notion AI 2.0 with advanced document generation, intelligent search, and automated task management features.",
			Category:    model.CategoryMarketing,
			Timestamp:   "2025-02-21T14:20:00Z",
			Status:      model.EmailStatusRead,
			ThreadID:    "thread-004",
		},
		{
			ID:          "5",
			Sender:      "David Chen",
			SenderEmail: "david.chen@gmail.com",
			Subject:     "Weekend hiking trip plans",
			Preview:     "Hey! Are we still on for the Mount Tamalpais hike this Saturday? I was thinking we could start early around 7am and grab brunch after.",
			Category:    model.CategoryPersonal,
			Timestamp:   "2025-02-21T11:05:00Z",
			Status:      model.EmailStatusRead,
			ThreadID:    "thread-005",
		},
	}
}

// SampleFollowUps returns the demo follow-ups shown while sample data is on.
func SampleFollowUps() []model.FollowUp {
	return []model.FollowUp{
		{
			ID:      "fu-1",
			EmailID: "2",
			Subject: "Re: API Integration Support Request",
			Date:    "2025-02-24",
			Time:    "10:00",
			Note:    "Check if rate limiting fix was deployed",
			Status:  model.FollowUpUpcoming,
		},
		{
			ID:      "fu-2",
			EmailID: "1",
			Subject: "Q4 Revenue Report - Urgent Review Needed",
			Date:    "2025-02-23",
			Time:    "14:00",
			Note:    "Submit review comments before board meeting",
			Status:  model.FollowUpUpcoming,
		},
	}
}

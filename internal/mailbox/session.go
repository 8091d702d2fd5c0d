// Package mailbox holds the page-level state of the email assistant and the
// rules for applying agent results to it. Nothing here performs I/O; the
// caller makes the agent call and hands the outcome to a Finish method.
package mailbox

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/model"
)

// Status texts shown after agent calls.
const (
	MsgSyncing          = "Fetching emails from Gmail..."
	MsgSyncOK           = "Emails synced successfully. Select an email to view details."
	MsgSyncFailed       = "Failed to sync inbox"
	MsgSyncNetwork      = "Network error while syncing inbox. Please try again."
	MsgSummarizeOK      = "Summary and draft generated successfully."
	MsgSummarizeFailed  = "Failed to summarize email"
	MsgSummarizeNetwork = "Error summarizing email. Please try again."
	MsgReplyOK          = "Reply sent successfully."
	MsgReplyFailed      = "Failed to send reply"
	MsgReplyNetwork     = "Error sending reply. Please try again."
	MsgFollowUpOK       = "Follow-up scheduled successfully."
	MsgFollowUpPartial  = "Follow-up saved locally. Calendar event creation may have encountered an issue."
	MsgFollowUpLocal    = "Follow-up saved locally. Could not create calendar event."
)

// DefaultFollowUpTime is the scheduler's time of day for day-based offsets.
const DefaultFollowUpTime = "10:00"

// Session is the single owner of all mutable view state.
type Session struct {
	View model.View

	// Busy flags gate re-entrant agent calls.
	Syncing       bool
	LoadingDetail bool
	SendingReply  bool

	SyncStatus string
	Status     *model.StatusMessage
	Filter     Filter
	Draft      string
	Tone       model.Tone
	Duration   model.FollowUpDuration

	live            []model.Email
	sample          []model.Email
	sent            []model.Email
	followUps       []model.FollowUp
	sampleFollowUps []model.FollowUp
	selected        *model.Email
	sampleData      bool
}

// NewSession creates a session seeded from stored preferences.
func NewSession(prefs model.Preferences) *Session {
	return &Session{
		View:            model.ViewInbox,
		Filter:          Filter{Category: model.CategoryAll},
		Tone:            prefs.Tone,
		Duration:        prefs.FollowUpDuration,
		sample:          SampleEmails(),
		sampleFollowUps: SampleFollowUps(),
		sampleData:      prefs.SampleData,
	}
}

// Preferences returns the persisted subset of the session.
func (s *Session) Preferences() model.Preferences {
	return model.Preferences{
		Tone:             s.Tone,
		FollowUpDuration: s.Duration,
		SampleData:       s.sampleData,
	}
}

// SampleData reports whether the demo data set is displayed.
func (s *Session) SampleData() bool { return s.sampleData }

// SetSampleData switches between demo and live data. The selection, draft
// and status banner are always cleared.
func (s *Session) SetSampleData(on bool) {
	s.sampleData = on
	s.selected = nil
	s.Draft = ""
	s.Status = nil
}

// DisplayEmails returns the emails currently on screen.
func (s *Session) DisplayEmails() []model.Email {
	if s.sampleData {
		return s.sample
	}
	return s.live
}

// DisplayFollowUps returns the follow-ups currently on screen.
func (s *Session) DisplayFollowUps() []model.FollowUp {
	if s.sampleData {
		return s.sampleFollowUps
	}
	return s.followUps
}

// FilteredEmails applies the search query and category chip to the
// displayed emails.
func (s *Session) FilteredEmails() []model.Email {
	return s.Filter.Apply(s.DisplayEmails())
}

// UnreadCount counts unread emails among the displayed ones.
func (s *Session) UnreadCount() int {
	n := 0
	for _, e := range s.DisplayEmails() {
		if e.Status == model.EmailStatusUnread {
			n++
		}
	}
	return n
}

// Sent returns replies sent this session, newest first.
func (s *Session) Sent() []model.Email { return s.sent }

// Selected returns the selected email, or nil.
func (s *Session) Selected() *model.Email { return s.selected }

// Select makes e the selected email and seeds the draft from its stored
// draft reply.
func (s *Session) Select(e model.Email) {
	s.selected = &e
	s.Draft = e.DraftReply
	s.Status = nil
}

// ClearSelection deselects the current email.
func (s *Session) ClearSelection() {
	s.selected = nil
	s.Draft = ""
}

// NavigateToEmail selects the displayed email with the given id and
// switches to the inbox. It reports whether the email was found.
func (s *Session) NavigateToEmail(id string) bool {
	for _, e := range s.DisplayEmails() {
		if e.ID == id {
			s.selected = &e
			s.Draft = e.DraftReply
			s.View = model.ViewInbox
			return true
		}
	}
	return false
}

// BeginSync marks a sync as outstanding. It returns false if one already is.
func (s *Session) BeginSync() bool {
	if s.Syncing {
		return false
	}
	s.Syncing = true
	s.SyncStatus = MsgSyncing
	s.Status = nil
	return true
}

// FinishSync applies the outcome of an inbox sync.
func (s *Session) FinishSync(resp *agent.Response, err error) {
	defer func() {
		s.Syncing = false
		s.SyncStatus = ""
	}()

	if fail, ok := failure(resp, err, MsgSyncFailed, MsgSyncNetwork); !ok {
		if fail.Severity == model.SeverityError && resp != nil && resp.Error == "" && resp.Message != "" {
			fail.Text = resp.Message
		}
		s.Status = fail
		return
	}

	if emails := agent.ParseEmails(resp.Result.Emails()); len(emails) > 0 {
		s.live = emails
		if s.selected != nil && !s.sampleData && s.indexOf(s.live, s.selected.ID) < 0 {
			s.ClearSelection()
		}
		if msg := resp.Result.Message(); msg != "" {
			s.Status = model.Success(msg)
		}
		return
	}

	status := resp.Result.Status()
	if status == "" {
		status = resp.Status
	}
	if strings.EqualFold(status, "success") {
		msg := resp.Result.First("message", "summary")
		if msg == "" {
			msg = MsgSyncOK
		}
		s.Status = model.Success(msg)
	}
}

// BeginSummarize returns the email to summarize. It returns false when
// nothing is selected or a summary is already in flight.
func (s *Session) BeginSummarize() (model.Email, bool) {
	if s.selected == nil || s.LoadingDetail {
		return model.Email{}, false
	}
	s.LoadingDetail = true
	s.Status = nil
	return *s.selected, true
}

// FinishSummarize stores the agent's summary and draft on the email with
// the given id. The draft buffer only changes if that email is still
// selected.
func (s *Session) FinishSummarize(emailID string, resp *agent.Response, err error) {
	defer func() { s.LoadingDetail = false }()

	if fail, ok := failure(resp, err, MsgSummarizeFailed, MsgSummarizeNetwork); !ok {
		s.Status = fail
		return
	}

	summary := resp.Result.First("summary", "message")
	draft := resp.Result.DraftReply()

	s.updateEmail(emailID, func(e *model.Email) {
		e.Summary = summary
		e.DraftReply = draft
		e.Status = model.EmailStatusRead
	})

	stillSelected := s.selected != nil && s.selected.ID == emailID
	if draft != "" && stillSelected {
		s.Draft = draft
	}
	if summary != "" || draft != "" {
		s.Status = model.Success(MsgSummarizeOK)
	}
}

// BeginSendReply returns the email and draft to send. It returns false
// when nothing is selected, the draft is blank, or a send is in flight.
func (s *Session) BeginSendReply() (model.Email, string, bool) {
	if s.selected == nil || strings.TrimSpace(s.Draft) == "" || s.SendingReply {
		return model.Email{}, "", false
	}
	s.SendingReply = true
	s.Status = nil
	return *s.selected, s.Draft, true
}

// FinishSendReply records a sent reply. On success the source email is
// marked replied and a copy is placed at the front of the sent list.
func (s *Session) FinishSendReply(e model.Email, draft string, resp *agent.Response, err error, now time.Time) {
	defer func() { s.SendingReply = false }()

	if fail, ok := failure(resp, err, MsgReplyFailed, MsgReplyNetwork); !ok {
		s.Status = fail
		return
	}

	s.updateEmail(e.ID, func(m *model.Email) {
		m.Status = model.EmailStatusReplied
		m.DraftReply = draft
	})

	sent := e
	sent.Status = model.EmailStatusReplied
	sent.DraftReply = draft
	sent.Timestamp = now.UTC().Format(time.RFC3339)
	s.sent = append([]model.Email{sent}, s.sent...)

	msg := resp.Result.Message()
	if msg == "" {
		msg = MsgReplyOK
	}
	s.Status = model.Success(msg)
	s.Draft = ""
}

// ScheduleFollowUp records a follow-up for e regardless of the agent
// outcome. The email is marked follow-up unless the call itself failed.
func (s *Session) ScheduleFollowUp(e model.Email, date, clock, note string, resp *agent.Response, err error) model.FollowUp {
	if note == "" {
		note = model.DefaultFollowUpNote
	}
	fu := model.FollowUp{
		ID:      "fu-" + uuid.New().String(),
		EmailID: e.ID,
		Subject: e.Subject,
		Date:    date,
		Time:    clock,
		Note:    note,
		Status:  model.FollowUpUpcoming,
	}
	if s.sampleData {
		s.sampleFollowUps = append(s.sampleFollowUps, fu)
	} else {
		s.followUps = append(s.followUps, fu)
	}

	if err != nil {
		if _, isAPI := agent.IsAPIError(err); !isAPI {
			s.Status = model.Info(MsgFollowUpLocal)
			return fu
		}
	}

	s.updateEmail(e.ID, func(m *model.Email) {
		m.Status = model.EmailStatusFollowUp
	})

	if err == nil && resp != nil && resp.Success {
		msg := resp.Result.Message()
		if msg == "" {
			msg = MsgFollowUpOK
		}
		s.Status = model.Success(msg)
		return fu
	}
	s.Status = model.Info(MsgFollowUpPartial)
	return fu
}

// DefaultFollowUpDate returns the scheduler's initial date and time. Offsets
// shorter than a day keep the clock time; longer ones use 10:00.
func (s *Session) DefaultFollowUpDate(now time.Time) (date, clock string) {
	offset := s.Duration.Offset()
	at := now.Add(offset)
	if offset < 24*time.Hour {
		return at.Format("2006-01-02"), at.Format("15:04")
	}
	return at.Format("2006-01-02"), DefaultFollowUpTime
}

// updateEmail applies fn to the email with the given id in the displayed
// list and to the selection.
func (s *Session) updateEmail(id string, fn func(*model.Email)) {
	list := s.live
	if s.sampleData {
		list = s.sample
	}
	if i := s.indexOf(list, id); i >= 0 {
		fn(&list[i])
	}
	if s.selected != nil && s.selected.ID == id {
		fn(s.selected)
	}
}

func (s *Session) indexOf(list []model.Email, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// failure classifies an agent outcome. It returns ok when the agent
// reported success with a payload; otherwise it returns the banner to show.
// An APIError is treated as the agent declining the call; any other error
// is a transport failure.
func failure(resp *agent.Response, err error, fallback, network string) (*model.StatusMessage, bool) {
	if err != nil {
		if apiErr, ok := agent.IsAPIError(err); ok {
			if apiErr.Message != "" {
				return model.Failure(apiErr.Message), false
			}
			return model.Failure(fallback), false
		}
		return model.Failure(network), false
	}
	if !resp.OK() {
		if resp != nil && resp.Error != "" {
			return model.Failure(resp.Error), false
		}
		return model.Failure(fallback), false
	}
	return nil, true
}

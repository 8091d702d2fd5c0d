package app

import (
	"context"
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/store"
)

var errNoAgent = errors.New("no agent configured")

// syncResultMsg carries the outcome of an inbox sync.
type syncResultMsg struct {
	resp *agent.Response
	err  error
}

// summarizeResultMsg carries the outcome of a summarize call for one email.
type summarizeResultMsg struct {
	emailID string
	resp    *agent.Response
	err     error
}

// sendResultMsg carries the outcome of sending a reply.
type sendResultMsg struct {
	email model.Email
	draft string
	resp  *agent.Response
	err   error
}

// followUpResultMsg carries the outcome of a calendar call.
type followUpResultMsg struct {
	email model.Email
	date  string
	clock string
	note  string
	resp  *agent.Response
	err   error
}

// preferenceSavedMsg is sent after a single preference is persisted.
type preferenceSavedMsg struct {
	key string
	err error
}

// call returns a command performing one agent call. The reply is wrapped by
// wrap into the result message for the caller.
func (m *Model) call(instruction string, wrap func(*agent.Response, error) tea.Msg) tea.Cmd {
	a := m.agent
	id := m.agentID
	return func() tea.Msg {
		if a == nil {
			return wrap(nil, errNoAgent)
		}
		resp, err := a.Call(context.Background(), instruction, id)
		return wrap(resp, err)
	}
}

// startSync begins an inbox sync unless one is outstanding.
func (m *Model) startSync() tea.Cmd {
	if !m.session.BeginSync() {
		return nil
	}
	m.refreshAll()
	return m.call(agent.SyncInboxPrompt(), func(resp *agent.Response, err error) tea.Msg {
		return syncResultMsg{resp: resp, err: err}
	})
}

// startSummarize asks the agent to summarize the selected email and draft a
// reply in the session's tone.
func (m *Model) startSummarize() tea.Cmd {
	e, ok := m.session.BeginSummarize()
	if !ok {
		return nil
	}
	m.refreshAll()
	id := e.ID
	return m.call(agent.SummarizePrompt(e, m.session.Tone), func(resp *agent.Response, err error) tea.Msg {
		return summarizeResultMsg{emailID: id, resp: resp, err: err}
	})
}

// startSendReply sends the draft buffer as a reply to the selected email.
func (m *Model) startSendReply() tea.Cmd {
	e, draft, ok := m.session.BeginSendReply()
	if !ok {
		return nil
	}
	m.refreshAll()
	return m.call(agent.SendReplyPrompt(e, draft), func(resp *agent.Response, err error) tea.Msg {
		return sendResultMsg{email: e, draft: draft, resp: resp, err: err}
	})
}

// scheduleFollowUp asks the agent to create a calendar event. The follow-up
// is recorded when the call returns, whatever its outcome.
func (m *Model) scheduleFollowUp(e model.Email, date, clock, note string) tea.Cmd {
	if m.schedulingFollowUp {
		return nil
	}
	m.schedulingFollowUp = true
	return m.call(agent.FollowUpPrompt(e, date, clock, note), func(resp *agent.Response, err error) tea.Msg {
		return followUpResultMsg{email: e, date: date, clock: clock, note: note, resp: resp, err: err}
	})
}

// setSampleData flips the demo data set and persists the choice.
func (m *Model) setSampleData(on bool) tea.Cmd {
	m.session.SetSampleData(on)
	m.focus = focusList
	m.settingsView.SetPreferences(m.session.Preferences())
	m.refreshAll()
	return m.savePreference(store.KeySampleData, strconv.FormatBool(on))
}

// savePreference returns a command that persists a single preference.
func (m *Model) savePreference(key, value string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if s == nil {
			return preferenceSavedMsg{key: key}
		}
		err := s.SetPreference(context.Background(), key, value)
		return preferenceSavedMsg{key: key, err: err}
	}
}

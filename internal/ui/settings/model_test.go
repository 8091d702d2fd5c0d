package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/keys"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/tests/testutil"
)

type stubAgent struct {
	resp *agent.Response
	err  error
}

func (a stubAgent) Call(context.Context, string, string) (*agent.Response, error) {
	return a.resp, a.err
}

func newTestModel(t *testing.T, a agent.Agent) Model {
	t.Helper()
	s := testutil.NewTestStore(t)
	return New(s, keys.DefaultKeyMap(), AgentInfo{
		Agent:   a,
		AgentID: "agent-123",
		Backend: "Hosted agent",
		KeyName: "agent-api-key",
	}, 100, 40)
}

func TestOverviewShowsPreferencesAndPriority(t *testing.T) {
	m := newTestModel(t, nil)
	m.SetPreferences(model.Preferences{
		Tone:             model.ToneConcise,
		FollowUpDuration: model.Duration1Week,
		SampleData:       true,
	})

	view := m.View()
	for _, want := range []string{"Concise", "1 Week", "On", "Category Priority", "Customer", "agent-123"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in overview:\n%s", want, view)
		}
	}
}

func TestSavePreferencesPersistsAndNotifies(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := New(s, keys.DefaultKeyMap(), AgentInfo{}, 100, 40)

	want := model.Preferences{
		Tone:             model.ToneFormal,
		FollowUpDuration: model.Duration4Hours,
		SampleData:       true,
	}
	msg := m.savePreferences(want)()

	m, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected PreferencesSavedMsg command")
	}
	saved, ok := cmd().(PreferencesSavedMsg)
	if !ok {
		t.Fatalf("expected PreferencesSavedMsg, got %T", cmd())
	}
	if saved.Prefs != want {
		t.Errorf("Prefs = %+v, want %+v", saved.Prefs, want)
	}
	if m.statusMsg != "Settings saved" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	got, err := s.LoadPreferences(context.Background(), model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got != want {
		t.Errorf("stored %+v, want %+v", got, want)
	}
}

func TestEditOpensForm(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeForm {
		t.Fatalf("mode = %d, want ModeForm", m.mode)
	}
	if !m.Capturing() {
		t.Error("expected the form to capture input")
	}
	if m.fb.tone != string(model.ToneProfessional) {
		t.Errorf("form tone = %q, want current preference", m.fb.tone)
	}
}

func TestValidateAgent(t *testing.T) {
	tests := []struct {
		name    string
		agent   stubAgent
		wantErr bool
		wantMsg string
	}{
		{
			name:    "reachable",
			agent:   stubAgent{resp: &agent.Response{Success: true, Result: agent.Result{"message": "pong"}}},
			wantMsg: "pong",
		},
		{
			name:    "reported failure",
			agent:   stubAgent{resp: &agent.Response{Success: false, Error: "bad agent id"}},
			wantErr: true,
		},
		{
			name:    "transport error",
			agent:   stubAgent{err: errors.New("dial tcp: refused")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, tt.agent)

			m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
			if m.mode != ModeValidating {
				t.Fatalf("mode = %d, want ModeValidating", m.mode)
			}
			if cmd == nil {
				t.Fatal("expected validation command")
			}

			msg := m.validateAgent()()
			m, _ = m.Update(msg)
			if m.mode != ModeValidateResult {
				t.Fatalf("mode = %d, want ModeValidateResult", m.mode)
			}
			if (m.validError != nil) != tt.wantErr {
				t.Errorf("validError = %v, wantErr %v", m.validError, tt.wantErr)
			}
			if tt.wantMsg != "" && m.validResult != tt.wantMsg {
				t.Errorf("validResult = %q, want %q", m.validResult, tt.wantMsg)
			}
		})
	}
}

func TestTestWithoutAgent(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.mode != ModeOverview {
		t.Errorf("mode = %d, want ModeOverview", m.mode)
	}
	if m.statusMsg != "No agent configured" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestKeySavedNotifiesAgentRebuild(t *testing.T) {
	m := newTestModel(t, nil)
	m.mode = ModeAPIKey

	m, cmd := m.Update(keySavedInternalMsg{key: "sk-new"})
	if m.mode != ModeOverview {
		t.Errorf("mode = %v, want overview", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a command after saving the key")
	}
	got, ok := cmd().(APIKeySavedMsg)
	if !ok || got.Key != "sk-new" {
		t.Errorf("msg = %#v, want APIKeySavedMsg{sk-new}", got)
	}

	m, cmd = m.Update(keySavedInternalMsg{key: "sk-bad", err: errors.New("keyring locked")})
	if cmd != nil {
		t.Error("expected no notification when the keyring write fails")
	}
	if !strings.Contains(m.View(), "keyring locked") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		wantName Name
		wantArgs int
		wantOK   bool
	}{
		{"sync", Sync, 0, true},
		{"  SYNC  ", Sync, 0, true},
		{"refresh", Sync, 0, true},
		{"sample on", Sample, 1, true},
		{"fu", FollowUps, 0, true},
		{"q", Quit, 0, true},
		{"", "", 0, false},
		{"launch rockets", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Name != tt.wantName {
				t.Errorf("Parse(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if len(got.Args) != tt.wantArgs {
				t.Errorf("Parse(%q) args = %v, want %d", tt.input, got.Args, tt.wantArgs)
			}
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 24)
	m.input.SetValue(" sync ")

	_, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(CommandMsg)
	if !ok {
		t.Fatalf("expected CommandMsg, got %T", cmd())
	}
	if string(msg) != "sync" {
		t.Errorf("CommandMsg = %q, want %q", msg, "sync")
	}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

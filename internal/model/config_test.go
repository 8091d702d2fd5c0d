package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Agent.Backend != BackendHTTP || cfg.Agent.AgentID != DefaultAgentID {
		t.Errorf("agent = %+v", cfg.Agent)
	}
	if cfg.Agent.Timeout().Seconds() != 120 {
		t.Errorf("Timeout = %v", cfg.Agent.Timeout())
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "agent:\n  backend: anthropic\n  max_tokens: 512\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Agent.Backend != BackendAnthropic || cfg.Agent.MaxTokens != 512 {
		t.Errorf("agent = %+v", cfg.Agent)
	}
	if cfg.Agent.AgentID != DefaultAgentID {
		t.Errorf("AgentID = %q, want default", cfg.Agent.AgentID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Data.DBPath == "" {
		t.Error("DBPath default missing")
	}
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("agent:\n  backend: carrier-pigeon\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Agent.UserID = "me@example.com"
	cfg.Display.SampleData = true
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Agent.UserID != "me@example.com" || !got.Display.SampleData {
		t.Errorf("round trip = %+v", got)
	}
}

package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Agent backend identifiers.
const (
	BackendHTTP      = "http"
	BackendAnthropic = "anthropic"
)

// DefaultAgentID is the identifier of the hosted email agent.
const DefaultAgentID = "699b1a8a4afb73473e8103fa"

// AgentConfig holds settings for the remote agent integration.
type AgentConfig struct {
	// Backend selects the transport: "http" (hosted agent endpoint) or
	// "anthropic" (Messages API driven directly).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Endpoint is the URL the HTTP backend POSTs instructions to.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// AgentID is the fixed agent identifier sent with every call.
	AgentID string `mapstructure:"agent_id" yaml:"agent_id"`

	// UserID identifies the mailbox owner to the hosted agent.
	UserID string `mapstructure:"user_id" yaml:"user_id"`

	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	Model      string `mapstructure:"model" yaml:"model"`
	MaxTokens  int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// Timeout returns the per-call HTTP timeout.
func (c AgentConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// SampleData is the initial sample-data toggle for a fresh preferences
	// database. Once the user flips the toggle, the stored value wins.
	SampleData bool `mapstructure:"sample_data" yaml:"sample_data"`
}

// LogConfig controls the structured log output.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// DataConfig controls where local state is kept.
type DataConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
}

// ConfigDir returns ~/.config/inboxpilot, or the working directory if the
// home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "inboxpilot")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/inboxpilot/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Agent: AgentConfig{
			Backend:    BackendHTTP,
			Endpoint:   "https://agent-prod.studio.lyzr.ai/v3/inference/chat/",
			AgentID:    DefaultAgentID,
			UserID:     "",
			TimeoutSec: 120,
			Model:      "claude-sonnet-4-5-20250929",
			MaxTokens:  2048,
		},
		Display: DisplayConfig{
			Theme:      "default",
			SampleData: false,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "inboxpilot.log"),
		},
		Data: DataConfig{
			DBPath: filepath.Join(dir, "inboxpilot.db"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("agent.backend", defaults.Agent.Backend)
	v.SetDefault("agent.endpoint", defaults.Agent.Endpoint)
	v.SetDefault("agent.agent_id", defaults.Agent.AgentID)
	v.SetDefault("agent.timeout_sec", defaults.Agent.TimeoutSec)
	v.SetDefault("agent.model", defaults.Agent.Model)
	v.SetDefault("agent.max_tokens", defaults.Agent.MaxTokens)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("data.db_path", defaults.Data.DBPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Agent.Backend {
	case BackendHTTP, BackendAnthropic:
	default:
		return nil, fmt.Errorf("config %s: unknown agent backend %q", path, cfg.Agent.Backend)
	}
	if cfg.Agent.AgentID == "" {
		cfg.Agent.AgentID = DefaultAgentID
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("agent", cfg.Agent)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)
	v.Set("data", cfg.Data)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

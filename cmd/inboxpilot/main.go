// Package main is the entry point for the InboxPilot terminal client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/inbox-pilot/internal/agent"
	"github.com/nhle/inbox-pilot/internal/app"
	"github.com/nhle/inbox-pilot/internal/credential"
	"github.com/nhle/inbox-pilot/internal/logging"
	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to YAML configuration file")
	writeConfig := flag.Bool("init-config", false, "write the effective configuration to -config and exit")
	flag.Parse()

	if err := run(*configPath, *writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "inboxpilot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, writeConfig bool) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if writeConfig {
		if err := model.SaveConfig(configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configPath)
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := os.MkdirAll(filepath.Dir(cfg.Data.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.NewSQLiteStore(cfg.Data.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	defaults := model.DefaultPreferences()
	defaults.SampleData = cfg.Display.SampleData
	prefs, err := st.LoadPreferences(context.Background(), defaults)
	if err != nil {
		logger.Warn("loading preferences, using defaults", zap.Error(err))
		prefs = defaults
	}

	a, backend, keyName := selectAgent(cfg.Agent, logger)

	logger.Info("starting inboxpilot",
		zap.String("backend", cfg.Agent.Backend),
		zap.String("agent_id", cfg.Agent.AgentID),
		zap.String("db", cfg.Data.DBPath),
		zap.Bool("sample_data", prefs.SampleData),
		zap.Bool("agent_ready", a != nil),
	)

	m := app.New(app.Options{
		Agent:    a,
		AgentID:  cfg.Agent.AgentID,
		Backend:  backend,
		KeyName:  keyName,
		NewAgent: agentBuilder(cfg.Agent, logger),
		Store:    st,
		Prefs:    prefs,
		Log:      logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// selectAgent builds the configured agent backend. The hosted agent may run
// without an API key. A missing Anthropic key leaves the agent nil, so every
// call reports a network error while sample data stays usable.
func selectAgent(cfg model.AgentConfig, logger *zap.Logger) (agent.Agent, string, string) {
	build := agentBuilder(cfg, logger)
	switch cfg.Backend {
	case model.BackendAnthropic:
		key, err := credential.Resolve(credential.EnvClaudeAPIKey, credential.KeyClaudeAPIKey)
		if err != nil {
			logger.Warn("no Anthropic API key", zap.Error(err))
			return nil, "Anthropic", credential.KeyClaudeAPIKey
		}
		a, err := build(key)
		if err != nil {
			logger.Warn("creating Anthropic agent", zap.Error(err))
			return nil, "Anthropic", credential.KeyClaudeAPIKey
		}
		return a, "Anthropic", credential.KeyClaudeAPIKey

	default:
		key, err := credential.Resolve(credential.EnvAgentAPIKey, credential.KeyAgentAPIKey)
		if err != nil {
			logger.Warn("no agent API key, calling without one", zap.Error(err))
		}
		a, _ := build(key)
		return a, "Hosted agent", credential.KeyAgentAPIKey
	}
}

// agentBuilder returns a constructor for the configured backend, used at
// startup and again when a new API key is saved from settings.
func agentBuilder(cfg model.AgentConfig, logger *zap.Logger) func(apiKey string) (agent.Agent, error) {
	return func(apiKey string) (agent.Agent, error) {
		if cfg.Backend == model.BackendAnthropic {
			a, err := agent.NewAnthropicAgent(apiKey, "", cfg.Model, cfg.MaxTokens)
			if err != nil {
				return nil, err
			}
			return agent.WithLogging(a, logger), nil
		}
		a := agent.NewHTTPAgent(cfg.Endpoint, apiKey, cfg.UserID, cfg.Timeout())
		return agent.WithLogging(a, logger), nil
	}
}

package cmd

import (
	"fmt"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/ai"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/config"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/logging"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/orchestrator"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/prioritize"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

// app bundles the wired-up components every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	orch   *orchestrator.Orchestrator
}

// buildApp loads the configuration and wires the orchestrator. Close the
// returned app when done to flush the debug log.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dataDir := cfg.Paths.ResolveDataDir()

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		l, err := logging.NewLogger(dataDir, cfg.Logging.Level)
		if err == nil {
			logger = l
		}
	}

	store, err := session.NewFileStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory %s: %w", dataDir, err)
	}

	client := ai.NewGroqClient(cfg.AI)
	service := prioritize.NewService(client, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		orch:   orchestrator.New(service, store, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.logger.Close()
}

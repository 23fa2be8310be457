package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thisistayeb/QuantumBlackJack/internal/config"
	"github.com/thisistayeb/QuantumBlackJack/internal/tui"
)

// PlayCmd starts an interactive hotseat game in the terminal.
type PlayCmd struct {
	Config string `short:"c" help:"Path to the HCL configuration file" default:"quantumjack.hcl"`
	Seed   int64  `help:"Random seed (overrides config; 0 seeds from the clock)"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seed := cfg.Session.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The TUI owns the terminal, so debug output goes to a file.
	logFile, err := os.OpenFile(cfg.Session.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level := log.InfoLevel
	if c.Debug || cfg.Session.LogLevel == "debug" {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	logger.Info("Starting interactive game", "seed", seed, "config", c.Config)

	return tui.Run(tui.Options{
		Seed:   seed,
		Rules:  cfg.GameRules(),
		Pace:   time.Duration(cfg.Session.PaceMillis) * time.Millisecond,
		Logger: logger,
	})
}

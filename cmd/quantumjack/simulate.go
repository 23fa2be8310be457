package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thisistayeb/QuantumBlackJack/internal/config"
	"github.com/thisistayeb/QuantumBlackJack/internal/simulator"
)

// SimulateCmd runs a batch of automated sessions and prints aggregate
// statistics.
type SimulateCmd struct {
	Sessions int    `short:"n" help:"Number of sessions to play" default:"1000"`
	Seed     int64  `help:"Random seed (0 seeds from the clock)"`
	Workers  int    `short:"w" help:"Parallel workers (0 = one per CPU)"`
	Config   string `short:"c" help:"Path to the HCL configuration file" default:"quantumjack.hcl"`
	Debug    bool   `short:"d" help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})
	logger.Info("Running simulation", "sessions", c.Sessions, "seed", seed)

	sim := simulator.New(simulator.Config{
		Sessions: c.Sessions,
		Seed:     seed,
		Workers:  c.Workers,
		Rules:    cfg.GameRules(),
		Logger:   logger,
	})
	stats, err := sim.Run(context.Background())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Print(stats.Summary())
	return nil
}

// Package config loads the optional quantumjack.hcl configuration
// file. A missing file yields the defaults, so the game runs with no
// setup at all.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/thisistayeb/QuantumBlackJack/internal/game"
)

// Config represents the complete game configuration
type Config struct {
	Session SessionSettings `hcl:"session,block"`
	Rules   RulesSettings   `hcl:"rules,block"`
}

// SessionSettings contains presentation and pacing configuration
type SessionSettings struct {
	// Seed fixes the random stream; 0 means seed from the clock.
	Seed int64 `hcl:"seed,optional"`

	// PaceMillis is the cosmetic delay between announced resolution
	// phases. It never affects outcomes.
	PaceMillis int `hcl:"pace_ms,optional"`

	LogFile  string `hcl:"log_file,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RulesSettings overrides the table constants
type RulesSettings struct {
	StandsThreshold int `hcl:"stands_threshold,optional"`
	TargetScore     int `hcl:"target_score,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Session: SessionSettings{
			PaceMillis: 600,
			LogFile:    "quantumjack.log",
			LogLevel:   "info",
		},
		Rules: RulesSettings{
			StandsThreshold: rules.StandsThreshold,
			TargetScore:     rules.TargetScore,
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if cfg.Session.PaceMillis == 0 {
		cfg.Session.PaceMillis = defaults.Session.PaceMillis
	}
	if cfg.Session.LogFile == "" {
		cfg.Session.LogFile = defaults.Session.LogFile
	}
	if cfg.Session.LogLevel == "" {
		cfg.Session.LogLevel = defaults.Session.LogLevel
	}
	if cfg.Rules.StandsThreshold == 0 {
		cfg.Rules.StandsThreshold = defaults.Rules.StandsThreshold
	}
	if cfg.Rules.TargetScore == 0 {
		cfg.Rules.TargetScore = defaults.Rules.TargetScore
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against the game's rule
// invariants.
func (c *Config) Validate() error {
	if c.Session.PaceMillis < 0 {
		return fmt.Errorf("pace_ms must not be negative, got %d", c.Session.PaceMillis)
	}
	return c.GameRules().Validate()
}

// GameRules converts the configured overrides into table rules.
func (c *Config) GameRules() game.Rules {
	rules := game.DefaultRules()
	rules.StandsThreshold = c.Rules.StandsThreshold
	rules.TargetScore = c.Rules.TargetScore
	return rules
}

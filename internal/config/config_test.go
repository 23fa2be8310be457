package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quantumjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 14, cfg.Rules.StandsThreshold)
	assert.Equal(t, 17, cfg.Rules.TargetScore)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
session {
  seed     = 1234
  pace_ms  = 50
  log_file = "debug.log"
}

rules {
  stands_threshold = 12
  target_score     = 16
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Session.Seed)
	assert.Equal(t, 50, cfg.Session.PaceMillis)
	assert.Equal(t, "debug.log", cfg.Session.LogFile)
	assert.Equal(t, "info", cfg.Session.LogLevel, "missing values fall back to defaults")

	rules := cfg.GameRules()
	assert.Equal(t, 12, rules.StandsThreshold)
	assert.Equal(t, 16, rules.TargetScore)
	assert.NoError(t, rules.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
session {
  seed = 7
}

rules {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Session.Seed)
	assert.Equal(t, 600, cfg.Session.PaceMillis)
	assert.Equal(t, 14, cfg.Rules.StandsThreshold)
}

func TestLoad_RejectsInvalidRules(t *testing.T) {
	path := writeConfig(t, `
session {}

rules {
  stands_threshold = 20
  target_score     = 16
}
`)

	_, err := Load(path)
	assert.Error(t, err, "target below stands threshold must be rejected")
}

func TestLoad_RejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, `session { seed = `)
	_, err := Load(path)
	assert.Error(t, err)
}

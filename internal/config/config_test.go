package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, 10, cfg.CooldownSeconds)
	assert.Equal(t, 10.0, cfg.DefaultBaseline)
	assert.Equal(t, 7, cfg.WindowDays)
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.Equal(t, 8, cfg.FactIntervalSeconds)
	assert.False(t, cfg.Logging.Debug)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 10*time.Second, cfg.Cooldown())
	assert.Equal(t, 8*time.Second, cfg.FactInterval())
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
timezone: "UTC"
cooldown_seconds: 30
window_days: 14
logging:
  debug: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 30, cfg.CooldownSeconds)
	assert.Equal(t, 14, cfg.WindowDays)
	assert.True(t, cfg.Logging.Debug)

	// Non-overridden values remain defaults
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.Equal(t, 10.0, cfg.DefaultBaseline)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad timezone", content: "timezone: Mars/Olympus\n"},
		{name: "negative cooldown", content: "cooldown_seconds: -1\n"},
		{name: "zero baseline", content: "default_baseline: 0\n"},
		{name: "window too wide", content: "window_days: 365\n"},
		{name: "zero window", content: "window_days: 0\n"},
		{name: "zero recent", content: "recent_limit: 0\n"},
		{name: "zero fact interval", content: "fact_interval_seconds: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.content), 0o644))

			_, err := Load(cfgPath)
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0o644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.WindowDays)

	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("recent_limit: 3\n"), 0o644))

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RecentLimit)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/smokelog")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/smokelog"), got)

	got, err = ExpandPath("/var/data")
	require.NoError(t, err)
	assert.Equal(t, "/var/data", got)
}

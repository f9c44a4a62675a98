// Package config loads the application settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/utils"
)

// MaxWindowDays bounds the history chart.
const MaxWindowDays = 90

// Config holds the user-tunable settings.
type Config struct {
	Timezone            string        `yaml:"timezone"`
	CooldownSeconds     int           `yaml:"cooldown_seconds"`
	DefaultBaseline     float64       `yaml:"default_baseline"`
	WindowDays          int           `yaml:"window_days"`
	RecentLimit         int           `yaml:"recent_limit"`
	FactIntervalSeconds int           `yaml:"fact_interval_seconds"`
	Logging             LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Timezone:            constants.DefaultTimezone,
		CooldownSeconds:     int(constants.DefaultCooldown / time.Second),
		DefaultBaseline:     constants.DefaultBaseline,
		WindowDays:          constants.DefaultWindow,
		RecentLimit:         constants.RecentLimit,
		FactIntervalSeconds: int(constants.DefaultFactInterval / time.Second),
	}
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("cooldown_seconds must not be negative, got %d", c.CooldownSeconds)
	}
	if c.DefaultBaseline < constants.MinAvgPerDay || c.DefaultBaseline > constants.MaxAvgPerDay {
		return fmt.Errorf("default_baseline must be between %d and %d, got %v",
			constants.MinAvgPerDay, constants.MaxAvgPerDay, c.DefaultBaseline)
	}
	if c.WindowDays < 1 || c.WindowDays > MaxWindowDays {
		return fmt.Errorf("window_days must be between 1 and %d, got %d", MaxWindowDays, c.WindowDays)
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("recent_limit must be at least 1, got %d", c.RecentLimit)
	}
	if c.FactIntervalSeconds < 1 {
		return fmt.Errorf("fact_interval_seconds must be at least 1, got %d", c.FactIntervalSeconds)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c *Config) FactInterval() time.Duration {
	return time.Duration(c.FactIntervalSeconds) * time.Second
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// holds an out-of-range value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// DefaultPath is the settings file location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := ExpandPath(constants.DefaultSettingsDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.SettingsFileName), nil
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

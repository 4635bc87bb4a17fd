// Package config provides configuration management for the subproc CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the subproc CLI configuration.
type Config struct {
	Run     RunConfig     `yaml:"run"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// RunConfig holds defaults for the run command.
type RunConfig struct {
	GraceMs int    `yaml:"grace_ms"` // Grace window before SIGKILL escalation
	Signal  string `yaml:"signal"`   // Default policy signal: "int" or "term"
}

// HistoryConfig holds run-history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"` // Record runs to the history database
	Path    string `yaml:"path"`    // Database path (empty = default data dir)
	TailKB  int    `yaml:"tail_kb"` // Captured stdout/stderr tail size in KB
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			GraceMs: 5000,
			Signal:  "term",
		},
		History: HistoryConfig{
			Enabled: true,
			TailKB:  4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks field values against their allowed sets.
func (c *Config) Validate() error {
	switch c.Run.Signal {
	case "int", "term":
	default:
		return fmt.Errorf("run.signal must be \"int\" or \"term\", got %q", c.Run.Signal)
	}
	if c.Run.GraceMs < 0 {
		return fmt.Errorf("run.grace_ms must not be negative, got %d", c.Run.GraceMs)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.History.TailKB <= 0 {
		return fmt.Errorf("history.tail_kb must be positive, got %d", c.History.TailKB)
	}
	return nil
}

// Package config provides configuration types and defaults for stint.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/stint/internal/tracing"
)

// Config holds all configuration options for stint.
type Config struct {
	DB      DBConfig       `mapstructure:"db"`
	Undo    UndoConfig     `mapstructure:"undo"`
	Log     LogConfig      `mapstructure:"log"`
	Tracing tracing.Config `mapstructure:"tracing"`
	UI      UIConfig       `mapstructure:"ui"`
}

// DBConfig holds database location configuration.
type DBConfig struct {
	// Path is the sqlite database file.
	// Default: ~/.stint/stint.db
	Path string `mapstructure:"path"`

	// AutoRefresh reloads the UI when the database file changes on disk.
	AutoRefresh bool `mapstructure:"auto_refresh"`
}

// UndoConfig holds undo engine configuration.
type UndoConfig struct {
	// Capacity bounds how many undoable commands are retained.
	// Zero falls back to the engine default.
	Capacity int `mapstructure:"capacity"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the minimum level written to the log file.
	// Valid values: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`

	// File is the log output path. Empty disables file logging.
	File string `mapstructure:"file"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// Theme selects the color scheme. Valid values: "dark", "light".
	Theme string `mapstructure:"theme"`
}

// DefaultDBPath returns the default database location.
// Returns ~/.stint/stint.db or a relative fallback if the home
// directory is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stint", "stint.db")
	}
	return filepath.Join(home, ".stint", "stint.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/stint/traces/traces.jsonl or empty string if home
// dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stint", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DB: DBConfig{
			Path:        DefaultDBPath(),
			AutoRefresh: true,
		},
		Undo: UndoConfig{
			Capacity: 0, // engine default
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Tracing: tracing.DefaultConfig(),
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// Validate checks the configuration for errors. Empty values fall back
// to defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.Undo.Capacity < 0 {
		return fmt.Errorf("undo.capacity must not be negative, got %d", cfg.Undo.Capacity)
	}

	if cfg.Log.Level != "" {
		switch cfg.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", cfg.Log.Level)
		}
	}

	if cfg.UI.Theme != "" && cfg.UI.Theme != "dark" && cfg.UI.Theme != "light" {
		return fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", cfg.UI.Theme)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(cfg tracing.Config) error {
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}

	if cfg.Exporter != "" {
		switch cfg.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if cfg.Enabled {
		if cfg.Exporter == "file" && cfg.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if cfg.Exporter == "otlp" && cfg.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

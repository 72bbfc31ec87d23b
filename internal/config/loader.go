package config

// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
)

// DefaultPath returns the path a config file is expected at:
// $XDG_CONFIG_HOME/histman/config.toml, falling back to
// ~/.config/histman/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "histman", "config.toml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "histman", "config.toml")
}

// DetectConfigPath returns DefaultPath if a file exists there, or empty
// string if none exists (caller should use defaults).
func DetectConfigPath() string {
	path := DefaultPath()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("config file not found: %w", err)}
		}
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	applyEnvOverrides(cfg)
	expandPath(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("config validation failed: %w: %w", histerrors.ErrInvalid, err)}
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from the standard path.
// If no config file is found, returns defaults with environment overrides.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPath(cfg)

		if err := cfg.Validate(); err != nil {
			return nil, &histerrors.ConfigError{Err: fmt.Errorf("config validation failed: %w: %w", histerrors.ErrInvalid, err)}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: HISTMAN_<SECTION>_<FIELD>
//
// Examples:
// - HISTMAN_HISTORY_PATH overrides [history].path
// - HISTMAN_RELOAD_ENABLED overrides [reload].enabled
// - HISTMAN_LOG_LEVEL overrides [log].level
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// History section
	applyString("HISTMAN_HISTORY_PATH", &c.History.Path)

	// Reload section
	applyBool("HISTMAN_RELOAD_ENABLED", &c.Reload.Enabled)
	applyString("HISTMAN_RELOAD_TIMEOUT", &c.Reload.Timeout)

	// Log section
	applyString("HISTMAN_LOG_LEVEL", &c.Log.Level)
	applyString("HISTMAN_LOG_FORMAT", &c.Log.Format)

	// Output section
	applyString("HISTMAN_OUTPUT_FORMAT", &c.Output.Format)
	applyBool("HISTMAN_OUTPUT_COLOR", &c.Output.Color)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Output.Color = false
	}
}

// expandPath expands ~ to the home directory in the history path.
func expandPath(c *Config) {
	if strings.HasPrefix(c.History.Path, "~/") || c.History.Path == "~" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			c.History.Path = filepath.Join(homeDir, strings.TrimPrefix(c.History.Path, "~"))
		}
	}
}

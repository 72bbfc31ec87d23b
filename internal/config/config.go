// Package config provides configuration management for histman.
//
// Configuration is optional. With no file present the defaults reproduce the
// plain behavior: history path from $SHELL, reload enabled, warnings-only
// logging and text output.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level configuration struct for histman.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Reload  ReloadConfig  `toml:"reload" yaml:"reload"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
}

// HistoryConfig contains history file settings.
type HistoryConfig struct {
	// Path overrides the history file derived from $SHELL.
	// The shell kind (format and reload command) still comes from $SHELL.
	Path string `toml:"path" yaml:"path"`
}

// ReloadConfig contains settings for reloading the running shell.
type ReloadConfig struct {
	// Enabled controls whether the reload command runs after rewriting.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Timeout bounds the reload subprocess (Go duration, e.g. "5s").
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// Level is the minimum level logged.
	// Valid values: "debug", "info", "warn", "error".
	Level string `toml:"level" yaml:"level"`

	// Format is the log handler format.
	// Valid values: "text", "json".
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig contains console output settings.
type OutputConfig struct {
	// Format is the report format.
	// Valid values: "text", "json", "yaml".
	Format string `toml:"format" yaml:"format"`

	// Color enables styled text output.
	Color bool `toml:"color" yaml:"color"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Path: "",
		},
		Reload: ReloadConfig{
			Enabled: true,
			Timeout: "5s",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// ReloadTimeout returns the parsed reload timeout.
func (c *Config) ReloadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Reload.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Validate Reload section
	d, err := time.ParseDuration(c.Reload.Timeout)
	if err != nil {
		return fmt.Errorf("reload.timeout must be a duration like \"5s\"; got %q", c.Reload.Timeout)
	}
	if d <= 0 {
		return fmt.Errorf("reload.timeout must be > 0; got %q", c.Reload.Timeout)
	}

	// Validate Log section
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("log.format must be one of: text, json; got %q", c.Log.Format)
	}

	// Validate Output section
	if err := ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}

	return nil
}

// ValidateOutputFormat checks a report format name.
func ValidateOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output.format must be one of: text, json, yaml; got %q", format)
	}
}

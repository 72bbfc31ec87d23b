package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
)

// TestDetectConfigPath_NoConfig tests that empty string is returned when no config exists.
func TestDetectConfigPath_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if path := DetectConfigPath(); path != "" {
		t.Errorf("DetectConfigPath() = %q, want empty", path)
	}
}

func TestDetectConfigPath_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "histman", "config.toml")
	if err := Write(want, DefaultConfig()); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}

	if path := DetectConfigPath(); path != want {
		t.Errorf("DetectConfigPath() = %q, want %q", path, want)
	}
}

// TestLoad_ValidConfig tests loading a valid config file.
func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[history]
path = "/tmp/custom_history"

[reload]
enabled = false
timeout = "2s"

[log]
level = "debug"
format = "json"

[output]
format = "yaml"
color = false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.History.Path != "/tmp/custom_history" {
		t.Errorf("expected history.path to be '/tmp/custom_history', got %q", cfg.History.Path)
	}
	if cfg.Reload.Enabled {
		t.Error("expected reload.enabled to be false")
	}
	if cfg.ReloadTimeout() != 2*time.Second {
		t.Errorf("expected reload timeout 2s, got %s", cfg.ReloadTimeout())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Color {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
}

// TestLoad_PartialConfig tests that unspecified fields keep their defaults.
func TestLoad_PartialConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[log]\nlevel = \"info\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Log.Level != "info" {
		t.Errorf("expected log.level 'info', got %q", cfg.Log.Level)
	}
	if cfg.Reload != defaults.Reload {
		t.Errorf("expected default reload config, got %+v", cfg.Reload)
	}
	if cfg.Output.Format != defaults.Output.Format {
		t.Errorf("expected default output format, got %q", cfg.Output.Format)
	}
}

func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	cfgErr, ok := histerrors.AsConfigError(err)
	if !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Path != path {
		t.Errorf("expected path %q, got %q", path, cfgErr.Path)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' in error, got %q", err.Error())
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[log\nlevel = "), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %q", err.Error())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad log format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"bad output format", "[output]\nformat = \"csv\"\n", "output.format"},
		{"bad timeout", "[reload]\ntimeout = \"soon\"\n", "reload.timeout"},
		{"zero timeout", "[reload]\ntimeout = \"0s\"\n", "reload.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !histerrors.IsInvalid(err) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to mention %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

// TestLoadWithDefaults_EnvOverrides tests HISTMAN_* overrides with no config file.
func TestLoadWithDefaults_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HISTMAN_RELOAD_ENABLED", "false")
	t.Setenv("HISTMAN_RELOAD_TIMEOUT", "750ms")
	t.Setenv("HISTMAN_LOG_LEVEL", "error")
	t.Setenv("HISTMAN_OUTPUT_FORMAT", "json")
	t.Setenv("HISTMAN_HISTORY_PATH", "/tmp/h")

	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() returned error: %v", err)
	}

	if cfg.Reload.Enabled {
		t.Error("expected reload disabled by env")
	}
	if cfg.ReloadTimeout() != 750*time.Millisecond {
		t.Errorf("expected 750ms timeout, got %s", cfg.ReloadTimeout())
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log.level 'error', got %q", cfg.Log.Level)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected output.format 'json', got %q", cfg.Output.Format)
	}
	if cfg.History.Path != "/tmp/h" {
		t.Errorf("expected history.path '/tmp/h', got %q", cfg.History.Path)
	}
}

func TestLoadWithDefaults_InvalidEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HISTMAN_LOG_LEVEL", "chatty")

	if _, err := LoadWithDefaults(); !histerrors.IsInvalid(err) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestApplyEnvOverrides_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Output.Color {
		t.Error("expected NO_COLOR to disable color")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.History.Path = "~/.zsh_history"
	expandPath(cfg)

	want := filepath.Join(home, ".zsh_history")
	if cfg.History.Path != want {
		t.Errorf("expected %q, got %q", want, cfg.History.Path)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Reload.Timeout = "3s"
	cfg.Output.Color = false

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestEncodeYAML(t *testing.T) {
	data, err := EncodeYAML(DefaultConfig())
	if err != nil {
		t.Fatalf("EncodeYAML() returned error: %v", err)
	}
	for _, want := range []string{"reload:", "timeout: 5s", "level: warn"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected YAML to contain %q:\n%s", want, data)
		}
	}
}

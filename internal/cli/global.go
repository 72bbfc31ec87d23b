package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aeskafi/HistoryManager/internal/config"
	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/logging"
)

// GlobalOptions holds flags shared by every command.
// Empty values mean "use the config file or its defaults".
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	Output     string
	NoColor    bool
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, opts *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/histman/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "",
		"diagnostic log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "",
		"output format: text, json, yaml")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable styled output")
}

// LoadConfig loads the config file and applies flag overrides on top.
func (g *GlobalOptions) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.ConfigPath != "" {
		cfg, err = config.Load(g.ConfigPath)
	} else {
		cfg, err = config.LoadWithDefaults()
	}
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Output != "" {
		cfg.Output.Format = g.Output
	}
	if g.NoColor {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w: %w", histerrors.ErrInvalid, err)
	}
	return cfg, nil
}

// Logger builds the diagnostic logger for cfg, writing to w.
func Logger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, w)
}

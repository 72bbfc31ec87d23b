package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeskafi/HistoryManager/internal/config"
	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the histman config file",
	}

	cmd.AddCommand(newConfigInitCommand(global))
	cmd.AddCommand(newConfigShowCommand(global))

	return cmd
}

// ConfigInitOptions contains the options for config init.
type ConfigInitOptions struct {
	Force bool
}

func newConfigInitCommand(global *GlobalOptions) *cobra.Command {
	opts := &ConfigInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file populated with the default settings.

The file is written to --config if given, otherwise to
$XDG_CONFIG_HOME/histman/config.toml (~/.config/histman/config.toml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine config path; use --config")
			}

			if _, err := os.Stat(path); err == nil && !opts.Force {
				return histerrors.Newf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.Write(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func newConfigShowCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file, HISTMAN_*
environment variables and flags. Text output is TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.LoadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format != "text" {
				return writeStructured(out, cfg.Output.Format, cfg)
			}

			data, err := config.EncodeTOML(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

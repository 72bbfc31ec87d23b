// Package cli provides Cobra command definitions for histman.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo contains version information for the binary.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
	Go      string `json:"go_version" yaml:"go_version"`
}

// String formats the version for --version.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", v.Version, v.Commit, v.Date)
}

// VersionOptions contains the options for the version command.
type VersionOptions struct {
	Short bool
}

// NewVersionCommand creates the version command.
// The output format follows -o, HISTMAN_OUTPUT_FORMAT and output.format.
func NewVersionCommand(global *GlobalOptions, info VersionInfo) *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display the histman version information.

Shows version, commit hash, build date, who built it, and Go version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.LoadConfig()
			if err != nil {
				return err
			}
			return runVersion(cmd, opts, info, cfg.Output.Format)
		},
	}

	cmd.Flags().BoolVar(&opts.Short, "short", false, "print only the version number")

	return cmd
}

func runVersion(cmd *cobra.Command, opts *VersionOptions, info VersionInfo, format string) error {
	info.Go = runtime.Version()
	out := cmd.OutOrStdout()

	if format == "json" || format == "yaml" {
		return writeStructured(out, format, info)
	}

	if opts.Short {
		fmt.Fprintln(out, info.Version)
		return nil
	}

	fmt.Fprintf(out, "histman version %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built at: %s\n", info.Date)
	if info.BuiltBy != "" && info.BuiltBy != "unknown" {
		fmt.Fprintf(out, "built by: %s\n", info.BuiltBy)
	}
	fmt.Fprintf(out, "go version: %s\n", info.Go)

	return nil
}

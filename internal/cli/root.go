package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aeskafi/HistoryManager/internal/app"
	"github.com/aeskafi/HistoryManager/internal/backup"
	"github.com/aeskafi/HistoryManager/internal/reload"
)

// RunOptions contains the options for the deduplication run.
type RunOptions struct {
	DryRun   bool
	NoReload bool
	Confirm  bool
}

// NewRootCommand creates the histman command. Run without arguments it
// deduplicates the history file of the shell named by $SHELL.
func NewRootCommand(info VersionInfo) *cobra.Command {
	global := &GlobalOptions{}
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "histman",
		Short: "Remove duplicate entries from your shell history",
		Long: `histman removes duplicate entries from the history file of the shell named
by $SHELL (bash, zsh, fish or ksh), keeping the first occurrence of each
command in its original order.

Before rewriting, the history file is copied to a timestamped backup next to
it (<history>.<timestamp>.bak). After rewriting, the running shell is asked
to reload its history where the shell supports it.`,
		Example: `  histman                 # deduplicate and reload
  histman --dry-run       # show what would be removed
  histman --confirm       # ask before rewriting
  histman -o json         # machine-readable report`,
		Version:       info.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedupe(cmd, global, opts)
		},
	}

	AddGlobalFlags(cmd, global)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report duplicates without modifying anything")
	cmd.Flags().BoolVar(&opts.NoReload, "no-reload", false, "do not ask the running shell to reload its history")
	cmd.Flags().BoolVar(&opts.Confirm, "confirm", false, "ask for confirmation before rewriting")

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewBackupsCommand(global))
	cmd.AddCommand(NewConfigCommand(global))
	cmd.AddCommand(NewVersionCommand(global, info))

	return cmd
}

func runDedupe(cmd *cobra.Command, global *GlobalOptions, opts *RunOptions) error {
	cfg, err := global.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := Logger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runOpts := app.Options{
		ShellPath:   os.Getenv("SHELL"),
		HistoryPath: cfg.History.Path,
		DryRun:      opts.DryRun,
		SkipReload:  opts.NoReload || !cfg.Reload.Enabled,
		Backup:      backup.NewWriter(logger),
		Trigger:     reload.NewTrigger(cfg.ReloadTimeout(), logger),
		Logger:      logger,
	}
	if opts.Confirm {
		runOpts.Confirm = promptConfirm()
	}

	report, err := app.Run(cmd.Context(), runOpts)
	if renderErr := renderReport(cmd.OutOrStdout(), report, cfg.Output.Format, cfg.Output.Color); renderErr != nil && err == nil {
		err = renderErr
	}
	return err
}

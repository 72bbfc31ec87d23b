package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/aeskafi/HistoryManager/internal/backup"
	"github.com/aeskafi/HistoryManager/internal/shell"
)

// BackupsOptions contains the options for the backups command.
type BackupsOptions struct {
	Path string
}

// NewBackupsCommand creates the backups command.
func NewBackupsCommand(global *GlobalOptions) *cobra.Command {
	opts := &BackupsOptions{}

	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List backups of the shell history file",
		Long: `List the backups histman has written next to the history file, oldest first.

The history file is derived from $SHELL unless --path or history.path is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackups(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "history file whose backups to list")

	return cmd
}

// BackupsOutput is the structured form of the backups listing.
type BackupsOutput struct {
	HistoryPath string            `json:"history_path" yaml:"history_path"`
	Backups     []backup.Artifact `json:"backups" yaml:"backups"`
}

func runBackups(cmd *cobra.Command, global *GlobalOptions, opts *BackupsOptions) error {
	cfg, err := global.LoadConfig()
	if err != nil {
		return err
	}

	path := opts.Path
	if path == "" {
		path = cfg.History.Path
	}
	if path == "" {
		profile, err := shell.Resolve(os.Getenv("SHELL"), "")
		if err != nil {
			return err
		}
		path = profile.HistoryPath
	}

	artifacts, err := backup.List(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output.Format != "text" {
		if artifacts == nil {
			artifacts = []backup.Artifact{}
		}
		return writeStructured(out, cfg.Output.Format, BackupsOutput{HistoryPath: path, Backups: artifacts})
	}

	printBackupsTable(out, path, artifacts, cfg.Output.Color, time.Now())
	return nil
}

// printBackupsTable prints backups in table format.
func printBackupsTable(w io.Writer, path string, artifacts []backup.Artifact, styled bool, now time.Time) {
	if len(artifacts) == 0 {
		fmt.Fprintf(w, "No backups found for %s.\n", path)
		return
	}

	tbl := table.New("BACKUP", "CREATED", "AGE", "SIZE").WithWriter(w)
	if styled {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
		tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return header.Render(fmt.Sprintf(format, vals...))
		})
	}

	for _, a := range artifacts {
		tbl.AddRow(
			a.Path,
			a.CreatedAt.Local().Format(time.DateTime),
			humanize.RelTime(a.CreatedAt, now, "ago", "from now"),
			humanize.Bytes(uint64(a.Size)),
		)
	}
	tbl.Print()
}

// Package app provides high-level application logic for histman commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aeskafi/HistoryManager/internal/backup"
	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/fsutil"
	"github.com/aeskafi/HistoryManager/internal/history"
	"github.com/aeskafi/HistoryManager/internal/reload"
	"github.com/aeskafi/HistoryManager/internal/shell"
)

// ConfirmFunc is asked before the deduplicated history replaces the original.
// Returning false aborts the run with ErrCanceled.
type ConfirmFunc func(stats history.Stats) (bool, error)

// Options contains the options for a deduplication run.
type Options struct {
	// ShellPath is the $SHELL value; its base name selects the shell.
	ShellPath string
	// Home is the directory history files are resolved against.
	// If empty, uses the current user's home directory.
	Home string
	// HistoryPath overrides the history file derived from the shell.
	HistoryPath string
	// DryRun reads and deduplicates without touching anything.
	DryRun bool
	// SkipReload leaves the running shell alone after rewriting.
	SkipReload bool
	// Confirm, if set, gates the write-back.
	Confirm ConfirmFunc

	Backup  *backup.Writer
	Trigger *reload.Trigger
	Logger  *slog.Logger
}

// Report contains the result of a run.
type Report struct {
	// Shell is the resolved shell.
	Shell shell.Kind `json:"shell" yaml:"shell"`
	// HistoryPath is the file that was deduplicated.
	HistoryPath string `json:"history_path" yaml:"history_path"`
	// Format is the line format used for duplicate detection.
	Format history.Format `json:"format" yaml:"format"`
	// DryRun is true if nothing was modified.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
	// Backup is the copy taken before rewriting.
	Backup *backup.Artifact `json:"backup,omitempty" yaml:"backup,omitempty"`
	// Stats counts lines kept and removed.
	Stats history.Stats `json:"stats" yaml:"stats"`
	// Written is true once the deduplicated history replaced the original.
	Written bool `json:"written" yaml:"written"`
	// Reload is the reload outcome, nil if not attempted.
	Reload *reload.Result `json:"reload,omitempty" yaml:"reload,omitempty"`
	// Error is the error message if the run failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run resolves the shell, backs up its history file, removes duplicate
// entries and writes the result back, then asks the shell to reload.
//
// Steps run strictly in order and each one gates the next. Any failure
// before the write leaves the original untouched. A reload failure is
// recorded in Report.Reload and does not fail the run. The returned Report
// is never nil and describes how far the run got.
func Run(ctx context.Context, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	report := &Report{DryRun: opts.DryRun}

	fail := func(err error) (*Report, error) {
		report.Error = err.Error()
		return report, err
	}

	// Resolve shell
	profile, err := shell.Resolve(opts.ShellPath, opts.Home)
	if err != nil {
		return fail(err)
	}
	if opts.HistoryPath != "" {
		profile.HistoryPath = opts.HistoryPath
	}
	report.Shell = profile.Kind
	report.HistoryPath = profile.HistoryPath
	report.Format = profile.Format
	log.Debug("resolved shell", "shell", profile.Kind, "history", profile.HistoryPath)

	if opts.DryRun {
		snap, err := readSnapshot(profile)
		if err != nil {
			return fail(err)
		}
		report.Stats = snap.Dedupe()
		return report, nil
	}

	// Backup
	writer := opts.Backup
	if writer == nil {
		writer = backup.NewWriter(log)
	}
	artifact, err := writer.Create(profile.HistoryPath)
	if err != nil {
		return fail(err)
	}
	report.Backup = artifact

	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("%w: %w", histerrors.ErrCanceled, err))
	}

	// Read and deduplicate
	snap, err := readSnapshot(profile)
	if err != nil {
		return fail(err)
	}
	report.Stats = snap.Dedupe()
	log.Debug("deduplicated history",
		"lines", report.Stats.Lines,
		"kept", report.Stats.Kept,
		"duplicates", report.Stats.Duplicates,
		"blank", report.Stats.Blank)

	if opts.Confirm != nil {
		ok, err := opts.Confirm(report.Stats)
		if err != nil {
			return fail(fmt.Errorf("confirmation failed: %w", err))
		}
		if !ok {
			return fail(fmt.Errorf("history left unchanged, backup kept at %s: %w", artifact.Path, histerrors.ErrCanceled))
		}
	}

	// Write back
	if err := fsutil.WriteFileAtomic(profile.HistoryPath, []byte(snap.String()), 0600); err != nil {
		return fail(&histerrors.StepError{
			Step: histerrors.StepWrite,
			Path: profile.HistoryPath,
			Err:  fmt.Errorf("%w (original preserved at %s)", err, artifact.Path),
		})
	}
	report.Written = true
	log.Info("history rewritten", "path", profile.HistoryPath, "removed", report.Stats.Removed())

	// Reload
	if opts.SkipReload {
		return report, nil
	}
	trigger := opts.Trigger
	if trigger == nil {
		trigger = reload.NewTrigger(reload.DefaultTimeout, log)
	}
	report.Reload = trigger.Reload(ctx, profile)

	return report, nil
}

func readSnapshot(p *shell.Profile) (*history.Snapshot, error) {
	data, err := fsutil.ReadFile(p.HistoryPath)
	if err != nil {
		return nil, &histerrors.StepError{Step: histerrors.StepRead, Path: p.HistoryPath, Err: err}
	}
	return history.Parse(string(data), p.Format), nil
}

// Package reload asks a running shell to re-read its history file.
//
// Reload is best effort: by the time it runs the history file has already
// been rewritten, so a failed reload is reported but never rolled back.
package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/shell"
)

// DefaultTimeout bounds the reload subprocess.
const DefaultTimeout = 5 * time.Second

// Runner runs a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Result describes the outcome of a reload attempt.
type Result struct {
	Shell    shell.Kind    `json:"shell" yaml:"shell"`
	Command  string        `json:"command,omitempty" yaml:"command,omitempty"`
	Skipped  bool          `json:"skipped" yaml:"skipped"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Err      error         `json:"-" yaml:"-"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Success reports whether the reload ran and exited cleanly.
func (r *Result) Success() bool {
	return !r.Skipped && r.Err == nil
}

// Trigger runs shell reload commands.
type Trigger struct {
	Runner  Runner
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewTrigger creates a Trigger that runs real subprocesses.
func NewTrigger(timeout time.Duration, logger *slog.Logger) *Trigger {
	return &Trigger{Runner: ExecRunner{}, Timeout: timeout, Logger: logger}
}

// Reload runs the profile's reload command under its interpreter
// ("<interpreter> -c <command>"). Shells without a reload command are
// skipped without spawning anything. Failures are recorded in Result.Err
// as an *errors.StepError classified as ErrReloadFailed.
func (t *Trigger) Reload(ctx context.Context, p *shell.Profile) *Result {
	log := t.logger()
	result := &Result{Shell: p.Kind, Command: p.Reload}

	if !p.CanReload() {
		result.Skipped = true
		result.Message = fmt.Sprintf("%s cannot reload history programmatically; open a new session to pick up the changes", p.Kind.DisplayName())
		log.Info("reload skipped", "shell", p.Kind)
		return result
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runner := t.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	start := time.Now()
	out, err := runner.Run(ctx, p.Interpreter, "-c", p.Reload)
	result.Duration = time.Since(start)
	result.Output = strings.TrimSpace(string(out))

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		result.Err = &histerrors.StepError{Step: histerrors.StepReload, Err: err}
		result.Error = result.Err.Error()
		result.Message = "history was rewritten but the running shell could not be reloaded"
		log.Warn("reload failed", "shell", p.Kind, "command", p.Reload, "exit_code", result.ExitCode, "error", err)
		return result
	}

	result.Message = fmt.Sprintf("%s history reloaded with %q", p.Kind.DisplayName(), p.Reload)
	log.Debug("reload finished", "shell", p.Kind, "duration", result.Duration)
	return result
}

func (t *Trigger) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

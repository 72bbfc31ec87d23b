// Package errors provides the error taxonomy for histman.
//
// Every failure of the history pipeline is classified by one of the sentinel
// errors below, so callers can decide between aborting and reporting with
// errors.Is. Wrapped error types attach the step or file that failed.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrUnsupportedShell - $SHELL names a shell with no history mapping
//   - ErrBackupFailed - the pre-mutation backup could not be written
//   - ErrReadFailed - the history file could not be read
//   - ErrWriteFailed - the deduplicated history could not be written back
//   - ErrReloadFailed - the live shell could not be told to reload (non-fatal)
//   - ErrInvalid - validation failed (configuration, flags)
//   - ErrCanceled - user canceled the operation
//
// Wrapped error types (add context):
//   - UnsupportedShellError{Shell} - the detected shell name
//   - StepError{Step, Path, Err} - pipeline step failures
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	return &errors.StepError{Step: errors.StepBackup, Path: src, Err: err}
//
//	if errors.IsBackupFailed(err) {
//	    // original file is untouched
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Base error types (sentinel errors).
var (
	// ErrUnsupportedShell indicates the invoking shell has no known history file.
	ErrUnsupportedShell = baseError("unsupported shell")

	// ErrBackupFailed indicates the backup copy could not be created.
	ErrBackupFailed = baseError("backup failed")

	// ErrReadFailed indicates the history file could not be read.
	ErrReadFailed = baseError("read failed")

	// ErrWriteFailed indicates the history file could not be rewritten.
	ErrWriteFailed = baseError("write failed")

	// ErrReloadFailed indicates the reload subprocess did not succeed.
	ErrReloadFailed = baseError("reload failed")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// Step names a stage of the history pipeline.
type Step string

const (
	StepResolve Step = "resolve shell"
	StepBackup  Step = "backup"
	StepRead    Step = "read history"
	StepDedupe  Step = "deduplicate"
	StepWrite   Step = "write history"
	StepReload  Step = "reload"
)

// sentinel returns the taxonomy error a step failure is classified as.
func (s Step) sentinel() error {
	switch s {
	case StepResolve:
		return ErrUnsupportedShell
	case StepBackup:
		return ErrBackupFailed
	case StepRead:
		return ErrReadFailed
	case StepWrite:
		return ErrWriteFailed
	case StepReload:
		return ErrReloadFailed
	default:
		return nil
	}
}

// UnsupportedShellError reports a $SHELL value with no history mapping.
type UnsupportedShellError struct {
	// Shell is the base name of the detected shell (may be empty).
	Shell string
	// Supported lists the shells that are handled.
	Supported []string
}

func (e *UnsupportedShellError) Error() string {
	name := e.Shell
	if name == "" {
		name = "(unset)"
	}
	if len(e.Supported) > 0 {
		return fmt.Sprintf("unsupported shell: %s (supported: %s)", name, strings.Join(e.Supported, ", "))
	}
	return fmt.Sprintf("unsupported shell: %s", name)
}

func (e *UnsupportedShellError) Unwrap() error { return ErrUnsupportedShell }

// StepError represents a failure in one step of the pipeline.
type StepError struct {
	// Step is the pipeline step that failed.
	Step Step
	// Path is the file the step was operating on (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *StepError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Step, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Err)
}

// Unwrap exposes both the cause and the step's taxonomy error, so
// errors.Is matches either.
func (e *StepError) Unwrap() []error {
	if s := e.Step.sentinel(); s != nil {
		return []error{e.Err, s}
	}
	return []error{e.Err}
}

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
func Wrap(err error, op string) error {
	return crdb.Wrap(err, op)
}

// Newf creates an error with a formatted message.
func Newf(format string, args ...any) error {
	return crdb.Newf(format, args...)
}

// IsUnsupportedShell reports whether err is or wraps ErrUnsupportedShell.
func IsUnsupportedShell(err error) bool { return errors.Is(err, ErrUnsupportedShell) }

// IsBackupFailed reports whether err is or wraps ErrBackupFailed.
func IsBackupFailed(err error) bool { return errors.Is(err, ErrBackupFailed) }

// IsReadFailed reports whether err is or wraps ErrReadFailed.
func IsReadFailed(err error) bool { return errors.Is(err, ErrReadFailed) }

// IsWriteFailed reports whether err is or wraps ErrWriteFailed.
func IsWriteFailed(err error) bool { return errors.Is(err, ErrWriteFailed) }

// IsReloadFailed reports whether err is or wraps ErrReloadFailed.
func IsReloadFailed(err error) bool { return errors.Is(err, ErrReloadFailed) }

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool { return errors.Is(err, ErrInvalid) }

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// AsStepError reports whether err can be typed as a *StepError.
func AsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsUnsupportedShellError reports whether err can be typed as an *UnsupportedShellError.
func AsUnsupportedShellError(err error) (*UnsupportedShellError, bool) {
	var ue *UnsupportedShellError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Exit codes returned by the histman binary.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitUnsupportedShell = 2
	ExitBackupFailed     = 3
	ExitReadFailed       = 4
	ExitWriteFailed      = 5
	ExitCanceled         = 13
)

// ExitCode maps an error to the process exit status.
// A reload failure on its own is informational and maps to ExitOK.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUnsupportedShell(err):
		return ExitUnsupportedShell
	case IsBackupFailed(err):
		return ExitBackupFailed
	case IsReadFailed(err):
		return ExitReadFailed
	case IsWriteFailed(err):
		return ExitWriteFailed
	case IsCanceled(err):
		return ExitCanceled
	case IsReloadFailed(err):
		return ExitOK
	default:
		return ExitFailure
	}
}

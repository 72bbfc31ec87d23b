// Package backup copies a history file to a timestamped sibling before it is
// rewritten. Backups are never removed by histman.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
)

const (
	// Suffix is appended to every backup file name.
	Suffix = ".bak"

	isoLayout = "2006-01-02T15:04:05.000Z"
)

var stampReplacer = strings.NewReplacer(":", "-", ".", "-")

// Artifact describes a backup file on disk.
type Artifact struct {
	Source    string    `json:"source" yaml:"source"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Size      int64     `json:"size" yaml:"size"`
}

// Stamp formats t as an ISO-8601 UTC timestamp with millisecond precision,
// with ':' and '.' replaced by '-' (YYYY-MM-DDTHH-MM-SS-sssZ).
func Stamp(t time.Time) string {
	return stampReplacer.Replace(t.UTC().Format(isoLayout))
}

// ParseStamp reverses Stamp.
func ParseStamp(stamp string) (time.Time, error) {
	// 2006-01-02T15-04-05-000Z
	if len(stamp) != len(isoLayout) || stamp[13] != '-' || stamp[16] != '-' || stamp[19] != '-' {
		return time.Time{}, fmt.Errorf("malformed backup timestamp %q", stamp)
	}
	iso := stamp[:13] + ":" + stamp[14:16] + ":" + stamp[17:19] + "." + stamp[20:]
	return time.Parse(isoLayout, iso)
}

// Path returns the backup path for src taken at t.
func Path(src string, t time.Time) string {
	return src + "." + Stamp(t) + Suffix
}

// Writer creates backups.
type Writer struct {
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// NewWriter creates a Writer using the wall clock.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{Now: time.Now, Logger: logger}
}

// Create copies src byte for byte to its timestamped backup path.
// The destination is created exclusively and removed again if the copy
// fails, so a failed backup never leaves a partial file. Every failure is
// an *errors.StepError classified as ErrBackupFailed.
//
// Names have millisecond precision: a second backup of src taken within the
// same millisecond fails rather than overwrite the first.
func (w *Writer) Create(src string) (*Artifact, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	createdAt := now()
	dst := Path(src, createdAt)

	fail := func(err error) (*Artifact, error) {
		return nil, &histerrors.StepError{Step: histerrors.StepBackup, Path: src, Err: err}
	}

	in, err := os.Open(src)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fail(err)
	}
	if info.IsDir() {
		return fail(fmt.Errorf("%s is a directory", src))
	}
	perm := info.Mode().Perm()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fail(err)
	}

	n, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(dst, perm)
	}
	if err != nil {
		os.Remove(dst)
		return fail(err)
	}

	w.logger().Debug("backup created", "source", src, "path", dst, "bytes", n)

	return &Artifact{
		Source:    src,
		Path:      dst,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
		Size:      n,
	}, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// List returns the existing backups of src, oldest first.
// Files matching the naming pattern with an unparsable timestamp are skipped.
func List(src string) ([]Artifact, error) {
	prefix := src + "."
	matches, err := filepath.Glob(globEscape(prefix) + "*" + Suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var artifacts []Artifact
	for _, m := range matches {
		stamp := strings.TrimSuffix(strings.TrimPrefix(m, prefix), Suffix)
		created, err := ParseStamp(stamp)
		if err != nil {
			continue
		}
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Source:    src,
			Path:      m,
			CreatedAt: created,
			Size:      info.Size(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.Before(artifacts[j].CreatedAt)
	})

	return artifacts, nil
}

// globEscape escapes filepath.Match metacharacters in a literal path.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package history parses shell history files into entries and removes
// duplicate commands while keeping the order of first occurrence.
package history

import (
	"strings"
)

// Format selects how a history line is reduced to its dedup key.
type Format string

const (
	// FormatZsh is zsh extended history (": <epoch>:<duration>;<command>").
	FormatZsh Format = "zsh"

	// FormatPlain is one command per line (bash, fish, ksh).
	FormatPlain Format = "plain"
)

// Key returns the dedup key of a single line for the format.
func (f Format) Key(line string) string {
	switch f {
	case FormatZsh:
		return zshKey(line)
	default:
		return plainKey(line)
	}
}

// Entry is a single raw line of a history file.
type Entry struct {
	Raw string
	Key string
}

// Stats summarizes a deduplication pass.
type Stats struct {
	Lines      int `json:"lines" yaml:"lines"`
	Kept       int `json:"kept" yaml:"kept"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Blank      int `json:"blank" yaml:"blank"`
}

// Removed returns the number of lines dropped.
func (s Stats) Removed() int {
	return s.Duplicates + s.Blank
}

// Snapshot is the ordered content of a history file.
type Snapshot struct {
	Format  Format
	Entries []Entry
}

// Parse splits text on newlines and computes each line's key.
// A trailing newline terminates the last line; it does not start an empty one.
func Parse(text string, format Format) *Snapshot {
	if text == "" {
		return &Snapshot{Format: format}
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{Raw: line, Key: format.Key(line)}
	}
	return &Snapshot{Format: format, Entries: entries}
}

// Dedupe drops, in place, every entry whose key is empty or was already seen.
func (s *Snapshot) Dedupe() Stats {
	stats := Stats{Lines: len(s.Entries)}
	seen := make(map[string]struct{}, len(s.Entries))

	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.Key == "" {
			stats.Blank++
			continue
		}
		if _, ok := seen[e.Key]; ok {
			stats.Duplicates++
			continue
		}
		seen[e.Key] = struct{}{}
		kept = append(kept, e)
	}
	s.Entries = kept
	stats.Kept = len(kept)

	return stats
}

// String joins the raw lines with newlines, without a trailing separator.
func (s *Snapshot) String() string {
	var b strings.Builder
	for i, e := range s.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Raw)
	}
	return b.String()
}

// Keys returns the key of every entry in order.
func (s *Snapshot) Keys() []string {
	keys := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Dedupe is a convenience function that parses, deduplicates and serializes text.
func Dedupe(text string, format Format) string {
	snap := Parse(text, format)
	snap.Dedupe()
	return snap.String()
}

// plainKey returns the trimmed line; used for bash, fish and ksh.
func plainKey(line string) string {
	return strings.TrimSpace(line)
}

// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FakeHome creates a temporary home directory, points HOME at it and sets
// SHELL to shellPath. Both variables are restored when the test completes.
func FakeHome(t *testing.T, shellPath string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", shellPath)
	return home
}

// WriteHistory writes content to rel under home, creating parent
// directories, and returns the absolute path.
func WriteHistory(t *testing.T, home, rel, content string) string {
	t.Helper()

	path := filepath.Join(home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create history dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write history file: %v", err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Backups returns the backup files sitting next to path.
func Backups(t *testing.T, path string) []string {
	t.Helper()

	matches, err := filepath.Glob(path + ".*.bak")
	if err != nil {
		t.Fatalf("failed to glob backups: %v", err)
	}
	return matches
}

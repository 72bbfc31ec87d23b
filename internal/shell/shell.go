// Package shell maps the invoking user's shell to its history file and
// reload command.
package shell

import (
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
	"github.com/aeskafi/HistoryManager/internal/history"
)

// Kind identifies a supported shell.
type Kind string

// Supported shells
const (
	Zsh  Kind = "zsh"
	Bash Kind = "bash"
	Fish Kind = "fish"
	Ksh  Kind = "ksh"
)

// DisplayName returns the title-cased shell name ("Zsh").
func (k Kind) DisplayName() string {
	return cases.Title(language.English).String(string(k))
}

// shellDef is one row of the shell table.
type shellDef struct {
	historyFile string // relative to the home directory
	format      history.Format
	reload      string // empty when the shell has no programmatic reload
}

// shells is the fixed shell table. Adding a shell means adding a row here.
var shells = map[Kind]shellDef{
	Zsh: {
		historyFile: ".zsh_history",
		format:      history.FormatZsh,
		reload:      "fc -R",
	},
	Bash: {
		historyFile: ".bash_history",
		format:      history.FormatPlain,
		reload:      "history -c && history -r",
	},
	Fish: {
		historyFile: filepath.Join(".local", "share", "fish", "fish_history"),
		format:      history.FormatPlain,
		reload:      "history --merge",
	},
	Ksh: {
		historyFile: ".ksh_history",
		format:      history.FormatPlain,
	},
}

// Profile describes how to find, parse and reload one shell's history.
type Profile struct {
	Kind        Kind
	Interpreter string // executable used to run the reload command
	HistoryPath string
	Format      history.Format
	Reload      string // empty if unsupported
}

// CanReload reports whether the shell has a programmatic reload command.
func (p *Profile) CanReload() bool {
	return p.Reload != ""
}

// Supported returns the supported shell names, sorted.
func Supported() []string {
	names := make([]string, 0, len(shells))
	for k := range shells {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Resolve maps a $SHELL value to a Profile rooted at home.
// The base name of shellPath selects the row; anything else is an
// *errors.UnsupportedShellError. An empty home is looked up with
// os.UserHomeDir only after the shell is known to be supported.
func Resolve(shellPath, home string) (*Profile, error) {
	name := ""
	if shellPath != "" {
		name = filepath.Base(shellPath)
	}

	row, ok := shells[Kind(name)]
	if !ok {
		return nil, &histerrors.UnsupportedShellError{Shell: name, Supported: Supported()}
	}

	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return nil, histerrors.Wrap(err, "failed to get home directory")
		}
	}

	interpreter := shellPath
	if !filepath.IsAbs(interpreter) {
		interpreter = name
	}

	return &Profile{
		Kind:        Kind(name),
		Interpreter: interpreter,
		HistoryPath: filepath.Join(home, row.historyFile),
		Format:      row.format,
		Reload:      row.reload,
	}, nil
}

// Detect returns the base name of $SHELL, or "" when unset.
func Detect() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return filepath.Base(sh)
	}
	return ""
}

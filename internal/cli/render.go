package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/aeskafi/HistoryManager/internal/app"
)

// styles holds the console styles; the zero value renders plain text.
type styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	subtle  lipgloss.Style
	enabled bool
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		enabled: true,
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("invalid format: %s (must be json or yaml)", format)
	}
	return nil
}

// renderReport prints the outcome of a run in the requested format.
func renderReport(w io.Writer, report *app.Report, format string, color bool) error {
	if format != "text" {
		return writeStructured(w, format, report)
	}

	s := newStyles(color)

	if report.Backup != nil {
		fmt.Fprintf(w, "%s %s %s\n",
			s.render(s.subtle, "Backup created:"),
			report.Backup.Path,
			s.render(s.subtle, "("+humanize.Bytes(uint64(report.Backup.Size))+")"))
	}

	if report.HistoryPath == "" {
		return nil
	}

	st := report.Stats
	switch {
	case report.DryRun:
		fmt.Fprintf(w, "%s would remove %d duplicate and %d blank lines from %s (%d of %d lines kept)\n",
			s.render(s.title, "Dry run:"),
			st.Duplicates, st.Blank, report.HistoryPath, st.Kept, st.Lines)
	case report.Written:
		fmt.Fprintf(w, "%s removed %d duplicate and %d blank lines from %s (%d of %d lines kept)\n",
			s.render(s.ok, "Deduplicated:"),
			st.Duplicates, st.Blank, report.HistoryPath, st.Kept, st.Lines)
	default:
		return nil
	}

	if r := report.Reload; r != nil {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "%s %s\n", s.render(s.info, "Note:"), r.Message)
		case r.Err != nil || r.Error != "":
			fmt.Fprintf(w, "%s %s: %s\n", s.render(s.warn, "Warning:"), r.Message, r.Error)
			if r.Output != "" {
				fmt.Fprintf(w, "%s\n", s.render(s.subtle, r.Output))
			}
		default:
			fmt.Fprintf(w, "%s %s\n", s.render(s.ok, "Reloaded:"), r.Message)
		}
	}

	return nil
}

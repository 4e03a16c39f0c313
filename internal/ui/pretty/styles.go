// Package pretty provides Lipgloss-based styled output for the CLI: report styles,
// the token theme, and the terminal renderer of editor frames.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity and status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Status  lipgloss.Style

	// Search results
	FilePath   lipgloss.Style
	LineNumber lipgloss.Style
	Match      lipgloss.Style
	Text       lipgloss.Style

	// Diagnostics
	Message    lipgloss.Style
	Source     lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Tables
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Editor frame
	Gutter       lipgloss.Style
	GutterActive lipgloss.Style
	FoldMarker   lipgloss.Style
	Placeholder  lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true),

		FilePath:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Match:      lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		Text:       lipgloss.NewStyle(),

		Message:    lipgloss.NewStyle(),
		Source:     dim,
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: dim,

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: dim,

		Gutter:       dim,
		GutterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		FoldMarker:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Placeholder:  dim.Italic(true),

		Dim:  dim,
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		Success:        plain,
		Failure:        plain,
		Status:         plain,
		FilePath:       plain,
		LineNumber:     plain,
		Match:          plain,
		Text:           plain,
		Message:        plain,
		Source:         plain,
		SourceLine:     plain,
		Caret:          plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Gutter:         plain,
		GutterActive:   plain,
		FoldMarker:     plain,
		Placeholder:    plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/runner"
)

// FormatDiagnostic formats a diagnostic attached to path. A non-empty sourceLine is
// shown below it with a caret under the column.
func (s *Styles) FormatDiagnostic(path string, diag editor.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), diag.Line, diag.Column)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s", location, s.FormatSeverity(diag.Severity), s.Message.Render(diag.Message)))
	if diag.Source != "" {
		builder.WriteString("  " + s.Source.Render("("+diag.Source+")"))
	}
	builder.WriteString("\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}
	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case "error":
		return s.Error.Render("error")
	case "warning", "warn":
		return s.Warning.Render("warning")
	case "info", "":
		return s.Info.Render("info")
	default:
		return severity
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, occurrences int) string {
	header := s.FilePath.Render(path)
	if occurrences > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", occurrences, plural(occurrences, wordOccurrence, wordOccurrences)))
	}
	return header
}

// FormatMatchLine formats one matching line as "  <line>: <text>", with every
// occurrence of term styled as a match.
func (s *Styles) FormatMatchLine(match runner.LineMatch, term string, caseSensitive bool, lineWidth int) string {
	var builder strings.Builder
	builder.WriteString("  ")
	builder.WriteString(s.LineNumber.Render(fmt.Sprintf("%*d", lineWidth, match.Line)))
	builder.WriteString(": ")
	for _, piece := range highlight.SplitMatches(match.Text, term, caseSensitive) {
		if piece.Match {
			builder.WriteString(s.Match.Render(piece.Text))
			continue
		}
		builder.WriteString(s.Text.Render(piece.Text))
	}
	builder.WriteString("\n")
	return builder.String()
}

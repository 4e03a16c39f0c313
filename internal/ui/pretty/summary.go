package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/foldedit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
	wordOccurrence      = "occurrence"
	wordOccurrences     = "occurrences"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 occurrences in 3 files (12 files scanned), 2 files modified".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Occurrences == 0 {
		return s.Warning.Render("No matches found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s scanned)", stats.FilesScanned, plural(stats.FilesScanned, wordFile, wordFiles))) + "\n"
	}

	parts := []string{
		fmt.Sprintf("%s in %d %s",
			s.Bold.Render(fmt.Sprintf("%d %s", stats.Occurrences, plural(stats.Occurrences, wordOccurrence, wordOccurrences))),
			stats.FilesTouched, plural(stats.FilesTouched, wordFile, wordFiles)) +
			s.Dim.Render(fmt.Sprintf(" (%d scanned)", stats.FilesScanned)),
	}
	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s modified",
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block. replace selects the
// wording of the closing status line.
func (s *Styles) FormatSummary(stats runner.Stats, replace bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesScanned)) + "\n")
	if stats.FilesTouched > 0 {
		builder.WriteString("  Files matched:     " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesTouched)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files modified:    " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Occurrences:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Occurrences)) + "\n")
	builder.WriteString("\n")

	switch {
	case stats.Occurrences == 0:
		builder.WriteString(s.Warning.Render("No matches"))
	case !replace:
		builder.WriteString(s.Success.Render("Search complete"))
	case stats.FilesModified > 0:
		builder.WriteString(s.Success.Render("Replacement applied"))
	default:
		builder.WriteString(s.Dim.Render("No files written"))
	}
	builder.WriteString("\n")

	return builder.String()
}

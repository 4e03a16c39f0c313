package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minLineWidth     = 4
	minTextWidth     = 30
	minTypeWidth     = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one matching line in the match table.
type TableRow struct {
	File string
	Line int
	Text string
}

// TableFormatter formats search results and token streams as styled tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type matchWidths struct {
	file int
	line int
	text int
}

func (w matchWidths) total() int {
	return w.file + w.line + w.text + 3*tablePadding
}

// FormatMatches formats the matching lines of result, grouped by file.
func (t *TableFormatter) FormatMatches(result *runner.SearchResult) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	groups := make([][]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows := make([]TableRow, 0, len(file.Matches))
		for _, match := range file.Matches {
			rows = append(rows, TableRow{File: file.Path, Line: match.Line, Text: strings.TrimSpace(match.Text)})
		}
		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	widths := t.matchWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.file, "FILE", widths.line, "LINE", widths.text, "TEXT")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")

	for idx, group := range groups {
		if idx > 0 {
			builder.WriteString(t.separator(widths.total(), lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(fmt.Sprintf(" %s  %s  %s\n",
				t.styles.FilePath.Render(padRight(truncateFilePath(row.File, widths.file), widths.file)),
				t.styles.LineNumber.Render(fmt.Sprintf("%*d", widths.line, row.Line)),
				t.styles.Text.Render(truncateString(row.Text, widths.text)),
			))
		}
	}

	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")
	return builder.String()
}

func (t *TableFormatter) matchWidths(groups [][]TableRow) matchWidths {
	widths := matchWidths{file: minFileWidth, line: minLineWidth, text: minTextWidth}
	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, runewidth.StringWidth(row.File))
			widths.line = max(widths.line, len(strconv.Itoa(row.Line)))
			widths.text = max(widths.text, runewidth.StringWidth(row.Text))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.text = max(minTextWidth, widths.text-excess)
		if excess = widths.total() - t.termWidth; excess > 0 {
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}
	return widths
}

// FormatTokens formats a token stream as a LINE/TYPE/VALUE table. Line breaks are
// omitted; whitespace-only values are shown quoted.
func (t *TableFormatter) FormatTokens(tokens []highlight.Token, theme *Theme) string {
	lineWidth := minLineWidth
	typeWidth := minTypeWidth
	for _, tok := range tokens {
		lineWidth = max(lineWidth, len(strconv.Itoa(tok.Line)))
		typeWidth = max(typeWidth, len(tok.Type))
	}
	valueWidth := max(minTextWidth, t.termWidth-lineWidth-typeWidth-3*tablePadding)
	total := lineWidth + typeWidth + valueWidth + 3*tablePadding

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %*s  %-*s  %s", lineWidth, "LINE", typeWidth, "TYPE", "VALUE")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(total, heavySeparator))
	builder.WriteString("\n")

	for _, tok := range tokens {
		if tok.IsNewline() {
			continue
		}
		value := tok.Value
		if strings.TrimSpace(value) == "" {
			value = strconv.Quote(value)
		}
		typ := tok.Type
		if typ == "" {
			typ = "-"
		}
		builder.WriteString(fmt.Sprintf(" %s  %s  %s\n",
			t.styles.LineNumber.Render(fmt.Sprintf("%*d", lineWidth, tok.Line)),
			t.styles.Dim.Render(padRight(typ, typeWidth)),
			theme.Style(tok.Type).Render(truncateString(value, valueWidth)),
		))
	}

	builder.WriteString(t.separator(total, heavySeparator))
	builder.WriteString("\n")
	return builder.String()
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

func padRight(str string, width int) string {
	return runewidth.FillRight(str, width)
}

// truncateString truncates a string to maxWidth cells, adding "..." if truncated.
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, "...")
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

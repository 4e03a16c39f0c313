// Package textlines provides the line model shared by the editor core:
// newline normalization, lossless splitting, and indentation measurement.
package textlines

import "strings"

// DefaultTabWidth is the number of columns a tab expands to when comparing indentation.
const DefaultTabWidth = 4

// Normalize converts CRLF and lone CR line endings to LF.
func Normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Split splits text into lines on LF.
// Splitting is lossless: Join(Split(t)) == t. A trailing newline yields a final empty line.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// Join is the inverse of Split.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// IsBlank reports whether the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// LeadingWhitespace returns the run of spaces and tabs at the start of line.
func LeadingWhitespace(line string) string {
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

// IndentWidth returns the effective indentation of line in columns.
// Tabs advance to the next multiple of tabWidth; the stored text is never modified.
// A non-positive tabWidth falls back to DefaultTabWidth.
func IndentWidth(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	width := 0
	for idx := 0; idx < len(line); idx++ {
		switch line[idx] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width
		}
	}
	return width
}

// Outdent removes up to width leading spaces from line. A leading tab counts as a full unit.
// It returns the new line and the number of bytes removed.
func Outdent(line string, width int) (string, int) {
	if strings.HasPrefix(line, "\t") {
		return line[1:], 1
	}
	removed := 0
	for removed < width && removed < len(line) && line[removed] == ' ' {
		removed++
	}
	return line[removed:], removed
}

package reporter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

// Output formats. Search results support every format but diff, which falls back to
// text for them.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// ErrUnknownFormat is returned by ParseFormat for names that are not a Format.
var ErrUnknownFormat = errors.New("unknown format")

// Formats returns every format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary}
}

// ParseFormat resolves a case-insensitive format name. The empty name is text.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		names := make([]string, 0, len(Formats()))
		for _, known := range Formats() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, strings.Join(names, ", "))
	}
	return format, nil
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}

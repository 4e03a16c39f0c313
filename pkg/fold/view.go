package fold

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Ellipsis is the literal marker of a collapsed placeholder line.
const Ellipsis = "..."

// DefaultIndentWidth is the extra indentation of a placeholder relative to its parent line.
const DefaultIndentWidth = 4

// ErrViewInvariant is wrapped by View.Validate failures.
var ErrViewInvariant = errors.New("view invariant violated")

// Options controls indentation measurement and placeholder rendering.
type Options struct {
	// TabWidth is the column width of a tab when comparing indentation.
	TabWidth int

	// IndentWidth is the number of spaces a placeholder is indented past its parent.
	IndentWidth int
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return textlines.DefaultTabWidth
	}
	return o.TabWidth
}

func (o Options) indentWidth() int {
	if o.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return o.IndentWidth
}

// Placeholder returns the placeholder line shown for a block collapsed under parent.
func (o Options) Placeholder(parent string) string {
	return textlines.LeadingWhitespace(parent) + strings.Repeat(" ", o.indentWidth()) + Ellipsis
}

// IsPlaceholderText reports whether line reads as a placeholder once trimmed.
func IsPlaceholderText(line string) bool {
	return strings.TrimSpace(line) == Ellipsis
}

// Mapping records which full-code lines a view line stands for.
// Line numbers are 1-based and inclusive.
type Mapping struct {
	StartLine int
	EndLine   int
	Collapsed bool
}

// LineMapping maps a view line to a single full-code line.
func LineMapping(line int) Mapping {
	return Mapping{StartLine: line, EndLine: line}
}

// RangeMapping maps a placeholder to the collapsed full-code lines start..end.
func RangeMapping(start, end int) Mapping {
	return Mapping{StartLine: start, EndLine: end, Collapsed: true}
}

// IsRange reports whether the mapping is a collapsed range marker.
func (m Mapping) IsRange() bool {
	return m.Collapsed
}

// Covers reports whether the 1-based full-code line is represented by m.
func (m Mapping) Covers(line int) bool {
	return line >= m.StartLine && line <= m.EndLine
}

// String renders the gutter label: "12" for a line, "12-18" for a range.
func (m Mapping) String() string {
	if !m.Collapsed || m.StartLine == m.EndLine {
		return strconv.Itoa(m.StartLine)
	}
	return strconv.Itoa(m.StartLine) + "-" + strconv.Itoa(m.EndLine)
}

// View is the rendered form of a document: collapsed blocks appear as single
// placeholder lines. Lines and Mappings are parallel.
type View struct {
	Lines    []string
	Mappings []Mapping

	// TrailingNewline reports that the full code ends in a newline. The empty line after
	// it is not a view line, but Text keeps the newline so the caret can reach it.
	TrailingNewline bool
}

// GenerateView derives the view of fullCode under the collapse set.
//
// Collapsed start lines that are blank or have no block are shown as-is. Starts nested
// inside an already emitted placeholder are absorbed with the rest of the block.
// The empty line after a final newline is trimmed; every other line stays, so lines
// the user adds at the end of the file remain editable.
func GenerateView(fullCode string, collapsed CollapseSet, opts Options) View {
	lines := textlines.Split(fullCode)
	tabWidth := opts.tabWidth()

	view := View{
		Lines:    make([]string, 0, len(lines)),
		Mappings: make([]Mapping, 0, len(lines)),
	}

	for idx := 0; idx < len(lines); idx++ {
		line := lines[idx]
		view.Lines = append(view.Lines, line)
		view.Mappings = append(view.Mappings, LineMapping(idx+1))

		if !collapsed.Has(idx) || textlines.IsBlank(line) {
			continue
		}
		block, ok := BlockRange(lines, idx, tabWidth)
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, opts.Placeholder(line))
		view.Mappings = append(view.Mappings, RangeMapping(block.Start+1, block.End+1))
		idx = block.End
	}

	last := len(view.Lines) - 1
	if last > 0 && view.Lines[last] == "" && !view.Mappings[last].IsRange() {
		view.Lines = view.Lines[:last]
		view.Mappings = view.Mappings[:last]
		view.TrailingNewline = true
	}

	return view
}

// Len returns the number of view lines.
func (v View) Len() int {
	return len(v.Lines)
}

// Text joins the view lines, ending in a newline when the full code does.
func (v View) Text() string {
	if v.TrailingNewline {
		return textlines.Join(v.Lines) + "\n"
	}
	return textlines.Join(v.Lines)
}

// TextLines returns Text split into lines. It is Lines plus the empty line after a
// trailing newline.
func (v View) TextLines() []string {
	if v.TrailingNewline {
		return append(v.Lines[:len(v.Lines):len(v.Lines)], "")
	}
	return v.Lines
}

// IsPlaceholder reports whether view line i is a collapsed range marker.
func (v View) IsPlaceholder(i int) bool {
	return i >= 0 && i < len(v.Mappings) && v.Mappings[i].IsRange()
}

// ViewLineFor returns the index of the view line that covers the 0-based full-code line.
// For a line inside a collapsed block that is the placeholder. ok is false when the
// line is out of range or is the empty line after a trailing newline.
func (v View) ViewLineFor(fullLine int) (int, bool) {
	target := fullLine + 1
	lo, hi := 0, len(v.Mappings)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.Mappings[mid].EndLine < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.Mappings) && v.Mappings[lo].Covers(target) {
		return lo, true
	}
	return 0, false
}

// Validate checks that Lines and Mappings are parallel and that the view, plus the
// empty line after a trailing newline, covers every one of fullLineCount lines exactly
// once, in order.
func (v View) Validate(fullLineCount int) error {
	if len(v.Lines) != len(v.Mappings) {
		return fmt.Errorf("%w: %d lines but %d mappings", ErrViewInvariant, len(v.Lines), len(v.Mappings))
	}
	next := 1
	for i, mapping := range v.Mappings {
		if mapping.StartLine != next || mapping.EndLine < mapping.StartLine {
			return fmt.Errorf("%w: view line %d maps %s, expected to start at %d",
				ErrViewInvariant, i, mapping, next)
		}
		next = mapping.EndLine + 1
	}
	covered := next - 1
	if v.TrailingNewline {
		covered++
	}
	if covered != fullLineCount {
		return fmt.Errorf("%w: covers %d of %d lines", ErrViewInvariant, covered, fullLineCount)
	}
	return nil
}

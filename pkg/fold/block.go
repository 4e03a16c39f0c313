// Package fold implements indentation-based block detection and the mapping between
// a document's full code and its collapsed view.
package fold

import "github.com/yaklabco/foldedit/pkg/textlines"

// HasCollapsibleBlock reports whether lines[index] starts a block: the line is non-blank
// and the first following non-blank line is indented strictly deeper.
func HasCollapsibleBlock(lines []string, index, tabWidth int) bool {
	if index < 0 || index >= len(lines) || textlines.IsBlank(lines[index]) {
		return false
	}
	base := textlines.IndentWidth(lines[index], tabWidth)
	for next := index + 1; next < len(lines); next++ {
		if textlines.IsBlank(lines[next]) {
			continue
		}
		return textlines.IndentWidth(lines[next], tabWidth) > base
	}
	return false
}

// BlockLines returns the indices of the lines that belong to the block started by
// lines[index]. Blank lines are taken only when a deeper non-blank line follows them,
// so a block never ends on a blank line. The result is empty when there is no block.
func BlockLines(lines []string, index, tabWidth int) []int {
	if index < 0 || index >= len(lines) || textlines.IsBlank(lines[index]) {
		return nil
	}
	base := textlines.IndentWidth(lines[index], tabWidth)

	var block []int
	pending := 0
	for next := index + 1; next < len(lines); next++ {
		if textlines.IsBlank(lines[next]) {
			pending++
			continue
		}
		if textlines.IndentWidth(lines[next], tabWidth) <= base {
			break
		}
		for blank := next - pending; blank < next; blank++ {
			block = append(block, blank)
		}
		pending = 0
		block = append(block, next)
	}
	return block
}

// Range is an inclusive, 0-based span of full-code lines.
type Range struct {
	Start int
	End   int
}

// Contains reports whether line lies inside the range.
func (r Range) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Len returns the number of lines covered.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// BlockRange returns the span of the block started by lines[index].
// ok is false when the line has no collapsible block.
func BlockRange(lines []string, index, tabWidth int) (Range, bool) {
	block := BlockLines(lines, index, tabWidth)
	if len(block) == 0 {
		return Range{}, false
	}
	return Range{Start: block[0], End: block[len(block)-1]}, true
}

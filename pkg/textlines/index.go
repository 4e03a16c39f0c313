package textlines

import "sort"

// Position is a 0-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// Index maps byte offsets in a text to line/column positions and back.
type Index struct {
	starts []int
	length int
}

// NewIndex builds the line start table for text.
func NewIndex(text string) *Index {
	starts := make([]int, 1, 64)
	for idx := 0; idx < len(text); idx++ {
		if text[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &Index{starts: starts, length: len(text)}
}

// LineCount returns the number of lines, counting a final empty line after a trailing newline.
func (x *Index) LineCount() int {
	return len(x.starts)
}

// LineStart returns the offset of the first byte of line, clamped to the valid range.
func (x *Index) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(x.starts) {
		return x.length
	}
	return x.starts[line]
}

// LineEnd returns the offset of the newline ending line (or the text length for the last line).
func (x *Index) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line+1 >= len(x.starts) {
		return x.length
	}
	return x.starts[line+1] - 1
}

// Position converts a byte offset to a line/column. Offsets are clamped to [0, len].
func (x *Index) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > x.length {
		offset = x.length
	}
	line := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1
	return Position{Line: line, Column: offset - x.starts[line]}
}

// Offset converts a line/column to a byte offset, clamping the column to the line's extent.
func (x *Index) Offset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(x.starts) {
		return x.length
	}
	start := x.starts[pos.Line]
	end := x.LineEnd(pos.Line)
	offset := start + pos.Column
	if offset < start {
		return start
	}
	if offset > end {
		return end
	}
	return offset
}

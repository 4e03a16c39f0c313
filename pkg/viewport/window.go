// Package viewport computes the visible line window of a large buffer and keeps the
// gutter and code pane scrolled together.
package viewport

import "sort"

// DefaultBuffer is the number of lines rendered beyond each edge of the viewport.
const DefaultBuffer = 5

// DefaultLineHeight is used when no breakpoint applies.
const DefaultLineHeight = 20

// Breakpoint sets the line height for viewports at least MinWidth wide.
type Breakpoint struct {
	MinWidth   int
	LineHeight int
}

// DefaultBreakpoints returns the responsive line height table.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{MinWidth: 0, LineHeight: 18},
		{MinWidth: 768, LineHeight: 20},
		{MinWidth: 1280, LineHeight: 22},
	}
}

// LineHeightFor returns the line height of the widest breakpoint that fits width.
func LineHeightFor(width int, table []Breakpoint) int {
	sorted := append([]Breakpoint(nil), table...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinWidth < sorted[j].MinWidth })

	height := DefaultLineHeight
	for _, bp := range sorted {
		if bp.MinWidth > width {
			break
		}
		if bp.LineHeight > 0 {
			height = bp.LineHeight
		}
	}
	return height
}

// Window is the half-open range [Start, End) of rendered line indices.
type Window struct {
	Start int
	End   int
}

// Len returns the number of lines in the window.
func (w Window) Len() int {
	return max(0, w.End-w.Start)
}

// Contains reports whether line is rendered.
func (w Window) Contains(line int) bool {
	return line >= w.Start && line < w.End
}

// Compute returns the lines to render for a viewport of containerHeight scrolled to
// scrollTop, padded by buffer lines on each side.
func Compute(totalLines, containerHeight, lineHeight, scrollTop, buffer int) Window {
	if totalLines <= 0 {
		return Window{}
	}
	lineHeight = max(1, lineHeight)
	buffer = max(0, buffer)

	start := max(0, scrollTop/lineHeight-buffer)
	start = min(start, totalLines)
	visible := (max(0, containerHeight) + lineHeight - 1) / lineHeight
	end := min(start+visible+2*buffer, totalLines)

	return Window{Start: start, End: end}
}

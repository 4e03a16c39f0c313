package fold

import (
	"slices"
	"sort"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// CollapseSet is the set of 0-based full-code line indices rendered as collapsed.
// The zero value is an empty set. Indices that no longer start a block are tolerated;
// they are ignored when the view is generated.
type CollapseSet struct {
	lines map[int]struct{}
}

// NewCollapseSet returns a set holding the given indices.
func NewCollapseSet(lines ...int) CollapseSet {
	set := CollapseSet{}
	for _, line := range lines {
		set.Add(line)
	}
	return set
}

// Has reports whether line is collapsed.
func (s CollapseSet) Has(line int) bool {
	_, ok := s.lines[line]
	return ok
}

// Add marks line as collapsed.
func (s *CollapseSet) Add(line int) {
	if s.lines == nil {
		s.lines = make(map[int]struct{})
	}
	s.lines[line] = struct{}{}
}

// Remove clears the collapsed flag of line.
func (s *CollapseSet) Remove(line int) {
	delete(s.lines, line)
}

// Toggle flips line and reports whether it is now collapsed.
func (s *CollapseSet) Toggle(line int) bool {
	if s.Has(line) {
		s.Remove(line)
		return false
	}
	s.Add(line)
	return true
}

// Len returns the number of collapsed indices.
func (s CollapseSet) Len() int {
	return len(s.lines)
}

// Slice returns the indices in ascending order.
func (s CollapseSet) Slice() []int {
	out := make([]int, 0, len(s.lines))
	for line := range s.lines {
		out = append(out, line)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy.
func (s CollapseSet) Clone() CollapseSet {
	return NewCollapseSet(s.Slice()...)
}

// Equal reports whether both sets hold the same indices.
func (s CollapseSet) Equal(other CollapseSet) bool {
	return slices.Equal(s.Slice(), other.Slice())
}

// RemoveWithin clears every index inside r and returns the indices removed.
func (s *CollapseSet) RemoveWithin(r Range) []int {
	var removed []int
	for _, line := range s.Slice() {
		if r.Contains(line) {
			s.Remove(line)
			removed = append(removed, line)
		}
	}
	return removed
}

// ToggleBlock flips the collapsed state of the block started by lines[index].
//
// Collapsing is refused when the line has no collapsible block or is itself hidden inside
// another collapsed block. Collapsing an outer block clears every collapsed start inside
// it, so expanding the outer block later reveals the inner blocks expanded. Expanding
// always succeeds for an index in the set, including stale ones.
func (s *CollapseSet) ToggleBlock(lines []string, index int, opts Options) (collapsed, changed bool) {
	if s.Has(index) {
		s.Remove(index)
		return false, true
	}
	tabWidth := opts.tabWidth()
	block, ok := BlockRange(lines, index, tabWidth)
	if !ok || s.Hidden(lines, index, opts) {
		return false, false
	}
	s.RemoveWithin(block)
	s.Add(index)
	return true, true
}

// Hidden reports whether lines[index] is absorbed by a collapsed block that starts before it.
func (s CollapseSet) Hidden(lines []string, index int, opts Options) bool {
	for _, start := range s.Slice() {
		if start >= index {
			break
		}
		if start >= len(lines) || textlines.IsBlank(lines[start]) {
			continue
		}
		if block, ok := BlockRange(lines, start, opts.tabWidth()); ok && block.Contains(index) {
			return true
		}
	}
	return false
}

// Prune drops indices that fall outside lines or no longer start a block.
// It returns the removed indices.
func (s *CollapseSet) Prune(lines []string, opts Options) []int {
	var removed []int
	for _, line := range s.Slice() {
		if !HasCollapsibleBlock(lines, line, opts.tabWidth()) {
			s.Remove(line)
			removed = append(removed, line)
		}
	}
	return removed
}

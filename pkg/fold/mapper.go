package fold

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// MapViewToFullCode rebuilds the full code from an edited view.
//
// previous must be the view that was generated from previousFullCode. Every edited line
// that still reads as "..." and lines up with a range marker of previous is replaced by
// the collapsed block from previousFullCode, verbatim. All other lines are taken
// literally. Lines are lined up with difflib opcodes, so a placeholder keeps its range
// when lines are inserted or removed around it, even when the line count is unchanged.
func MapViewToFullCode(editedView string, previous View, previousFullCode string) string {
	fullCode, _ := MapViewEdit(editedView, previous, previousFullCode)
	return fullCode
}

// MapViewEdit is MapViewToFullCode that also carries the collapse set through the edit.
// A block stays collapsed when its placeholder survived directly below its start line,
// at that line's new index, so collapsed starts follow lines inserted or deleted above
// them. Blocks whose placeholder was removed, rewritten, or separated from its start
// line come back expanded.
func MapViewEdit(editedView string, previous View, previousFullCode string) (string, CollapseSet) {
	edited := textlines.Split(editedView)
	full := textlines.Split(previousFullCode)

	aligned := AlignLines(previous.TextLines(), edited)

	var collapsed CollapseSet
	out := make([]string, 0, len(full))
	for j, line := range edited {
		prevIdx := aligned[j]
		if prevIdx < 0 || !previous.IsPlaceholder(prevIdx) || !IsPlaceholderText(line) {
			out = append(out, line)
			continue
		}
		mapping := previous.Mappings[prevIdx]
		if mapping.StartLine < 1 || mapping.EndLine > len(full) {
			out = append(out, line)
			continue
		}
		if j > 0 && aligned[j-1] == prevIdx-1 {
			collapsed.Add(len(out) - 1)
		}
		out = append(out, full[mapping.StartLine-1:mapping.EndLine]...)
	}
	return textlines.Join(out), collapsed
}

// AlignLines returns, for each line of b, the index of the line of a it corresponds to,
// or -1 for inserted lines. Common prefix and suffix lines pair up directly, equal runs
// in between are paired by difflib, and inside replaced runs lines pair by position.
func AlignLines(a, b []string) []int {
	aligned := make([]int, len(b))
	for j := range aligned {
		aligned[j] = -1
	}

	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		aligned[prefix] = prefix
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		aligned[len(b)-1-suffix] = len(a) - 1 - suffix
		suffix++
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]
	if len(midA) == 0 || len(midB) == 0 {
		return aligned
	}

	matcher := difflib.NewMatcherWithJunk(midA, midB, false, nil)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e', 'r':
			for k := 0; op.I1+k < op.I2 && op.J1+k < op.J2; k++ {
				aligned[prefix+op.J1+k] = prefix + op.I1 + k
			}
		}
	}
	return aligned
}

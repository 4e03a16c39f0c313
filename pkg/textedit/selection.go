package textedit

// Selection is a byte range of a text. Anchor is where the selection started and Head
// is where the caret is; they are equal for a bare caret.
type Selection struct {
	Anchor int
	Head   int
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// Start returns the lower bound.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound.
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// Empty reports whether the selection is a bare caret.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Clamp limits both ends to [0, length].
func (s Selection) Clamp(length int) Selection {
	return Selection{Anchor: clamp(s.Anchor, length), Head: clamp(s.Head, length)}
}

// Shift carries the selection through prepared edits. Offsets after an edit move by its
// delta, offsets inside a replaced range land after the new text, and an insertion at
// an offset pushes it forward.
func (s Selection) Shift(edits []Edit) Selection {
	return Selection{Anchor: shiftOffset(s.Anchor, edits), Head: shiftOffset(s.Head, edits)}
}

func shiftOffset(offset int, edits []Edit) int {
	shifted := offset
	for _, edit := range edits {
		switch {
		case edit.Start > offset:
			return shifted
		case edit.IsInsert() || edit.End <= offset:
			shifted += edit.Delta()
		case edit.Start == offset:
			return shifted
		default:
			return shifted - (offset - edit.Start) + len(edit.NewText)
		}
	}
	return shifted
}

func clamp(value, length int) int {
	return max(0, min(value, length))
}

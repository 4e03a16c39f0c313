// Package textedit provides byte-offset text edits, selection tracking across edits,
// and unified diffs between two versions of a text.
package textedit

// Edit replaces the bytes [Start, End) of a text with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Delta is the change in text length caused by the edit.
func (e Edit) Delta() int {
	return len(e.NewText) - (e.End - e.Start)
}

// IsInsert reports whether the edit removes nothing.
func (e Edit) IsInsert() bool {
	return e.Start == e.End
}

// Builder accumulates the edits of one operation.
type Builder struct {
	edits []Edit
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Replace adds an edit replacing [start, end) with text.
func (b *Builder) Replace(start, end int, text string) *Builder {
	b.edits = append(b.edits, Edit{Start: start, End: end, NewText: text})
	return b
}

// Insert adds an edit inserting text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit removing [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Len returns the number of edits added.
func (b *Builder) Len() int {
	return len(b.edits)
}

// Edits returns a copy of the accumulated edits in insertion order.
func (b *Builder) Edits() []Edit {
	return append([]Edit(nil), b.edits...)
}

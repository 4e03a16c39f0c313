package history

import (
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/textedit"
)

// Snapshot is the restorable state of a document.
type Snapshot struct {
	FullCode  string
	Collapsed fold.CollapseSet

	// Selection is the caret to restore, in view-text offsets, when HasSelection is set.
	Selection    textedit.Selection
	HasSelection bool
}

// Equal reports whether two snapshots hold the same text and collapse set.
// Selections are not compared.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.FullCode == other.FullCode && s.Collapsed.Equal(other.Collapsed)
}

// History holds the undo and redo stacks of one document.
type History struct {
	undo *Stack[Snapshot]
	redo *Stack[Snapshot]
}

// New creates a history keeping at most depth undo steps; 0 means unlimited.
func New(depth int) *History {
	return &History{
		undo: NewStack[Snapshot](depth),
		redo: NewStack[Snapshot](depth),
	}
}

// Push records the state before a mutation and clears the redo stack.
func (h *History) Push(s Snapshot) {
	h.undo.Push(clone(s))
	h.redo.Clear()
}

// Undo pops the last recorded state and saves current for redo.
// ok is false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	prev, err := h.undo.Pop()
	if err != nil {
		return Snapshot{}, false
	}
	h.redo.Push(clone(current))
	return prev, true
}

// Redo pops the last undone state and saves current for undo.
// ok is false when there is nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	next, err := h.redo.Pop()
	if err != nil {
		return Snapshot{}, false
	}
	h.undo.Push(clone(current))
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return h.undo.Len() > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	return h.redo.Len() > 0
}

// Depths returns the sizes of the undo and redo stacks.
func (h *History) Depths() (undo, redo int) {
	return h.undo.Len(), h.redo.Len()
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo.Clear()
	h.redo.Clear()
}

func clone(s Snapshot) Snapshot {
	s.Collapsed = s.Collapsed.Clone()
	return s
}

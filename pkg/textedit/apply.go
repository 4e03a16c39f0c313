package textedit

import (
	"fmt"
	"sort"
	"strings"
)

// RangeError describes an edit whose range does not fit the text.
type RangeError struct {
	Edit    Edit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks every edit range against a text of the given length.
func Validate(edits []Edit, length int) error {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return &RangeError{Edit: edit, Message: "start offset is negative"}
		case edit.End < edit.Start:
			return &RangeError{Edit: edit, Message: "end offset is before start offset"}
		case edit.End > length:
			return &RangeError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds text length %d", edit.End, length),
			}
		}
	}
	return nil
}

// Sort orders edits by start then end offset. The sort is stable, so insertions at the
// same offset keep their order.
func Sort(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// Prepare validates a copy of edits, sorts it and rejects overlaps.
func Prepare(edits []Edit, length int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, length); err != nil {
		return nil, err
	}

	sorted := append([]Edit(nil), edits...)
	Sort(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// Apply applies prepared edits to text.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}

	grow := 0
	for _, edit := range edits {
		grow += edit.Delta()
	}

	var builder strings.Builder
	builder.Grow(max(0, len(text)+grow))

	cursor := 0
	for _, edit := range edits {
		builder.WriteString(text[cursor:edit.Start])
		builder.WriteString(edit.NewText)
		cursor = edit.End
	}
	builder.WriteString(text[cursor:])

	return builder.String()
}

// ApplyAll prepares and applies edits in one step.
func ApplyAll(text string, edits []Edit) (string, []Edit, error) {
	prepared, err := Prepare(edits, len(text))
	if err != nil {
		return text, nil, err
	}
	return Apply(text, prepared), prepared, nil
}

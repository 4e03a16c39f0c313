package editor

import "errors"

var (
	// ErrNoMatch is returned by replace operations when no search match is current.
	ErrNoMatch = errors.New("no current search match")

	// ErrReadOnlyPlaceholder is returned when an edit targets a collapsed placeholder line.
	ErrReadOnlyPlaceholder = errors.New("collapsed placeholder is read-only")

	// ErrLineOutOfRange is returned for line numbers outside the document or view.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrNotCollapsible is returned when a line starts no block that can be collapsed.
	ErrNotCollapsible = errors.New("line has no collapsible block")

	// ErrNoDiagnostic is returned when a diagnostic index is out of range.
	ErrNoDiagnostic = errors.New("no such diagnostic")

	// ErrUnknownDocument is returned by the registry for unknown IDs.
	ErrUnknownDocument = errors.New("unknown document")
)

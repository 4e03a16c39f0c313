package search

import "errors"

// ErrEmptyTerm is returned when replacing with an empty search term.
var ErrEmptyTerm = errors.New("empty search term")

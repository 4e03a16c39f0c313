package input

import "errors"

// ErrClipboardUnsupported is returned when no system clipboard is available.
var ErrClipboardUnsupported = errors.New("clipboard unsupported on this system")

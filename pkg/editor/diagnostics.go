package editor

import (
	"fmt"
	"sort"
)

// Diagnostic is a message attached to a full-code position, e.g. from a linter or
// compiler run by the host. Line and Column are 1-based.
type Diagnostic struct {
	Line     int
	Column   int
	Severity string
	Message  string
	Source   string
}

// SetDiagnostics replaces the diagnostics, ordered by position.
func (d *Document) SetDiagnostics(diags []Diagnostic) {
	d.Diagnostics = append([]Diagnostic(nil), diags...)
	sort.SliceStable(d.Diagnostics, func(i, j int) bool {
		if d.Diagnostics[i].Line != d.Diagnostics[j].Line {
			return d.Diagnostics[i].Line < d.Diagnostics[j].Line
		}
		return d.Diagnostics[i].Column < d.Diagnostics[j].Column
	})
}

// JumpToDiagnostic activates the line of diagnostic i and returns the view line.
func (d *Document) JumpToDiagnostic(i int) (Diagnostic, int, error) {
	if i < 0 || i >= len(d.Diagnostics) {
		return Diagnostic{}, 0, fmt.Errorf("%w: %d", ErrNoDiagnostic, i)
	}
	diag := d.Diagnostics[i]
	viewLine, ok := d.JumpToLine(diag.Line)
	if !ok {
		return diag, 0, fmt.Errorf("%w: diagnostic on line %d", ErrLineOutOfRange, diag.Line)
	}
	return diag, viewLine, nil
}

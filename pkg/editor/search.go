package editor

import (
	"fmt"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/search"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Search scans the full code for term and makes the first matching line active.
// An empty term clears the search.
func (d *Document) Search(term string, caseSensitive bool) *search.Session {
	d.Session = search.NewSession(d.FullCode, term, caseSensitive)
	d.activateCurrent()
	return d.Session
}

// ClearSearch drops the search session and the active line.
func (d *Document) ClearSearch() {
	d.Session = nil
	d.ActiveLine = 0
}

// NextMatch moves to the following match, wrapping around, and jumps to its line.
func (d *Document) NextMatch() (search.Match, bool) {
	if d.Session == nil {
		return search.Match{}, false
	}
	match, ok := d.Session.Next()
	if ok {
		d.JumpToLine(match.Line)
	}
	return match, ok
}

// PreviousMatch moves to the preceding match, wrapping around.
func (d *Document) PreviousMatch() (search.Match, bool) {
	if d.Session == nil {
		return search.Match{}, false
	}
	match, ok := d.Session.Previous()
	if ok {
		d.JumpToLine(match.Line)
	}
	return match, ok
}

// SearchStatus renders the match position as "i/n".
func (d *Document) SearchStatus() string {
	if d.Session == nil {
		return "0/0"
	}
	return d.Session.Status()
}

// Replace substitutes every occurrence of the search term on the line of the current
// match and returns how many were replaced. The resolved match is dropped and the
// search re-run against the new text.
func (d *Document) Replace(replacement string) (int, error) {
	if d.Session == nil {
		return 0, ErrNoMatch
	}
	match, ok := d.Session.Current()
	if !ok {
		return 0, ErrNoMatch
	}

	lines := d.Lines()
	if match.Line < 1 || match.Line > len(lines) {
		d.refreshSearch()
		return 0, ErrNoMatch
	}

	replaced, count, err := search.ReplaceLine(lines[match.Line-1], d.Session.Term, replacement, d.Session.CaseSensitive)
	if err != nil {
		return 0, fmt.Errorf("replace on line %d: %w", match.Line, err)
	}
	if count == 0 {
		d.refreshSearch()
		return 0, ErrNoMatch
	}
	lines[match.Line-1] = replaced

	d.commit(textlines.Join(lines), d.Collapsed.Clone(), d.Selection)
	d.Session.Remove(d.Session.Index)
	d.refreshSearch()

	d.logger.Debug("replaced",
		logging.FieldDocument, d.ID,
		logging.FieldLine, match.Line,
		logging.FieldOccurrences, count)
	return count, nil
}

// ReplaceAll substitutes every occurrence in the full code as one undo step and
// returns the count. Nothing is recorded when there is no occurrence.
func (d *Document) ReplaceAll(replacement string) (int, error) {
	if d.Session == nil || d.Session.Term == "" {
		return 0, ErrNoMatch
	}

	replaced, count, err := search.ReplaceAll(d.FullCode, d.Session.Term, replacement, d.Session.CaseSensitive)
	if err != nil {
		return 0, fmt.Errorf("replace all: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	d.commit(replaced, d.Collapsed.Clone(), d.Selection)
	d.Session.Clear()
	d.refreshSearch()

	d.logger.Debug("replaced all",
		logging.FieldDocument, d.ID,
		logging.FieldTerm, d.Session.Term,
		logging.FieldOccurrences, count)
	return count, nil
}

// refreshSearch re-runs the current search against the full code and follows the
// current match with the active line. The caret is left alone.
func (d *Document) refreshSearch() {
	if d.Session == nil {
		return
	}
	d.Session.Refresh(d.FullCode)
	d.ActiveLine = 0
	if match, ok := d.Session.Current(); ok {
		d.ActiveLine = match.Line
	}
}

func (d *Document) activateCurrent() {
	match, ok := d.Session.Current()
	if !ok {
		d.ActiveLine = 0
		return
	}
	d.JumpToLine(match.Line)
}

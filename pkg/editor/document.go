// Package editor holds the document model: the authoritative full code, its collapse
// set, and every operation that mutates them. Each mutation records one undo step.
//
// A Document is not safe for concurrent use. Hosts serialize access, for example
// through input.Queue.
package editor

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/history"
	"github.com/yaklabco/foldedit/pkg/search"
	"github.com/yaklabco/foldedit/pkg/textedit"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

// IDSource produces document identifiers.
type IDSource func() string

// NewUUID is the default IDSource.
func NewUUID() string {
	return uuid.NewString()
}

// Options configures a document.
type Options struct {
	// Fold controls indentation measurement and placeholder text.
	Fold fold.Options

	// HistoryDepth bounds the undo stack; 0 is unlimited.
	HistoryDepth int

	// IDs assigns the document ID; nil uses NewUUID.
	IDs IDSource

	// Logger receives debug events; nil uses the default logger.
	Logger *log.Logger
}

// Document is one open file.
type Document struct {
	ID       string
	Path     string
	Language string

	// FullCode is the complete, newline-normalized text.
	FullCode string

	// Collapsed holds the 0-based full-code lines shown collapsed.
	Collapsed fold.CollapseSet

	// Selection is the caret or selection in view-text byte offsets.
	Selection textedit.Selection

	// ActiveLine is the 1-based full-code line highlighted as active, 0 for none.
	ActiveLine int

	// Status is a transient message for the host, such as a clipboard failure.
	Status string

	History     *history.History
	Session     *search.Session
	Diagnostics []Diagnostic

	// File describes the file on disk when the document was loaded or last saved.
	File *fsutil.Snapshot

	saved  string
	opts   Options
	logger *log.Logger

	view      fold.View
	viewValid bool
}

// Open creates a document for text. The text is newline-normalized and counts as saved.
func Open(path, text, language string, opts Options) *Document {
	ids := opts.IDs
	if ids == nil {
		ids = NewUUID
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	code := textlines.Normalize(text)
	doc := &Document{
		ID:       ids(),
		Path:     path,
		Language: language,
		FullCode: code,
		History:  history.New(opts.HistoryDepth),
		saved:    code,
		opts:     opts,
		logger:   logger,
	}
	doc.logger.Debug("document opened",
		logging.FieldDocument, doc.ID,
		logging.FieldPath, path,
		logging.FieldLanguage, language,
		logging.FieldLines, len(textlines.Split(code)))
	return doc
}

// Options returns the options the document was opened with.
func (d *Document) Options() Options {
	return d.opts
}

// View returns the view of the full code under the collapse set. It is cached until
// the next mutation.
func (d *Document) View() fold.View {
	if !d.viewValid {
		d.view = fold.GenerateView(d.FullCode, d.Collapsed, d.opts.Fold)
		d.viewValid = true
	}
	return d.view
}

// ViewText returns the view lines joined with newlines.
func (d *Document) ViewText() string {
	return d.View().Text()
}

// Text returns the full code for persistence.
func (d *Document) Text() string {
	return d.FullCode
}

// Lines returns the full code split into lines.
func (d *Document) Lines() []string {
	return textlines.Split(d.FullCode)
}

// Dirty reports whether the full code differs from the last saved text.
func (d *Document) Dirty() bool {
	return d.FullCode != d.saved
}

// MarkSaved records the current full code as saved.
func (d *Document) MarkSaved() {
	d.saved = d.FullCode
}

// Diff returns the unsaved changes as a unified diff, or nil when clean.
func (d *Document) Diff() *textedit.Diff {
	return textedit.GenerateDiff(d.Path, d.saved, d.FullCode)
}

func (d *Document) snapshot() history.Snapshot {
	return history.Snapshot{
		FullCode:     d.FullCode,
		Collapsed:    d.Collapsed.Clone(),
		Selection:    d.Selection,
		HasSelection: true,
	}
}

// commit records the current state for undo and installs the new one.
func (d *Document) commit(fullCode string, collapsed fold.CollapseSet, sel textedit.Selection) {
	d.History.Push(d.snapshot())
	d.FullCode = fullCode
	d.Collapsed = collapsed
	d.Collapsed.Prune(textlines.Split(fullCode), d.opts.Fold)
	d.invalidate()
	d.Selection = sel.Clamp(len(d.ViewText()))
}

func (d *Document) invalidate() {
	d.viewValid = false
}

// ToggleCollapse collapses or expands the block started by the 0-based full-code line.
// It reports whether the block is now collapsed. Lines that start no block, or that
// are hidden inside another collapsed block, yield ErrNotCollapsible and change nothing.
// Collapsing clears collapsed starts nested inside the block.
func (d *Document) ToggleCollapse(fullLine int) (bool, error) {
	lines := d.Lines()
	if fullLine < 0 || fullLine >= len(lines) {
		return false, ErrLineOutOfRange
	}

	collapsed := d.Collapsed.Clone()
	isCollapsed, changed := collapsed.ToggleBlock(lines, fullLine, d.opts.Fold)
	if !changed {
		return false, ErrNotCollapsible
	}

	before := d.View()
	after := fold.GenerateView(d.FullCode, collapsed, d.opts.Fold)
	sel := carrySelection(d.Selection, before, after)

	d.commit(d.FullCode, collapsed, sel)
	d.logger.Debug("collapse toggled",
		logging.FieldDocument, d.ID,
		logging.FieldLine, fullLine+1,
		logging.FieldCollapsed, isCollapsed)
	return isCollapsed, nil
}

// ToggleCollapseAtView toggles collapse from the gutter: a placeholder line expands its
// block, any other line toggles the block it starts.
func (d *Document) ToggleCollapseAtView(viewLine int) (bool, error) {
	view := d.View()
	if viewLine < 0 || viewLine >= view.Len() {
		return false, ErrLineOutOfRange
	}
	if view.IsPlaceholder(viewLine) {
		viewLine--
	}
	return d.ToggleCollapse(view.Mappings[viewLine].StartLine - 1)
}

// Collapsible reports whether the view line can be toggled from the gutter.
func (d *Document) Collapsible(viewLine int) bool {
	view := d.View()
	if viewLine < 0 || viewLine >= view.Len() {
		return false
	}
	if view.IsPlaceholder(viewLine) {
		return false
	}
	full := view.Mappings[viewLine].StartLine - 1
	return d.Collapsed.Has(full) || fold.HasCollapsibleBlock(d.Lines(), full, d.opts.Fold.TabWidth)
}

// ApplyViewText is the generic "text changed" path. newView is the whole edited view
// text and sel the selection to restore afterwards. The full code is rebuilt through
// the view mapper and one undo step is recorded. It reports whether anything changed.
func (d *Document) ApplyViewText(newView string, sel textedit.Selection) bool {
	previous := d.View()
	if newView == previous.Text() {
		d.Selection = sel.Clamp(len(newView))
		return false
	}

	fullCode, collapsed := fold.MapViewEdit(newView, previous, d.FullCode)
	d.commit(fullCode, collapsed, sel)
	d.refreshSearch()
	return true
}

// Rewrite replaces the full code directly, keeping the collapse set, as one undo step.
// It serves operations that reach lines hidden in collapsed blocks, such as shifting
// the indentation of a selection that spans a placeholder. sel is in the new view.
func (d *Document) Rewrite(fullCode string, sel textedit.Selection) bool {
	if fullCode == d.FullCode {
		d.Selection = sel.Clamp(len(d.ViewText()))
		return false
	}
	d.commit(fullCode, d.Collapsed.Clone(), sel)
	d.refreshSearch()
	return true
}

// Undo restores the state before the last mutation. It reports false when there is
// nothing to undo.
func (d *Document) Undo() bool {
	prev, ok := d.History.Undo(d.snapshot())
	if !ok {
		return false
	}
	d.restore(prev)
	d.logger.Debug("undo", logging.FieldDocument, d.ID)
	return true
}

// Redo reapplies the last undone mutation. It reports false when there is nothing to redo.
func (d *Document) Redo() bool {
	next, ok := d.History.Redo(d.snapshot())
	if !ok {
		return false
	}
	d.restore(next)
	d.logger.Debug("redo", logging.FieldDocument, d.ID)
	return true
}

func (d *Document) restore(s history.Snapshot) {
	d.FullCode = s.FullCode
	d.Collapsed = s.Collapsed.Clone()
	d.invalidate()
	if d.Session != nil {
		d.Session.Clear()
	}
	d.ActiveLine = 0
	if s.HasSelection {
		d.Selection = s.Selection.Clamp(len(d.ViewText()))
	}
}

// JumpToLine makes the 1-based full-code line active and moves the caret to the start
// of the view line showing it. It returns that 0-based view line. Lines inside a
// collapsed block resolve to the placeholder; nothing is expanded.
func (d *Document) JumpToLine(fullLine int) (int, bool) {
	view := d.View()
	viewLine, ok := view.ViewLineFor(fullLine - 1)
	if !ok {
		return 0, false
	}
	d.ActiveLine = fullLine
	index := textlines.NewIndex(view.Text())
	d.Selection = textedit.Caret(index.LineStart(viewLine))
	return viewLine, true
}

// ActiveViewLine returns the 0-based view line showing the active line.
func (d *Document) ActiveViewLine() (int, bool) {
	if d.ActiveLine < 1 {
		return 0, false
	}
	return d.View().ViewLineFor(d.ActiveLine - 1)
}

// CaretLine returns the 0-based view line holding the selection head.
func (d *Document) CaretLine() int {
	return textlines.NewIndex(d.ViewText()).Position(d.Selection.Head).Line
}

// carrySelection moves a selection from one view to another of the same full code,
// keeping each end on the full-code line it was on.
func carrySelection(sel textedit.Selection, before, after fold.View) textedit.Selection {
	beforeIdx := textlines.NewIndex(before.Text())
	afterText := after.Text()
	afterIdx := textlines.NewIndex(afterText)

	carry := func(offset int) int {
		pos := beforeIdx.Position(offset)
		if pos.Line >= before.Len() {
			return len(afterText)
		}
		full := before.Mappings[pos.Line].StartLine - 1
		line, ok := after.ViewLineFor(full)
		if !ok {
			return len(afterText)
		}
		return afterIdx.Offset(textlines.Position{Line: line, Column: pos.Column})
	}
	return textedit.Selection{Anchor: carry(sel.Anchor), Head: carry(sel.Head)}
}

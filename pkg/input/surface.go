package input

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/textedit"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Defaults for Options.
const (
	DefaultIndentUnit = 4
	DefaultPageLines  = 20
)

// Status messages set on the document.
const (
	StatusReadOnly = "collapsed block is read-only; expand it to edit"
)

// Saver persists a document. It is the save action's collaborator.
type Saver func(ctx context.Context, doc *editor.Document) error

// SearchOpener shows the host's search UI for a document.
type SearchOpener func(doc *editor.Document)

// Options configures a Surface. Zero values select defaults.
type Options struct {
	Keymap     *Keymap
	Clipboard  Clipboard
	Queue      *Queue
	Save       Saver
	OpenSearch SearchOpener

	// IndentUnit is the number of spaces added or removed by tab and shift+tab.
	IndentUnit int

	// PageLines is how far page up and page down move the caret.
	PageLines int

	Logger *log.Logger
}

// Result describes what a key did.
type Result struct {
	Action     Action
	Changed    bool
	Suppressed bool

	// Reason explains a suppressed key, e.g. editor.ErrReadOnlyPlaceholder.
	Reason error
}

// Surface dispatches key events to one document. Every mutating key runs through the
// document's Queue and records exactly one undo step.
type Surface struct {
	doc        *editor.Document
	keymap     *Keymap
	clipboard  Clipboard
	queue      *Queue
	ownsQueue  bool
	save       Saver
	openSearch SearchOpener
	indentUnit int
	pageLines  int
	logger     *log.Logger
}

// NewSurface creates a surface for doc.
func NewSurface(doc *editor.Document, opts Options) *Surface {
	surface := &Surface{
		doc:        doc,
		keymap:     opts.Keymap,
		clipboard:  opts.Clipboard,
		queue:      opts.Queue,
		save:       opts.Save,
		openSearch: opts.OpenSearch,
		indentUnit: opts.IndentUnit,
		pageLines:  opts.PageLines,
		logger:     opts.Logger,
	}
	if surface.keymap == nil {
		surface.keymap = DefaultKeymap()
	}
	if surface.clipboard == nil {
		surface.clipboard = &MemoryClipboard{}
	}
	if surface.queue == nil {
		surface.queue = NewQueue()
		surface.ownsQueue = true
	}
	if surface.indentUnit <= 0 {
		surface.indentUnit = DefaultIndentUnit
	}
	if surface.pageLines <= 0 {
		surface.pageLines = DefaultPageLines
	}
	if surface.logger == nil {
		surface.logger = logging.Default()
	}
	return surface
}

// Document returns the document being edited.
func (s *Surface) Document() *editor.Document {
	return s.doc
}

// Close stops the queue if the surface created it.
func (s *Surface) Close() {
	if s.ownsQueue {
		s.queue.Close()
	}
}

// HandleKey runs the operation for key: Idle, one operation, Idle.
func (s *Surface) HandleKey(ctx context.Context, key Key) (Result, error) {
	return s.run(ctx, func() (Result, error) {
		result, err := s.dispatch(ctx, key)
		s.logger.Debug("key handled",
			logging.FieldDocument, s.doc.ID,
			logging.FieldKey, key.String(),
			logging.FieldAction, string(result.Action),
			"changed", result.Changed,
			"suppressed", result.Suppressed)
		return result, err
	})
}

// TextChanged is the generic path for hosts that deliver the whole edited view text,
// such as a native text area. Mangled placeholder lines are reset before the text is
// applied.
func (s *Surface) TextChanged(ctx context.Context, viewText string, sel textedit.Selection) (Result, error) {
	return s.run(ctx, func() (Result, error) {
		result := Result{Action: ActionInsert}
		repaired, wasRepaired := Repair(s.doc.View(), textlines.Normalize(viewText))
		if wasRepaired {
			s.doc.Status = StatusReadOnly
			result.Reason = editor.ErrReadOnlyPlaceholder
		}
		result.Changed = s.doc.ApplyViewText(repaired, sel)
		return result, nil
	})
}

func (s *Surface) run(ctx context.Context, op func() (Result, error)) (Result, error) {
	results := make(chan Result, 1)
	err := s.queue.Do(ctx, func() error {
		result, err := op()
		results <- result
		return err
	})
	select {
	case result := <-results:
		return result, err
	default:
		return Result{}, err
	}
}

func (s *Surface) dispatch(ctx context.Context, key Key) (Result, error) {
	if key.IsNavigation() && !key.Alt {
		return s.navigate(key), nil
	}

	if action, ok := s.keymap.Lookup(key); ok {
		return s.command(ctx, action)
	}

	var action Action
	switch {
	case key.Name == KeyTab && !key.IsCommand():
		action = ActionIndent
		if key.Shift {
			action = ActionOutdent
		}
	case key.Name == KeyEnter && !key.IsCommand():
		action = ActionNewline
	case key.Name == KeyBackspace && !key.IsCommand():
		action = ActionBackspace
	case key.Name == KeyDelete && !key.IsCommand():
		action = ActionDelete
	case key.Text() != "":
		action = ActionInsert
	default:
		return Result{}, nil
	}

	if blocked, result := s.guard(action); blocked {
		return result, nil
	}

	switch action {
	case ActionIndent:
		return s.indent(false)
	case ActionOutdent:
		return s.indent(true)
	case ActionNewline:
		return s.newline()
	case ActionBackspace:
		return s.deleteRune(action, -1)
	case ActionDelete:
		return s.deleteRune(action, 1)
	default:
		return s.replaceSelection(ActionInsert, key.Text())
	}
}

// guard suppresses mutating operations while the caret sits on a placeholder.
func (s *Surface) guard(action Action) (bool, Result) {
	if !OnPlaceholder(s.doc.View(), s.selection()) {
		return false, Result{}
	}
	s.doc.Status = StatusReadOnly
	return true, Result{Action: action, Suppressed: true, Reason: editor.ErrReadOnlyPlaceholder}
}

func (s *Surface) command(ctx context.Context, action Action) (Result, error) {
	result := Result{Action: action}

	switch action {
	case ActionSave:
		if s.save == nil {
			return result, nil
		}
		if err := s.save(ctx, s.doc); err != nil {
			s.doc.Status = "save failed: " + err.Error()
			return result, fmt.Errorf("save: %w", err)
		}
		s.doc.Status = "saved"

	case ActionUndo:
		result.Changed = s.doc.Undo()

	case ActionRedo:
		result.Changed = s.doc.Redo()

	case ActionSelectAll:
		s.doc.Selection = textedit.Selection{Anchor: 0, Head: len(s.doc.ViewText())}

	case ActionSearch:
		if s.openSearch != nil {
			s.openSearch(s.doc)
		}

	case ActionCopy:
		start, end := s.copyRange()
		if err := s.clipboard.WriteText(s.copyText(start, end)); err != nil {
			s.doc.Status = "copy failed: " + err.Error()
		}

	case ActionCut:
		if blocked, suppressed := s.guard(action); blocked {
			return suppressed, nil
		}
		start, end := s.copyRange()
		if start == end {
			return result, nil
		}
		if err := s.clipboard.WriteText(s.copyText(start, end)); err != nil {
			s.doc.Status = "cut failed: " + err.Error()
			return result, nil
		}
		return s.apply(action, []textedit.Edit{{Start: start, End: end}}, textedit.Caret(start))

	case ActionPaste:
		if blocked, suppressed := s.guard(action); blocked {
			return suppressed, nil
		}
		text, err := s.clipboard.ReadText()
		if err != nil {
			s.doc.Status = "paste failed: " + err.Error()
			return result, nil
		}
		return s.replaceSelection(action, textlines.Normalize(text))

	default:
		// Operation names are never bound; nothing to do.
	}
	return result, nil
}

func (s *Surface) selection() textedit.Selection {
	return s.doc.Selection.Clamp(len(s.doc.ViewText()))
}

// copyRange is the selection, or the caret's whole line including its newline when
// nothing is selected.
func (s *Surface) copyRange() (int, int) {
	sel := s.selection()
	if !sel.Empty() {
		return sel.Start(), sel.End()
	}
	text := s.doc.ViewText()
	index := textlines.NewIndex(text)
	line := index.Position(sel.Head).Line
	return index.LineStart(line), min(index.LineEnd(line)+1, len(text))
}

// copyText returns view text [start, end) with fully selected placeholders replaced
// by the lines they hide.
func (s *Surface) copyText(start, end int) string {
	view := s.doc.View()
	text := view.Text()
	index := textlines.NewIndex(text)
	full := s.doc.Lines()

	var builder strings.Builder
	first, last := index.Position(start).Line, index.Position(end).Line
	for line := first; line <= last; line++ {
		lineStart, lineEnd := index.LineStart(line), index.LineEnd(line)
		from, to := max(lineStart, start), min(lineEnd, end)
		if view.IsPlaceholder(line) && from == lineStart && to == lineEnd {
			mapping := view.Mappings[line]
			builder.WriteString(textlines.Join(full[mapping.StartLine-1 : mapping.EndLine]))
		} else if from < to {
			builder.WriteString(text[from:to])
		}
		if line < last {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func (s *Surface) replaceSelection(action Action, text string) (Result, error) {
	sel := s.selection()
	edit := textedit.Edit{Start: sel.Start(), End: sel.End(), NewText: text}
	return s.apply(action, []textedit.Edit{edit}, textedit.Caret(sel.Start()+len(text)))
}

// apply edits the view text and hands the result to the document. Edits that would
// break a placeholder are dropped and reported as suppressed.
func (s *Surface) apply(action Action, edits []textedit.Edit, after textedit.Selection) (Result, error) {
	view := s.doc.View()
	text := view.Text()

	prepared, err := textedit.Prepare(edits, len(text))
	if err != nil {
		return Result{Action: action}, fmt.Errorf("%s: %w", action, err)
	}
	if breaksPlaceholder(view, prepared) {
		s.doc.Status = StatusReadOnly
		return Result{Action: action, Suppressed: true, Reason: editor.ErrReadOnlyPlaceholder}, nil
	}

	changed := s.doc.ApplyViewText(textedit.Apply(text, prepared), after)
	return Result{Action: action, Changed: changed}, nil
}

func (s *Surface) deleteRune(action Action, direction int) (Result, error) {
	sel := s.selection()
	if !sel.Empty() {
		return s.replaceSelection(action, "")
	}

	text := s.doc.ViewText()
	caret := sel.Head
	if direction < 0 {
		if caret == 0 {
			return Result{Action: action}, nil
		}
		_, size := utf8.DecodeLastRuneInString(text[:caret])
		return s.apply(action, []textedit.Edit{{Start: caret - size, End: caret}}, textedit.Caret(caret-size))
	}
	if caret >= len(text) {
		return Result{Action: action}, nil
	}
	_, size := utf8.DecodeRuneInString(text[caret:])
	return s.apply(action, []textedit.Edit{{Start: caret, End: caret + size}}, textedit.Caret(caret))
}

func (s *Surface) newline() (Result, error) {
	sel := s.selection()
	text := s.doc.ViewText()
	index := textlines.NewIndex(text)
	line := index.Position(sel.Start()).Line
	lineStart := index.LineStart(line)

	current := text[lineStart:index.LineEnd(line)]
	indent := textlines.LeadingWhitespace(current)
	before := strings.TrimSpace(text[lineStart:sel.Start()])
	if before != "" && strings.ContainsAny(before[len(before)-1:], "{[(:") {
		indent += strings.Repeat(" ", s.indentUnit)
	}
	return s.replaceSelection(ActionNewline, "\n"+indent)
}

// indent handles tab and shift+tab. A bare caret gets spaces inserted, or removed from
// its line's indentation; a selection has every line it touches shifted, including the
// lines hidden behind selected placeholders.
func (s *Surface) indent(outdent bool) (Result, error) {
	action := ActionIndent
	if outdent {
		action = ActionOutdent
	}

	sel := s.selection()
	if sel.Empty() && !outdent {
		return s.replaceSelection(action, strings.Repeat(" ", s.indentUnit))
	}

	text := s.doc.ViewText()
	index := textlines.NewIndex(text)

	if sel.Empty() {
		line := index.Position(sel.Head).Line
		lineStart := index.LineStart(line)
		_, removed := textlines.Outdent(text[lineStart:index.LineEnd(line)], s.indentUnit)
		if removed == 0 {
			return Result{Action: action}, nil
		}
		caret := max(lineStart, sel.Head-removed)
		return s.apply(action, []textedit.Edit{{Start: lineStart, End: lineStart + removed}}, textedit.Caret(caret))
	}

	first := index.Position(sel.Start()).Line
	endPos := index.Position(sel.End())
	last := endPos.Line
	if endPos.Column == 0 && last > first {
		last--
	}
	return s.shiftLines(action, first, last, outdent)
}

func (s *Surface) shiftLines(action Action, first, last int, outdent bool) (Result, error) {
	view := s.doc.View()
	full := s.doc.Lines()
	unit := strings.Repeat(" ", s.indentUnit)

	// The empty line after a trailing newline has no mapping and nothing to shift.
	last = min(last, view.Len()-1)
	if first > last {
		return Result{Action: action}, nil
	}

	for viewLine := first; viewLine <= last; viewLine++ {
		mapping := view.Mappings[viewLine]
		for idx := mapping.StartLine - 1; idx < mapping.EndLine && idx < len(full); idx++ {
			switch {
			case outdent:
				full[idx], _ = textlines.Outdent(full[idx], s.indentUnit)
			case !textlines.IsBlank(full[idx]):
				full[idx] = unit + full[idx]
			}
		}
	}

	fullCode := textlines.Join(full)
	opts := s.doc.Options().Fold
	collapsed := s.doc.Collapsed.Clone()
	collapsed.Prune(full, opts)
	after := fold.GenerateView(fullCode, collapsed, opts)
	afterIndex := textlines.NewIndex(after.Text())

	last = min(last, after.Len()-1)
	sel := textedit.Selection{Anchor: afterIndex.LineStart(first), Head: afterIndex.LineEnd(last)}
	if s.doc.Selection.Anchor > s.doc.Selection.Head {
		sel.Anchor, sel.Head = sel.Head, sel.Anchor
	}

	changed := s.doc.Rewrite(fullCode, sel)
	return Result{Action: action, Changed: changed}, nil
}

func (s *Surface) navigate(key Key) Result {
	sel := s.selection()
	text := s.doc.ViewText()
	index := textlines.NewIndex(text)
	pos := index.Position(sel.Head)
	head := sel.Head

	switch key.Name {
	case KeyLeft:
		switch {
		case !key.Shift && !sel.Empty():
			head = sel.Start()
		case head > 0:
			_, size := utf8.DecodeLastRuneInString(text[:head])
			head -= size
		}
	case KeyRight:
		switch {
		case !key.Shift && !sel.Empty():
			head = sel.End()
		case head < len(text):
			_, size := utf8.DecodeRuneInString(text[head:])
			head += size
		}
	case KeyUp:
		head = s.verticalMove(index, pos, -1, len(text))
	case KeyDown:
		head = s.verticalMove(index, pos, 1, len(text))
	case KeyPageUp:
		head = s.verticalMove(index, pos, -s.pageLines, len(text))
	case KeyPageDown:
		head = s.verticalMove(index, pos, s.pageLines, len(text))
	case KeyHome:
		head = index.LineStart(pos.Line)
		if key.Ctrl || key.Meta {
			head = 0
		}
	case KeyEnd:
		head = index.LineEnd(pos.Line)
		if key.Ctrl || key.Meta {
			head = len(text)
		}
	case KeyEscape:
	}

	if key.Shift {
		s.doc.Selection = textedit.Selection{Anchor: sel.Anchor, Head: head}
	} else {
		s.doc.Selection = textedit.Caret(head)
	}
	return Result{Action: ActionNavigate}
}

func (s *Surface) verticalMove(index *textlines.Index, pos textlines.Position, delta, length int) int {
	target := pos.Line + delta
	switch {
	case target < 0:
		return 0
	case target >= index.LineCount():
		return length
	}
	return index.Offset(textlines.Position{Line: target, Column: pos.Column})
}

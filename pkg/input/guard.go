package input

import (
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/textedit"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

type lineSpan struct {
	start int
	end   int
}

// placeholderSpans returns the byte range of every placeholder line of the view text,
// excluding the newline.
func placeholderSpans(view fold.View) []lineSpan {
	index := textlines.NewIndex(view.Text())
	var spans []lineSpan
	for i := range view.Lines {
		if view.IsPlaceholder(i) {
			spans = append(spans, lineSpan{start: index.LineStart(i), end: index.LineEnd(i)})
		}
	}
	return spans
}

// breaksPlaceholder reports whether prepared edits change part of a placeholder line.
// Edits that swallow a whole placeholder line are allowed; that deletes the collapsed
// block with it. Edits that touch only part of the line, or join it with a neighbour,
// are not.
func breaksPlaceholder(view fold.View, edits []textedit.Edit) bool {
	spans := placeholderSpans(view)
	for _, edit := range edits {
		for _, span := range spans {
			touches := edit.Start <= span.end && edit.End >= span.start
			swallows := edit.Start <= span.start && edit.End >= span.end && !edit.IsInsert()
			if touches && !swallows {
				return true
			}
		}
	}
	return false
}

// OnPlaceholder reports whether the caret of view-text selection sel sits on a
// placeholder line that still reads "...".
func OnPlaceholder(view fold.View, sel textedit.Selection) bool {
	line := textlines.NewIndex(view.Text()).Position(sel.Head).Line
	return view.IsPlaceholder(line) && fold.IsPlaceholderText(view.Lines[line])
}

// Repair resets placeholder lines of an edited view text that no longer read "..."
// back to their expected text. Edited lines are lined up with the view the same way the view mapper
// does, so lines shifted by inserts or deletes are never mistaken for placeholders.
// A placeholder whose line was deleted outright is left deleted. It reports whether a
// line was reset.
func Repair(view fold.View, edited string) (string, bool) {
	lines := textlines.Split(edited)
	aligned := fold.AlignLines(view.TextLines(), lines)

	repaired := false
	for j, i := range aligned {
		if !view.IsPlaceholder(i) || fold.IsPlaceholderText(lines[j]) {
			continue
		}
		lines[j] = view.Lines[i]
		repaired = true
	}
	if !repaired {
		return edited, false
	}
	return textlines.Join(lines), true
}

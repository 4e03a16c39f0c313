package viewport

import (
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

// FrameLine is one rendered view line.
type FrameLine struct {
	// Index is the 0-based view line index.
	Index int

	// Gutter is the line number label: "12", or "12-18" for a collapsed range.
	Gutter string

	Spans       []highlight.Span
	Placeholder bool
	Active      bool
	Collapsible bool
}

// Frame is the styled content of the rendered window. Rendering targets paint it.
type Frame struct {
	Window      Window
	Total       int
	GutterWidth int
	Lines       []FrameLine
}

// RenderOptions configures Render.
type RenderOptions struct {
	// Highlight carries the search term and the 1-based active view line.
	Highlight highlight.Options

	// Collapsible reports whether a view line can be collapsed. Optional.
	Collapsible func(viewLine int) bool
}

// Render tokenizes only the view lines inside window and pairs them with their gutter
// labels.
func Render(view fold.View, lang highlight.Language, window Window, opts RenderOptions) Frame {
	window.Start = max(0, min(window.Start, view.Len()))
	window.End = max(window.Start, min(window.End, view.Len()))

	frame := Frame{
		Window:      window,
		Total:       view.Len(),
		GutterWidth: gutterWidth(view),
		Lines:       make([]FrameLine, 0, window.Len()),
	}
	if window.Len() == 0 {
		return frame
	}

	hlOpts := opts.Highlight
	hlOpts.LineOffset = window.Start
	text := textlines.Join(view.Lines[window.Start:window.End])
	lines := highlight.Highlight(text, lang, hlOpts)

	for offset, line := range lines {
		idx := window.Start + offset
		frameLine := FrameLine{
			Index:       idx,
			Gutter:      view.Mappings[idx].String(),
			Spans:       line.Spans,
			Placeholder: view.IsPlaceholder(idx),
			Active:      opts.Highlight.ActiveLine == idx+1,
		}
		if opts.Collapsible != nil {
			frameLine.Collapsible = opts.Collapsible(idx)
		}
		frame.Lines = append(frame.Lines, frameLine)
	}
	return frame
}

func gutterWidth(view fold.View) int {
	width := 1
	for _, mapping := range view.Mappings {
		width = max(width, len(mapping.String()))
	}
	return width
}

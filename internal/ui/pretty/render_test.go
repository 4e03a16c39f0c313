package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/viewport"
)

func TestRenderFrame(t *testing.T) {
	t.Parallel()

	frame := viewport.Frame{
		GutterWidth: 3,
		Lines: []viewport.FrameLine{
			{Index: 0, Gutter: "1", Spans: []highlight.Span{{Text: "a {", Type: "identifier"}}, Collapsible: true},
			{Index: 1, Gutter: "2-4", Spans: []highlight.Span{{Text: "    ..."}}, Placeholder: true},
			{Index: 2, Gutter: "5", Spans: []highlight.Span{{Text: "}"}}, Active: true},
		},
	}

	got := pretty.NewTerminalRenderer(nil, nil).Render(frame, 0)
	assert.Equal(t, "  1 - a {\n2-4 +     ...\n  5   }\n", got)
}

func TestRenderLineTruncation(t *testing.T) {
	t.Parallel()

	renderer := pretty.NewTerminalRenderer(pretty.NewTheme(pretty.DefaultTheme, false), pretty.NewStyles(false))

	tests := []struct {
		name  string
		spans []highlight.Span
		width int
		want  string
	}{
		{name: "fits", spans: []highlight.Span{{Text: "abcd"}}, width: 10, want: "1   abcd"},
		{name: "cut", spans: []highlight.Span{{Text: "abcdef"}}, width: 8, want: "1   abc…"},
		{name: "cut across spans", spans: []highlight.Span{{Text: "ab"}, {Text: "cdef"}}, width: 8, want: "1   abc…"},
		{name: "wide runes", spans: []highlight.Span{{Text: "日本語"}}, width: 8, want: "1   日…"},
		{name: "tabs expand", spans: []highlight.Span{{Text: "\tx"}}, width: 0, want: "1       x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := viewport.FrameLine{Gutter: "1", Spans: tt.spans}
			assert.Equal(t, tt.want, renderer.RenderLine(line, 1, tt.width))
		})
	}
}

func TestRenderViewportOutput(t *testing.T) {
	t.Parallel()

	code := "func main() {\n  x := 1\n  y := 2\n}\n"
	view := fold.GenerateView(code, fold.NewCollapseSet(0), fold.Options{})
	lang := highlight.Default().Lookup("go")
	frame := viewport.Render(view, lang, viewport.Window{Start: 0, End: view.Len()}, viewport.RenderOptions{})

	got := pretty.NewTerminalRenderer(nil, nil).Render(frame, 0)
	assert.Equal(t, "  1   func main() {\n2-3 +     ...\n  4   }\n", got)
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/foldedit/pkg/viewport"
)

// Fold markers drawn between the gutter and the code.
const (
	markerCollapsible = "-"
	markerCollapsed   = "+"
	markerNone        = " "
	ellipsis          = "…"
	tabWidth          = 4
)

// TerminalRenderer paints viewport frames as styled terminal lines.
type TerminalRenderer struct {
	theme  *Theme
	styles *Styles
}

// NewTerminalRenderer creates a renderer. Nil arguments select the plain theme and styles.
func NewTerminalRenderer(theme *Theme, styles *Styles) *TerminalRenderer {
	if theme == nil {
		theme = NewTheme(DefaultTheme, false)
	}
	if styles == nil {
		styles = NewStyles(false)
	}
	return &TerminalRenderer{theme: theme, styles: styles}
}

// Render paints every frame line as "<gutter> <marker> <code>". Lines wider than width
// cells are cut with an ellipsis; width <= 0 disables truncation.
func (r *TerminalRenderer) Render(frame viewport.Frame, width int) string {
	var builder strings.Builder
	for _, line := range frame.Lines {
		builder.WriteString(r.RenderLine(line, frame.GutterWidth, width))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderLine paints one frame line.
func (r *TerminalRenderer) RenderLine(line viewport.FrameLine, gutterWidth, width int) string {
	gutterStyle := r.styles.Gutter
	if line.Active {
		gutterStyle = r.styles.GutterActive
	}

	marker := markerNone
	switch {
	case line.Placeholder:
		marker = markerCollapsed
	case line.Collapsible:
		marker = markerCollapsible
	}

	var builder strings.Builder
	builder.WriteString(gutterStyle.Render(fmt.Sprintf("%*s", gutterWidth, line.Gutter)))
	builder.WriteString(" ")
	builder.WriteString(r.styles.FoldMarker.Render(marker))
	builder.WriteString(" ")

	budget := -1
	if width > 0 {
		budget = max(0, width-gutterWidth-len(" + "))
	}

	for _, span := range line.Spans {
		text := strings.ReplaceAll(span.Text, "\t", strings.Repeat(" ", tabWidth))
		if budget >= 0 {
			cells := runewidth.StringWidth(text)
			if cells > budget {
				builder.WriteString(r.spanStyle(line, span.Type, span.Match).
					Render(runewidth.Truncate(text, budget, ellipsis)))
				break
			}
			budget -= cells
		}
		builder.WriteString(r.spanStyle(line, span.Type, span.Match).Render(text))
	}
	return builder.String()
}

func (r *TerminalRenderer) spanStyle(line viewport.FrameLine, tokenType string, match bool) lipgloss.Style {
	switch {
	case match:
		return r.styles.Match
	case line.Placeholder:
		return r.styles.Placeholder
	default:
		return r.theme.Style(tokenType)
	}
}

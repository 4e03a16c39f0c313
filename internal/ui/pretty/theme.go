package pretty

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/foldedit/pkg/highlight"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// tokenTypes maps highlight token types to the chroma token types whose colours they
// borrow.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tokenTypes = map[string]chroma.TokenType{
	highlight.TypeKeyword:      chroma.Keyword,
	highlight.TypeString:       chroma.LiteralString,
	highlight.TypeComment:      chroma.Comment,
	highlight.TypeNumber:       chroma.LiteralNumber,
	highlight.TypeOperator:     chroma.Operator,
	highlight.TypePunctuation:  chroma.Punctuation,
	highlight.TypeIdentifier:   chroma.Name,
	highlight.TypeBuiltin:      chroma.NameBuiltin,
	highlight.TypeType:         chroma.KeywordType,
	highlight.TypeFunction:     chroma.NameFunction,
	highlight.TypeConstant:     chroma.NameConstant,
	highlight.TypeProperty:     chroma.NameProperty,
	highlight.TypeVariable:     chroma.NameVariable,
	highlight.TypeTag:          chroma.NameTag,
	highlight.TypeAttribute:    chroma.NameAttribute,
	highlight.TypeDecorator:    chroma.NameDecorator,
	highlight.TypePreprocessor: chroma.CommentPreproc,
	highlight.TypeHeading:      chroma.GenericHeading,
	highlight.TypeEmphasis:     chroma.GenericEmph,
	highlight.TypeStrong:       chroma.GenericStrong,
	highlight.TypeLink:         chroma.NameLabel,
	highlight.TypeCode:         chroma.LiteralStringBacktick,
}

// Theme styles highlight token types with the colours of a chroma style.
type Theme struct {
	Name   string
	plain  lipgloss.Style
	tokens map[string]lipgloss.Style
}

// NewTheme builds the theme for the chroma style name. Unknown names fall back to
// chroma's fallback style. Without colour every token renders plain.
func NewTheme(name string, colorEnabled bool) *Theme {
	theme := &Theme{
		Name:   name,
		plain:  lipgloss.NewStyle(),
		tokens: make(map[string]lipgloss.Style, len(tokenTypes)),
	}
	if !colorEnabled {
		return theme
	}

	style := styles.Get(name)
	theme.Name = style.Name
	theme.plain = entryStyle(style.Get(chroma.Text))
	for typ, chromaType := range tokenTypes {
		theme.tokens[typ] = entryStyle(style.Get(chromaType))
	}
	return theme
}

func entryStyle(entry chroma.StyleEntry) lipgloss.Style {
	out := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		out = out.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		out = out.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		out = out.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		out = out.Underline(true)
	}
	return out
}

// Style returns the style of a token type. Untyped and unknown types render plain.
func (t *Theme) Style(tokenType string) lipgloss.Style {
	if style, ok := t.tokens[tokenType]; ok {
		return style
	}
	return t.plain
}

// IsTheme reports whether name is a registered chroma style.
func IsTheme(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// ThemeNames returns the registered chroma style names, sorted.
func ThemeNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

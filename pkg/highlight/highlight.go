package highlight

import (
	"html"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Markup vocabulary.
const (
	LineBreak       = "<br/>"
	activeLineOpen  = `<div class="active-line">`
	activeLineClose = `</div>`
	matchOpen       = `<mark class="search-match">`
	matchClose      = `</mark>`
)

// Options selects the search overlay and the active line.
type Options struct {
	// Term is the search term; empty disables match highlighting.
	Term string

	// CaseSensitive makes Term match case-sensitively.
	CaseSensitive bool

	// Pattern treats Term as a regular expression instead of literal text.
	Pattern bool

	// ActiveLine is the 1-based line wrapped as active; 0 for none.
	ActiveLine int

	// LineOffset is added to every line number, for highlighting a window of a larger text.
	LineOffset int
}

// Span is a run of text with one style.
type Span struct {
	Text  string
	Type  string
	Match bool
}

// Line is one highlighted source line.
type Line struct {
	Number int
	Spans  []Span
	Active bool
}

// Text returns the plain text of the line.
func (l Line) Text() string {
	var builder strings.Builder
	for _, span := range l.Spans {
		builder.WriteString(span.Text)
	}
	return builder.String()
}

// CompileTerm builds the search matcher for opts. The term is escaped unless
// opts.Pattern is set.
func CompileTerm(opts Options) (*regexp2.Regexp, error) {
	expr := opts.Term
	if !opts.Pattern {
		expr = regexp2.Escape(expr)
	}
	flags := regexp2.None
	if !opts.CaseSensitive {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, err //nolint:wrapcheck // Pattern errors are reported as-is.
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Highlight tokenizes src with lang and returns one Line per source line, with search
// matches split out of the tokens they overlap. An invalid search pattern yields no match
// highlighting. Plain text is returned untokenized and without matches.
func Highlight(src string, lang Language, opts Options) []Line {
	sourceLines := textlines.Split(src)
	out := make([]Line, len(sourceLines))

	if !lang.Typed() {
		for idx, text := range sourceLines {
			out[idx] = Line{Number: idx + 1 + opts.LineOffset}
			if text != "" {
				out[idx].Spans = []Span{{Text: text}}
			}
		}
		return out
	}

	var matcher *regexp2.Regexp
	if opts.Term != "" {
		if re, err := CompileTerm(opts); err == nil {
			matcher = re
		}
	}

	grouped := Lines(lang.Tokenize(src), len(sourceLines))
	for idx, tokens := range grouped {
		number := idx + 1 + opts.LineOffset
		var matches []runeRange
		if matcher != nil {
			matches = findRanges(matcher, sourceLines[idx])
		}
		out[idx] = Line{
			Number: number,
			Spans:  splitSpans(tokens, matches),
			Active: opts.ActiveLine > 0 && number == opts.ActiveLine,
		}
	}
	return out
}

type runeRange struct {
	start int
	end   int
}

func findRanges(re *regexp2.Regexp, text string) []runeRange {
	var ranges []runeRange
	match, err := re.FindStringMatch(text)
	for err == nil && match != nil {
		if match.Length > 0 {
			ranges = append(ranges, runeRange{start: match.Index, end: match.Index + match.Length})
		}
		match, err = re.FindNextMatch(match)
	}
	return ranges
}

// splitSpans turns the tokens of one line into spans, cutting tokens at match boundaries.
// matches must be sorted and non-overlapping, in rune offsets of the line.
func splitSpans(tokens []Token, matches []runeRange) []Span {
	spans := make([]Span, 0, len(tokens))
	offset := 0
	next := 0

	for _, tok := range tokens {
		runes, bytes := decodeRunes(tok.Value)
		start, end := offset, offset+len(runes)

		for cur := start; cur < end; {
			for next < len(matches) && matches[next].end <= cur {
				next++
			}
			stop, inMatch := end, false
			if next < len(matches) {
				if matches[next].start <= cur {
					stop, inMatch = min(end, matches[next].end), true
				} else {
					stop = min(end, matches[next].start)
				}
			}
			spans = append(spans, Span{Text: tok.Value[bytes[cur-start]:bytes[stop-start]], Type: tok.Type, Match: inMatch})
			cur = stop
		}
		offset = end
	}
	return spans
}

// SplitMatches cuts one line of untokenized text into spans at the occurrences of term.
// An empty or invalid term yields a single unmatched span.
func SplitMatches(text, term string, caseSensitive bool) []Span {
	if text == "" {
		return nil
	}
	tokens := []Token{{Value: text, Line: 1}}
	if term == "" {
		return splitSpans(tokens, nil)
	}
	re, err := CompileTerm(Options{Term: term, CaseSensitive: caseSensitive})
	if err != nil {
		return splitSpans(tokens, nil)
	}
	return splitSpans(tokens, findRanges(re, text))
}

// Markup renders lines as escaped HTML-like markup joined with LineBreak.
func Markup(lines []Line) string {
	var builder strings.Builder
	for idx, line := range lines {
		if idx > 0 {
			builder.WriteString(LineBreak)
		}
		if line.Active {
			builder.WriteString(activeLineOpen)
		}
		for _, span := range line.Spans {
			writeSpan(&builder, span)
		}
		if line.Active {
			builder.WriteString(activeLineClose)
		}
	}
	return builder.String()
}

func writeSpan(builder *strings.Builder, span Span) {
	text := html.EscapeString(span.Text)
	switch {
	case span.Match:
		builder.WriteString(matchOpen)
		builder.WriteString(text)
		builder.WriteString(matchClose)
	case span.Type != "":
		builder.WriteString(`<span class="tok-`)
		builder.WriteString(span.Type)
		builder.WriteString(`">`)
		builder.WriteString(text)
		builder.WriteString(`</span>`)
	default:
		builder.WriteString(text)
	}
}

// SyntaxHighlight renders src in the built-in language tag with the search term and
// active line applied. An unknown tag yields escaped, line-broken text.
func SyntaxHighlight(src, tag, term string, caseSensitive bool, activeLine int) string {
	lang := Default().Lookup(tag)
	if !lang.Typed() {
		return Markup(Highlight(src, lang, Options{}))
	}
	return Markup(Highlight(src, lang, Options{
		Term:          term,
		CaseSensitive: caseSensitive,
		ActiveLine:    activeLine,
	}))
}

package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/highlight"
)

func goLang(t *testing.T) highlight.Language {
	t.Helper()

	lang, ok := highlight.Default().Find("go")
	require.True(t, ok)
	return lang
}

func TestHighlightSplitsTokensAtMatches(t *testing.T) {
	t.Parallel()

	lines := highlight.Highlight(`x := "hello world"`, goLang(t), highlight.Options{Term: "lo w"})
	require.Len(t, lines, 1)

	assert.Equal(t, []highlight.Span{
		{Text: "x", Type: highlight.TypeIdentifier},
		{Text: " "},
		{Text: ":=", Type: highlight.TypeOperator},
		{Text: " "},
		{Text: `"hel`, Type: highlight.TypeString},
		{Text: "lo w", Type: highlight.TypeString, Match: true},
		{Text: `orld"`, Type: highlight.TypeString},
	}, lines[0].Spans)
	assert.Equal(t, `x := "hello world"`, lines[0].Text())
}

func TestHighlightKeepsInvalidUTF8(t *testing.T) {
	t.Parallel()

	src := "x := \"caf\xe9 ol\xe9\"\ny := 1\n"
	lines := highlight.Highlight(src, goLang(t), highlight.Options{Term: "ol"})
	require.Len(t, lines, 3)

	assert.Equal(t, "x := \"caf\xe9 ol\xe9\"", lines[0].Text())
	assert.Equal(t, "y := 1", lines[1].Text())
	assert.Contains(t, lines[0].Spans, highlight.Span{Text: "ol", Type: highlight.TypeString, Match: true})
}

func TestHighlightMatchAcrossTokens(t *testing.T) {
	t.Parallel()

	lines := highlight.Highlight("foo.bar", goLang(t), highlight.Options{Term: "O.B"})
	require.Len(t, lines, 1)

	assert.Equal(t, []highlight.Span{
		{Text: "f", Type: highlight.TypeIdentifier},
		{Text: "oo", Type: highlight.TypeIdentifier, Match: true},
		{Text: ".", Type: highlight.TypePunctuation, Match: true},
		{Text: "b", Type: highlight.TypeIdentifier, Match: true},
		{Text: "ar", Type: highlight.TypeIdentifier},
	}, lines[0].Spans)
}

func countMatches(lines []highlight.Line) int {
	count := 0
	for _, line := range lines {
		for _, span := range line.Spans {
			if span.Match {
				count++
			}
		}
	}
	return count
}

func TestHighlightSearchOptions(t *testing.T) {
	t.Parallel()

	lang := goLang(t)
	src := "foo Foo\nbar"

	tests := []struct {
		name     string
		opts     highlight.Options
		expected int
	}{
		{"case insensitive", highlight.Options{Term: "foo"}, 2},
		{"case sensitive", highlight.Options{Term: "Foo", CaseSensitive: true}, 1},
		{"literal metacharacters", highlight.Options{Term: "f.o"}, 0},
		{"pattern", highlight.Options{Term: "b.r", Pattern: true}, 1},
		{"invalid pattern degrades", highlight.Options{Term: "(", Pattern: true}, 0},
		{"empty term", highlight.Options{}, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, countMatches(highlight.Highlight(src, lang, testCase.opts)))
		})
	}
}

func TestHighlightActiveLineAndOffset(t *testing.T) {
	t.Parallel()

	lines := highlight.Highlight("a\nb", goLang(t), highlight.Options{LineOffset: 10, ActiveLine: 12})
	require.Len(t, lines, 2)

	assert.Equal(t, 11, lines[0].Number)
	assert.False(t, lines[0].Active)
	assert.Equal(t, 12, lines[1].Number)
	assert.True(t, lines[1].Active)
}

func TestHighlightPlainText(t *testing.T) {
	t.Parallel()

	lines := highlight.Highlight("foo\n\nbar", highlight.PlainText, highlight.Options{Term: "foo", ActiveLine: 1})
	require.Len(t, lines, 3)

	assert.Equal(t, []highlight.Span{{Text: "foo"}}, lines[0].Spans)
	assert.False(t, lines[0].Active)
	assert.Empty(t, lines[1].Spans)
	assert.Equal(t, 0, countMatches(lines))
}

func TestSyntaxHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		lang     string
		term     string
		active   int
		expected string
	}{
		{
			name:   "escaped tokens with active line",
			src:    "a<b",
			lang:   "go",
			active: 1,
			expected: `<div class="active-line"><span class="tok-identifier">a</span>` +
				`<span class="tok-operator">&lt;</span><span class="tok-identifier">b</span></div>`,
		},
		{
			name: "search match",
			src:  "x\nvar y",
			lang: "go",
			term: "Y",
			expected: `<span class="tok-identifier">x</span><br/>` +
				`<span class="tok-keyword">var</span> <mark class="search-match">y</mark>`,
		},
		{
			name:     "unknown language",
			src:      "<x>\ny",
			lang:     "nope",
			term:     "x",
			active:   1,
			expected: "&lt;x&gt;<br/>y",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := highlight.SyntaxHighlight(testCase.src, testCase.lang, testCase.term, false, testCase.active)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestSplitMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		text          string
		term          string
		caseSensitive bool
		want          []highlight.Span
	}{
		{name: "empty text", text: "", term: "a", want: nil},
		{name: "no term", text: "abc", want: []highlight.Span{{Text: "abc"}}},
		{
			name: "insensitive",
			text: "Foo foo",
			term: "foo",
			want: []highlight.Span{{Text: "Foo", Match: true}, {Text: " "}, {Text: "foo", Match: true}},
		},
		{
			name:          "sensitive",
			text:          "Foo foo",
			term:          "foo",
			caseSensitive: true,
			want:          []highlight.Span{{Text: "Foo "}, {Text: "foo", Match: true}},
		},
		{
			name: "literal metacharacters",
			text: "a.b axb",
			term: "a.b",
			want: []highlight.Span{{Text: "a.b", Match: true}, {Text: " axb"}},
		},
		{
			name: "invalid byte kept",
			text: "caf\xe9 cafe",
			term: "cafe",
			want: []highlight.Span{{Text: "caf\xe9 "}, {Text: "cafe", Match: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, highlight.SplitMatches(tt.text, tt.term, tt.caseSensitive))
		})
	}
}

package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/highlight"
)

func findToken(tokens []highlight.Token, value string) (highlight.Token, bool) {
	for _, tok := range tokens {
		if tok.Value == value {
			return tok, true
		}
	}
	return highlight.Token{}, false
}

func TestTokenizeGo(t *testing.T) {
	t.Parallel()

	src := "func main() {\n\treturn 1 // done\n}"
	tokens := highlight.Tokenize(src, "go")
	require.Equal(t, src, highlight.Text(tokens))

	tests := []struct {
		value string
		typ   string
		line  int
	}{
		{"func", highlight.TypeKeyword, 1},
		{"main", highlight.TypeFunction, 1},
		{"{", highlight.TypePunctuation, 1},
		{"return", highlight.TypeKeyword, 2},
		{"1", highlight.TypeNumber, 2},
		{"// done", highlight.TypeComment, 2},
		{"}", highlight.TypePunctuation, 3},
	}

	for _, testCase := range tests {
		tok, ok := findToken(tokens, testCase.value)
		require.True(t, ok, "token %q", testCase.value)
		assert.Equal(t, testCase.typ, tok.Type, "token %q", testCase.value)
		assert.Equal(t, testCase.line, tok.Line, "token %q", testCase.value)
	}

	filler, ok := findToken(tokens, "\t")
	require.True(t, ok)
	assert.False(t, filler.Typed())
	assert.Equal(t, 2, filler.Line)
}

func TestTokenizeKeywordsIgnoreCase(t *testing.T) {
	t.Parallel()

	tok, ok := findToken(highlight.Tokenize("FUNC x", "go"), "FUNC")
	require.True(t, ok)
	assert.Equal(t, highlight.TypeKeyword, tok.Type)
}

func TestTokenizeSplitsMultilineMatches(t *testing.T) {
	t.Parallel()

	tokens := highlight.Tokenize("/* a\nb */x", "go")

	assert.Equal(t, []highlight.Token{
		{Value: "/* a", Type: highlight.TypeComment, Line: 1},
		{Value: "\n", Line: 1},
		{Value: "b */", Type: highlight.TypeComment, Line: 2},
		{Value: "x", Type: highlight.TypeIdentifier, Line: 2},
	}, tokens)
}

func TestTokenizePlainText(t *testing.T) {
	t.Parallel()

	tokens := highlight.Tokenize("a b\n\nc", "unknown")

	assert.Equal(t, []highlight.Token{
		{Value: "a b", Line: 1},
		{Value: "\n", Line: 1},
		{Value: "", Line: 2},
		{Value: "\n", Line: 2},
		{Value: "c", Line: 3},
	}, tokens)
	for _, tok := range tokens {
		assert.False(t, tok.Typed())
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tokens := highlight.Tokenize("a = 1\n\nb", "python")
	grouped := highlight.Lines(tokens, 3)

	require.Len(t, grouped, 3)
	assert.Equal(t, "a = 1", highlight.Text(grouped[0]))
	assert.Empty(t, grouped[1])
	assert.Equal(t, "b", highlight.Text(grouped[2]))
}

func TestTokenizeKeepsInvalidUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		tag  string
	}{
		{name: "latin-1 byte in string", src: "x := \"caf\xe9\"\n", tag: "go"},
		{name: "truncated sequence before keyword", src: "\xe2\x82 func f() {}\n", tag: "go"},
		{name: "stray continuation byte in comment", src: "# \x80\x80\ndef f(): pass\n", tag: "python"},
		{name: "plain text", src: "a\xffb\n", tag: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := highlight.Tokenize(tt.src, tt.tag)
			assert.Equal(t, tt.src, highlight.Text(tokens))
		})
	}

	tokens := highlight.Tokenize("\xe2\x82 func f() {}\n", "go")
	tok, ok := findToken(tokens, "func")
	require.True(t, ok)
	assert.Equal(t, highlight.TypeKeyword, tok.Type)
}

func TestTokenizeReconstructsSource(t *testing.T) {
	t.Parallel()

	samples := map[string]string{
		"go":         "package main\n\nimport \"fmt\"\n\n/* multi\n   line */\nfunc main() {\n\ts := `raw\nstring`\n\tfmt.Println(s, 0x1F, 3.14e2)\n}\n",
		"javascript": "const re = /ab+c/gi;\nlet s = `t ${x}\n`; // c\nif (a !== b) { console.log('q\\'s') }\n",
		"typescript": "interface A { x: number }\nexport type B = keyof A;\n",
		"python":     "@decorator\ndef f(x):\n    \"\"\"doc\n    string\"\"\"\n    return x + 1  # inc\n",
		"json":       "{\n  \"a\": [1, -2.5e3, true, null],\n  \"b\": \"c\"\n}\n",
		"yaml":       "---\nkey: value # c\nlist:\n  - &anchor 1\n  - *anchor\nflag: yes\n",
		"css":        "a:hover, .b #c {\n  color: #fff;\n  margin: 0 10px !important;\n}\n",
		"html":       "<!doctype html>\n<!-- c\n -->\n<div class=\"x\">&amp; text</div>\n",
		"markdown":   "# Title\n\nSome *em* and **strong** and `code`.\n\n```go\nx := 1\n```\n\n- item\n> quote\n[link](http://x)\n",
		"shell":      "#!/bin/sh\nif [ \"$1\" = x ]; then\n  echo ${HOME} $#  # c\nfi\n",
		"sql":        "SELECT a, count(*) FROM t -- c\nWHERE b = 'it''s' /* x\n */;\n",
		"rust":       "#[derive(Debug)]\nfn f<'a>(x: &'a str) -> String {\n    println!(\"{}\", 'c');\n    x != y\n}\n",
		"java":       "@Override\npublic int f() { return 0; }\n",
		"c":          "#include <stdio.h>\nint main(void) { printf(\"%d\\n\", 1); }\n",
		"cpp":        "#pragma once\nnamespace n { std::vector<int> v; }\n",
		"unknown":    "just\ntext\n",
	}

	for tag, src := range samples {
		t.Run(tag, func(t *testing.T) {
			t.Parallel()

			tokens := highlight.Tokenize(src, tag)
			assert.Equal(t, src, highlight.Text(tokens))

			line := 1
			for _, tok := range tokens {
				assert.NotContains(t, tok.Value[:max(0, len(tok.Value)-1)], "\n")
				assert.Equal(t, line, tok.Line, "token %q", tok.Value)
				if tok.IsNewline() {
					line++
				}
			}
		})
	}
}

package textlines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lf untouched", "a\nb\n", "a\nb\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
		{"empty", "", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, textlines.Normalize(testCase.input))
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"one line",
		"trailing\n",
		"a\n\nb\n\n",
		"\n\n\n",
	}

	for _, input := range inputs {
		assert.Equal(t, input, textlines.Join(textlines.Split(input)), "input %q", input)
	}

	assert.Equal(t, []string{"a", "b", ""}, textlines.Split("a\nb\n"))
}

func TestIndentWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		tabWidth int
		expected int
	}{
		{"no indent", "x", 4, 0},
		{"spaces", "    x", 4, 4},
		{"tab", "\tx", 4, 4},
		{"space then tab aligns to stop", "  \tx", 4, 4},
		{"two tabs", "\t\tx", 4, 8},
		{"tab width 8", "\tx", 8, 8},
		{"zero tab width defaults", "\tx", 0, 4},
		{"blank line counts all whitespace", "   ", 4, 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, textlines.IndentWidth(testCase.line, testCase.tabWidth))
		})
	}
}

func TestLeadingWhitespaceAndBlank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "  \t", textlines.LeadingWhitespace("  \tfoo"))
	assert.Empty(t, textlines.LeadingWhitespace("foo"))
	assert.True(t, textlines.IsBlank(" \t "))
	assert.True(t, textlines.IsBlank(""))
	assert.False(t, textlines.IsBlank("  x"))
}

func TestOutdent(t *testing.T) {
	t.Parallel()

	line, removed := textlines.Outdent("      x", 4)
	assert.Equal(t, "  x", line)
	assert.Equal(t, 4, removed)

	line, removed = textlines.Outdent("  x", 4)
	assert.Equal(t, "x", line)
	assert.Equal(t, 2, removed)

	line, removed = textlines.Outdent("\t\tx", 4)
	assert.Equal(t, "\tx", line)
	assert.Equal(t, 1, removed)

	line, removed = textlines.Outdent("x", 4)
	assert.Equal(t, "x", line)
	assert.Equal(t, 0, removed)
}

package textlines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/pkg/textlines"
)

func TestIndex_Position(t *testing.T) {
	t.Parallel()

	index := textlines.NewIndex("ab\ncde\n\nf")

	tests := []struct {
		offset   int
		expected textlines.Position
	}{
		{0, textlines.Position{Line: 0, Column: 0}},
		{2, textlines.Position{Line: 0, Column: 2}},
		{3, textlines.Position{Line: 1, Column: 0}},
		{6, textlines.Position{Line: 1, Column: 3}},
		{7, textlines.Position{Line: 2, Column: 0}},
		{8, textlines.Position{Line: 3, Column: 0}},
		{9, textlines.Position{Line: 3, Column: 1}},
		{100, textlines.Position{Line: 3, Column: 1}},
		{-5, textlines.Position{Line: 0, Column: 0}},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, index.Position(testCase.offset), "offset %d", testCase.offset)
	}
	assert.Equal(t, 4, index.LineCount())
}

func TestIndex_Offset(t *testing.T) {
	t.Parallel()

	index := textlines.NewIndex("ab\ncde\n")

	assert.Equal(t, 0, index.Offset(textlines.Position{Line: 0, Column: 0}))
	assert.Equal(t, 4, index.Offset(textlines.Position{Line: 1, Column: 1}))
	assert.Equal(t, 6, index.Offset(textlines.Position{Line: 1, Column: 99}), "column clamps to line end")
	assert.Equal(t, 7, index.Offset(textlines.Position{Line: 2, Column: 0}))
	assert.Equal(t, 7, index.Offset(textlines.Position{Line: 9, Column: 0}))
	assert.Equal(t, 3, index.LineStart(1))
	assert.Equal(t, 6, index.LineEnd(1))
	assert.Equal(t, 7, index.LineEnd(2))
}

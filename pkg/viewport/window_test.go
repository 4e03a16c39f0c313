package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/pkg/viewport"
)

func TestLineHeightFor(t *testing.T) {
	t.Parallel()

	table := viewport.DefaultBreakpoints()

	tests := []struct {
		name     string
		width    int
		table    []viewport.Breakpoint
		expected int
	}{
		{"narrow", 320, table, 18},
		{"tablet", 768, table, 20},
		{"desktop", 1920, table, 22},
		{"empty table", 1000, nil, viewport.DefaultLineHeight},
		{"unsorted table", 900, []viewport.Breakpoint{
			{MinWidth: 1000, LineHeight: 30}, {MinWidth: 0, LineHeight: 10}, {MinWidth: 800, LineHeight: 16},
		}, 16},
		{"below first breakpoint", 100, []viewport.Breakpoint{{MinWidth: 500, LineHeight: 30}}, viewport.DefaultLineHeight},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, viewport.LineHeightFor(testCase.width, testCase.table))
		})
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		container int
		height    int
		scrollTop int
		buffer    int
		expected  viewport.Window
	}{
		{"top of file", 1000, 400, 20, 0, 5, viewport.Window{Start: 0, End: 30}},
		{"scrolled", 1000, 400, 20, 2000, 5, viewport.Window{Start: 95, End: 125}},
		{"partial line rounds up", 1000, 410, 20, 2000, 5, viewport.Window{Start: 95, End: 126}},
		{"end of file", 100, 400, 20, 1600, 5, viewport.Window{Start: 75, End: 100}},
		{"short file", 3, 400, 20, 0, 5, viewport.Window{Start: 0, End: 3}},
		{"empty", 0, 400, 20, 0, 5, viewport.Window{}},
		{"zero line height", 10, 4, 0, 0, 0, viewport.Window{Start: 0, End: 4}},
		{"past the end", 10, 100, 20, 10000, 5, viewport.Window{Start: 10, End: 10}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := viewport.Compute(testCase.total, testCase.container, testCase.height, testCase.scrollTop, testCase.buffer)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()

	window := viewport.Window{Start: 2, End: 5}
	assert.Equal(t, 3, window.Len())
	assert.True(t, window.Contains(2))
	assert.False(t, window.Contains(5))
	assert.Zero(t, viewport.Window{Start: 4, End: 1}.Len())
}

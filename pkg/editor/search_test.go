package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/editor"
)

func TestSearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	doc := newDoc("first line\nthis is an error\nlast line")
	session := doc.Search("ERROR", false)

	require.Len(t, session.Matches, 1)
	assert.Equal(t, 2, session.Matches[0].Line)
	assert.Equal(t, 0, session.Index)
	assert.Equal(t, 2, doc.ActiveLine)
	assert.Equal(t, "1/1", doc.SearchStatus())
}

func TestSearchNavigationWraps(t *testing.T) {
	t.Parallel()

	doc := newDoc("x\n\nx\ny\nx x\n")
	doc.Search("x", true)
	require.Equal(t, 3, doc.Session.Len())

	match, ok := doc.NextMatch()
	require.True(t, ok)
	assert.Equal(t, 3, match.Line)

	match, _ = doc.NextMatch()
	assert.Equal(t, 5, match.Line)

	match, _ = doc.NextMatch()
	assert.Equal(t, 1, match.Line)
	assert.Equal(t, 1, doc.ActiveLine)

	match, _ = doc.PreviousMatch()
	assert.Equal(t, 5, match.Line)
	assert.Equal(t, "3/3", doc.SearchStatus())

	doc.ClearSearch()
	_, ok = doc.NextMatch()
	assert.False(t, ok)
	assert.Equal(t, "0/0", doc.SearchStatus())
}

func TestReplaceCurrentLine(t *testing.T) {
	t.Parallel()

	doc := newDoc("foo foo\nbar\nFOO\n")
	doc.Search("foo", false)
	doc.NextMatch()

	count, err := doc.Replace("baz")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "foo foo\nbar\nbaz\n", doc.FullCode)
	require.Equal(t, 1, doc.Session.Len())
	assert.Equal(t, 0, doc.Session.Index)
	assert.Equal(t, 1, doc.ActiveLine)

	count, err = doc.Replace("baz")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "every occurrence on the line is replaced")
	assert.Equal(t, "baz baz\nbar\nbaz\n", doc.FullCode)
	assert.Zero(t, doc.Session.Len())
	assert.Equal(t, -1, doc.Session.Index)

	_, err = doc.Replace("baz")
	require.ErrorIs(t, err, editor.ErrNoMatch)

	undo, _ := doc.History.Depths()
	assert.Equal(t, 2, undo)
}

func TestReplaceWithoutSearch(t *testing.T) {
	t.Parallel()

	doc := newDoc("a\n")
	_, err := doc.Replace("b")
	require.ErrorIs(t, err, editor.ErrNoMatch)
	_, err = doc.ReplaceAll("b")
	require.ErrorIs(t, err, editor.ErrNoMatch)
}

func TestReplaceAllCaseSensitive(t *testing.T) {
	t.Parallel()

	doc := newDoc("var x = 1;\nvar y = 2;\n")
	doc.Search("var ", true)

	count, err := doc.ReplaceAll("let ")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "let x = 1;\nlet y = 2;\n", doc.FullCode)
	assert.Zero(t, doc.Session.Len())
	assert.Empty(t, doc.Search("var ", true).Matches)

	undo, _ := doc.History.Depths()
	assert.Equal(t, 1, undo, "replace all is one undo step")

	count, err = doc.ReplaceAll("let ")
	require.NoError(t, err)
	assert.Zero(t, count)
	undo, _ = doc.History.Depths()
	assert.Equal(t, 1, undo)
}

func TestReplaceInsideCollapsedBlockKeepsCollapse(t *testing.T) {
	t.Parallel()

	doc := newDoc("fn {\n  old()\n}\n")
	_, err := doc.ToggleCollapse(0)
	require.NoError(t, err)

	doc.Search("old", true)
	_, err = doc.Replace("new")
	require.NoError(t, err)
	assert.Equal(t, "fn {\n  new()\n}\n", doc.FullCode)
	assert.True(t, doc.Collapsed.Has(0))
	assert.Equal(t, "fn {\n    ...\n}\n", doc.ViewText())
}

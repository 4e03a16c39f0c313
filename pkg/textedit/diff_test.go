package textedit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/textedit"
)

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, textedit.GenerateDiff("f.txt", "", ""))
	assert.Nil(t, textedit.GenerateDiff("f.txt", "a\nb\n", "a\nb\n"))
	assert.Nil(t, textedit.GenerateDiff("f.txt", "a\nb", "a\nb\n"))

	var diff *textedit.Diff
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
	assert.Empty(t, diff.FullString())
}

func TestGenerateDiffSingleChange(t *testing.T) {
	t.Parallel()

	diff := textedit.GenerateDiff("/src/f.txt", "a\nb\nc\n", "a\nB\nc\n")
	require.NotNil(t, diff)

	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	assert.Equal(t, "--- a/src/f.txt\n+++ b/src/f.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n", diff.String())
	assert.Equal(t, "diff --git a/src/f.txt b/src/f.txt", diff.Header())
	assert.True(t, strings.HasPrefix(diff.FullString(), diff.Header()+"\n--- a/src/f.txt"))
}

func TestGenerateDiffInsertIntoEmpty(t *testing.T) {
	t.Parallel()

	diff := textedit.GenerateDiff("f", "", "x\n")
	require.NotNil(t, diff)
	assert.Equal(t, "--- a/f\n+++ b/f\n@@ -0,0 +1,1 @@\n+x\n", diff.String())
}

func TestGenerateDiffSeparateHunks(t *testing.T) {
	t.Parallel()

	var orig, mod []string
	for i := range 20 {
		line := strings.Repeat("x", i+1)
		orig = append(orig, line)
		mod = append(mod, line)
	}
	mod[1] = "changed"
	mod[18] = "changed too"

	diff := textedit.GenerateDiff("f", strings.Join(orig, "\n"), strings.Join(mod, "\n"))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)

	assert.Equal(t, 1, diff.Hunks[0].OriginalStart)
	assert.Equal(t, 5, diff.Hunks[0].OriginalCount)
	assert.Equal(t, 16, diff.Hunks[1].OriginalStart)
	assert.Equal(t, 5, diff.Hunks[1].OriginalCount)
	assert.Equal(t, 2, diff.Additions)
	assert.Equal(t, 2, diff.Deletions)
}

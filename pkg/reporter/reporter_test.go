package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/reporter"
	"github.com/yaklabco/foldedit/pkg/runner"
	"github.com/yaklabco/foldedit/pkg/textedit"
)

const workDir = "/work"

func newReporter(t *testing.T, format reporter.Format) (reporter.Reporter, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		ErrorWriter: &buf,
		Format:      format,
		Color:       "never",
		Term:        "foo",
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	require.NoError(t, err)
	return rep, &buf
}

func searchResult() *runner.SearchResult {
	return &runner.SearchResult{
		Files: []runner.FileMatches{
			{Path: workDir + "/a.go", Matches: []runner.LineMatch{{Line: 2, Text: "x := foo"}, {Line: 10, Text: "foo(foo)"}}, Occurrences: 3},
			{Path: workDir + "/pkg/b.go", Matches: []runner.LineMatch{{Line: 1, Text: "// foo"}}, Occurrences: 1},
		},
		Skipped: []runner.FileError{{Path: workDir + "/c.bin", Err: fsutil.ErrBinary}},
		Stats: runner.Stats{
			FilesDiscovered: 3, FilesScanned: 2, FilesTouched: 2, FilesSkipped: 1, Occurrences: 4,
		},
	}
}

func replaceResult(dryRun bool) *runner.ReplaceResult {
	return &runner.ReplaceResult{
		Files: []runner.FileChange{
			{
				Path:        workDir + "/a.go",
				Occurrences: 2,
				Diff:        textedit.GenerateDiff(workDir+"/a.go", "var foo\nkeep\n", "var bar\nkeep\n"),
				Written:     !dryRun,
			},
			{
				Path:        workDir + "/b.go",
				Occurrences: 1,
				Diff:        textedit.GenerateDiff(workDir+"/b.go", "foo\n", "bar\n"),
				Err:         fsutil.ErrModified,
			},
		},
		Skipped:   []runner.FileError{{Path: workDir + "/b.go", Err: fsutil.ErrModified}},
		Stats:     runner.Stats{FilesScanned: 2, FilesTouched: 2, FilesModified: 1, FilesSkipped: 1, Occurrences: 3},
		Confirmed: !dryRun,
		DryRun:    dryRun,
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "case and space", input: " JSON ", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatSummary.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatTable, reporter.FormatJSON, reporter.FormatDiff, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestTextReportSearch(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatText)
	count, err := rep.ReportSearch(context.Background(), searchResult())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	want := "a.go (3 occurrences)\n" +
		"   2: x := foo\n" +
		"  10: foo(foo)\n" +
		"\n" +
		"pkg/b.go (1 occurrence)\n" +
		"  1: // foo\n" +
		"\n" +
		"c.bin: skipped: " + fsutil.ErrBinary.Error() + "\n" +
		"4 occurrences in 2 files (2 scanned), 1 skipped\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReportReplace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dryRun bool
		want   []string
	}{
		{
			name: "written",
			want: []string{"a.go: 2 replaced", "b.go: error: " + fsutil.ErrModified.Error()},
		},
		{
			name:   "dry run",
			dryRun: true,
			want:   []string{"a.go: 2 would be replaced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, buf := newReporter(t, reporter.FormatText)
			count, err := rep.ReportReplace(context.Background(), replaceResult(tt.dryRun))
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			// b.go is listed once even though it is also in Skipped.
			assert.Equal(t, 1, strings.Count(buf.String(), "b.go"))
		})
	}
}

func TestTextReportReplaceNotConfirmed(t *testing.T) {
	t.Parallel()

	result := replaceResult(false)
	result.Files = result.Files[:1]
	result.Files[0].Written = false
	result.Skipped = nil
	result.Confirmed = false

	rep, buf := newReporter(t, reporter.FormatText)
	_, err := rep.ReportReplace(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a.go: 2 not replaced")
}

func TestJSONReportSearch(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatJSON)
	count, err := rep.ReportSearch(context.Background(), searchResult())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	var out reporter.JSONSearchOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "foo", out.Term)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "a.go", out.Files[0].Path)
	assert.Equal(t, 3, out.Files[0].Occurrences)
	assert.Equal(t, []runner.LineMatch{{Line: 1, Text: "// foo"}}, out.Files[1].Matches)
	assert.Equal(t, []reporter.JSONSkipped{{Path: "c.bin", Error: fsutil.ErrBinary.Error()}}, out.Skipped)
	assert.Equal(t, 4, out.Summary.Occurrences)
}

func TestJSONReportEmpty(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatJSON)
	_, err := rep.ReportSearch(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"files": []`)
	assert.Contains(t, buf.String(), `"skipped": []`)
}

func TestJSONReportReplace(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatJSON)
	count, err := rep.ReportReplace(context.Background(), replaceResult(false))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var out reporter.JSONReplaceOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.True(t, out.Confirmed)
	assert.False(t, out.DryRun)
	require.Len(t, out.Files, 2)
	assert.True(t, out.Files[0].Written)
	assert.Equal(t, 1, out.Files[0].Additions)
	assert.Equal(t, 1, out.Files[0].Deletions)
	assert.Contains(t, out.Files[0].Diff, "-var foo\n+var bar\n")
	assert.Equal(t, fsutil.ErrModified.Error(), out.Files[1].Error)
}

func TestDiffReportReplace(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatDiff)
	count, err := rep.ReportReplace(context.Background(), replaceResult(true))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "diff --git a/a.go b/a.go\n--- a/a.go\n+++ b/a.go\n@@ "), out)
	assert.Contains(t, out, "-var foo\n+var bar\n keep\n")
	assert.Contains(t, out, "b.go: error: ")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)\n")
	assert.Equal(t, 1, strings.Count(out, "--- a/"))
}

func TestDiffReportSearchFallsBackToText(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatDiff)
	_, err := rep.ReportSearch(context.Background(), searchResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a.go (3 occurrences)")
}

func TestTableReportSearch(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatTable)
	count, err := rep.ReportSearch(context.Background(), searchResult())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "pkg/b.go")
	assert.NotContains(t, out, workDir)
	assert.Contains(t, out, "4 occurrences in 2 files")
}

func TestTableReportNoMatches(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatTable)
	count, err := rep.ReportSearch(context.Background(), &runner.SearchResult{Stats: runner.Stats{FilesScanned: 3}})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No matches found (3 files scanned)\n", buf.String())
}

func TestSummaryReport(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatSummary)
	_, err := rep.ReportSearch(context.Background(), searchResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Files Summary")
	assert.Less(t, strings.Index(out, "a.go"), strings.Index(out, "pkg/b.go"))
	assert.Contains(t, out, "Search complete")

	rep, buf = newReporter(t, reporter.FormatSummary)
	_, err = rep.ReportReplace(context.Background(), replaceResult(false))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "written")
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "Replacement applied")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReportWriteError(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.Options{Writer: failingWriter{}, Format: reporter.FormatJSON, Color: "never"})
	require.NoError(t, err)
	_, err = rep.ReportSearch(context.Background(), searchResult())
	require.Error(t, err)
}

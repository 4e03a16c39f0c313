package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/runner"
	"github.com/yaklabco/foldedit/pkg/textedit"
)

// DiffReporter formats replacements as unified diffs in GitHub style. Searches are
// written as text.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	text   *TextReporter
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		text:   NewTextReporter(opts),
	}
}

// ReportSearch implements Reporter.
func (r *DiffReporter) ReportSearch(ctx context.Context, result *runner.SearchResult) (int, error) {
	return r.text.ReportSearch(ctx, result)
}

// ReportReplace implements Reporter.
func (r *DiffReporter) ReportReplace(_ context.Context, result *runner.ReplaceResult) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, change := range result.Files {
		if change.Err != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(change.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", change.Err)),
			)
			continue
		}
		if !change.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += change.Diff.Additions
		totalDeletions += change.Diff.Deletions
		r.writeDiff(change.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(diff *textedit.Diff) {
	path := displayPath(diff.Path, r.opts.WorkingDir)

	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	// The first two lines of String() are its own ---/+++ headers.
	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	for _, line := range lines[min(2, len(lines)):] {
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

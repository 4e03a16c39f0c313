package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportSearch implements Reporter. Matching lines are grouped by file.
func (r *TextReporter) ReportSearch(_ context.Context, result *runner.SearchResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath(file.Path, r.opts.WorkingDir), file.Occurrences))
		width := lineNumberWidth(file.Matches)
		for _, match := range file.Matches {
			fmt.Fprint(r.bw, r.styles.FormatMatchLine(match, r.opts.Term, r.opts.CaseSensitive, width))
		}
		fmt.Fprintln(r.bw)
	}
	r.writeSkipped(result.Skipped, nil)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return result.Stats.Occurrences, nil
}

// ReportReplace implements Reporter. Every changed file is listed with its state.
func (r *TextReporter) ReportReplace(_ context.Context, result *runner.ReplaceResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	listed := make(map[string]struct{}, len(result.Files))
	for _, change := range result.Files {
		listed[change.Path] = struct{}{}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(displayPath(change.Path, r.opts.WorkingDir)),
			r.changeState(change, result))
	}
	r.writeSkipped(result.Skipped, listed)

	if r.opts.ShowSummary {
		if len(result.Files) > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return changedFiles(result), nil
}

func (r *TextReporter) changeState(change runner.FileChange, result *runner.ReplaceResult) string {
	count := strconv.Itoa(change.Occurrences)
	switch {
	case change.Err != nil:
		return r.styles.Error.Render(fmt.Sprintf("error: %v", change.Err))
	case change.Written:
		return r.styles.Success.Render(count + " replaced")
	case result.DryRun:
		return r.styles.Info.Render(count + " would be replaced")
	default:
		return r.styles.Dim.Render(count + " not replaced")
	}
}

// writeSkipped lists the files that could not be processed, except those already listed.
func (r *TextReporter) writeSkipped(skipped []runner.FileError, listed map[string]struct{}) {
	for _, file := range skipped {
		if _, ok := listed[file.Path]; ok {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
			r.styles.Warning.Render(fmt.Sprintf("skipped: %v", file.Err)),
		)
	}
}

func lineNumberWidth(matches []runner.LineMatch) int {
	width := 1
	for _, match := range matches {
		width = max(width, len(strconv.Itoa(match.Line)))
	}
	return width
}

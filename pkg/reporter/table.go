package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats matches as a styled FILE/LINE/TEXT table. Replacements are
// written as text.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
	text      *TextReporter
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		text:      NewTextReporter(opts),
	}
}

// ReportSearch implements Reporter.
func (r *TableReporter) ReportSearch(_ context.Context, result *runner.SearchResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if !result.HasMatches() {
		if r.opts.ShowSummary {
			var stats runner.Stats
			if result != nil {
				stats = result.Stats
			}
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
		}
		return 0, nil
	}

	relative := *result
	relative.Files = make([]runner.FileMatches, 0, len(result.Files))
	for _, file := range result.Files {
		file.Path = displayPath(file.Path, r.opts.WorkingDir)
		relative.Files = append(relative.Files, file)
	}
	fmt.Fprint(r.bw, r.formatter.FormatMatches(&relative))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return result.Stats.Occurrences, nil
}

// ReportReplace implements Reporter.
func (r *TableReporter) ReportReplace(ctx context.Context, result *runner.ReplaceResult) (int, error) {
	return r.text.ReportReplace(ctx, result)
}

// TerminalWidth returns the width of the terminal behind writer, or a default when
// writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

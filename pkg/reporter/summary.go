package reporter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80
	fileColWidth      = 60
	numColWidth       = 11
	stateColWidth     = 8
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter formats results as a per-file occurrence table and totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

type summaryRow struct {
	path        string
	occurrences int
	state       string
}

// ReportSearch implements Reporter.
func (r *SummaryReporter) ReportSearch(_ context.Context, result *runner.SearchResult) (int, error) {
	if result == nil {
		result = &runner.SearchResult{}
	}

	rows := make([]summaryRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, summaryRow{path: displayPath(file.Path, r.opts.WorkingDir), occurrences: file.Occurrences})
	}
	r.renderFileTable(rows, false)
	fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, false))
	return result.Stats.Occurrences, nil
}

// ReportReplace implements Reporter.
func (r *SummaryReporter) ReportReplace(_ context.Context, result *runner.ReplaceResult) (int, error) {
	if result == nil {
		result = &runner.ReplaceResult{}
	}

	rows := make([]summaryRow, 0, len(result.Files))
	for _, change := range result.Files {
		state := "pending"
		switch {
		case change.Err != nil:
			state = "failed"
		case change.Written:
			state = "written"
		case result.DryRun:
			state = "dry-run"
		}
		rows = append(rows, summaryRow{
			path:        displayPath(change.Path, r.opts.WorkingDir),
			occurrences: change.Occurrences,
			state:       state,
		})
	}
	r.renderFileTable(rows, true)
	fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, true))
	return changedFiles(result), nil
}

// renderFileTable lists files by descending occurrence count.
func (r *SummaryReporter) renderFileTable(rows []summaryRow, withState bool) {
	if len(rows) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].occurrences != rows[j].occurrences {
			return rows[i].occurrences > rows[j].occurrences
		}
		return rows[i].path < rows[j].path
	})

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	header := r.styles.TableHeader.Render(padRight("File", fileColWidth)) + " " +
		r.styles.TableHeader.Render(padLeft("Occurrences", numColWidth))
	if withState {
		header += " " + r.styles.TableHeader.Render(padLeft("State", stateColWidth))
	}
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		path := row.path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		line := r.styles.FilePath.Render(padRight(path, fileColWidth)) + " " +
			padLeft(strconv.Itoa(row.occurrences), numColWidth)
		if withState {
			line += " " + r.stateStyle(row.state)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *SummaryReporter) stateStyle(state string) string {
	padded := padLeft(state, stateColWidth)
	switch state {
	case "failed":
		return r.styles.Error.Render(padded)
	case "written":
		return r.styles.Success.Render(padded)
	default:
		return r.styles.Dim.Render(padded)
	}
}

// Package reporter writes search and replace results in the supported output formats.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/foldedit/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// ReportSearch writes the matches of a search. It returns the number of
	// occurrences reported and any write error.
	ReportSearch(ctx context.Context, result *runner.SearchResult) (int, error)

	// ReportReplace writes the changes of a replacement. It returns the number of
	// files that changed (or would change on a dry run) and any write error.
	ReportReplace(ctx context.Context, result *runner.ReplaceResult) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = DefaultOptions().ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath makes path relative to workDir when that does not climb out of it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func changedFiles(result *runner.ReplaceResult) int {
	if result == nil {
		return 0
	}
	count := 0
	for _, change := range result.Files {
		if change.Err == nil {
			count++
		}
	}
	return count
}

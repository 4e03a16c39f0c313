package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/foldedit/pkg/runner"
)

// jsonVersion is the schema version of the JSON output.
const jsonVersion = "1.0.0"

// JSONSearchOutput is the top-level JSON structure of a search.
type JSONSearchOutput struct {
	Version       string               `json:"version"`
	Term          string               `json:"term"`
	CaseSensitive bool                 `json:"caseSensitive"`
	Files         []runner.FileMatches `json:"files"`
	Skipped       []JSONSkipped        `json:"skipped"`
	Summary       runner.Stats         `json:"summary"`
}

// JSONReplaceOutput is the top-level JSON structure of a replacement.
type JSONReplaceOutput struct {
	Version   string           `json:"version"`
	Term      string           `json:"term"`
	DryRun    bool             `json:"dryRun"`
	Confirmed bool             `json:"confirmed"`
	Files     []JSONFileChange `json:"files"`
	Skipped   []JSONSkipped    `json:"skipped"`
	Summary   runner.Stats     `json:"summary"`
}

// JSONFileChange represents the replacement in one file.
type JSONFileChange struct {
	Path        string `json:"path"`
	Occurrences int    `json:"occurrences"`
	Written     bool   `json:"written"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	Diff        string `json:"diff,omitempty"`
	Error       string `json:"error,omitempty"`
}

// JSONSkipped represents a file that could not be processed.
type JSONSkipped struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportSearch implements Reporter.
func (r *JSONReporter) ReportSearch(_ context.Context, result *runner.SearchResult) (int, error) {
	output := JSONSearchOutput{
		Version:       jsonVersion,
		Term:          r.opts.Term,
		CaseSensitive: r.opts.CaseSensitive,
		Files:         make([]runner.FileMatches, 0),
		Skipped:       make([]JSONSkipped, 0),
	}
	if result != nil {
		for _, file := range result.Files {
			file.Path = displayPath(file.Path, r.opts.WorkingDir)
			output.Files = append(output.Files, file)
		}
		output.Skipped = r.skipped(result.Skipped)
		output.Summary = result.Stats
	}

	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Summary.Occurrences, nil
}

// ReportReplace implements Reporter.
func (r *JSONReporter) ReportReplace(_ context.Context, result *runner.ReplaceResult) (int, error) {
	output := JSONReplaceOutput{
		Version: jsonVersion,
		Term:    r.opts.Term,
		Files:   make([]JSONFileChange, 0),
		Skipped: make([]JSONSkipped, 0),
	}
	if result != nil {
		output.DryRun = result.DryRun
		output.Confirmed = result.Confirmed
		output.Summary = result.Stats
		output.Skipped = r.skipped(result.Skipped)
		for _, change := range result.Files {
			entry := JSONFileChange{
				Path:        displayPath(change.Path, r.opts.WorkingDir),
				Occurrences: change.Occurrences,
				Written:     change.Written,
			}
			if change.Diff != nil {
				entry.Additions = change.Diff.Additions
				entry.Deletions = change.Diff.Deletions
				entry.Diff = change.Diff.String()
			}
			if change.Err != nil {
				entry.Error = change.Err.Error()
			}
			output.Files = append(output.Files, entry)
		}
	}

	if err := r.encode(output); err != nil {
		return 0, err
	}
	return changedFiles(result), nil
}

func (r *JSONReporter) skipped(files []runner.FileError) []JSONSkipped {
	out := make([]JSONSkipped, 0, len(files))
	for _, file := range files {
		out = append(out, JSONSkipped{Path: displayPath(file.Path, r.opts.WorkingDir), Error: file.Err.Error()})
	}
	return out
}

func (r *JSONReporter) encode(output any) error {
	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("flush JSON: %w", err)
	}
	return nil
}

package runner

import (
	"time"

	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/textedit"
)

// LineMatch is one matching line. Line is 1-based.
type LineMatch struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FileMatches holds the matching lines of one file.
type FileMatches struct {
	Path        string      `json:"path"`
	Matches     []LineMatch `json:"matches"`
	Occurrences int         `json:"occurrences"`
}

// FileError records a file that could not be processed.
type FileError struct {
	Path string
	Err  error
}

// Stats aggregates a run.
type Stats struct {
	// FilesDiscovered is the number of files selected by discovery.
	FilesDiscovered int `json:"files_discovered"`

	// FilesScanned is the number of files read successfully.
	FilesScanned int `json:"files_scanned"`

	// FilesTouched is the number of files containing the term.
	FilesTouched int `json:"files_touched"`

	// FilesModified is the number of files written by ReplaceAll.
	FilesModified int `json:"files_modified"`

	// FilesSkipped is the number of files that could not be read or written.
	FilesSkipped int `json:"files_skipped"`

	// Occurrences is the total number of occurrences of the term.
	Occurrences int `json:"occurrences"`
}

// Progress is reported after every batch.
type Progress struct {
	Done    int
	Total   int
	Elapsed time.Duration

	// ETA extrapolates the remaining time from the average time per file so far.
	ETA time.Duration
}

// SearchResult is the outcome of Runner.Search. Files are in path order.
type SearchResult struct {
	Files   []FileMatches
	Skipped []FileError
	Stats   Stats
}

// FileChange is the replacement planned or made for one file.
type FileChange struct {
	Path        string
	Occurrences int
	Diff        *textedit.Diff

	// Written is set once the file was saved.
	Written bool

	// Err is set when writing failed, for example with fsutil.ErrModified.
	Err error

	updated string
	snap    *fsutil.Snapshot
}

// Updated returns the new content of the file.
func (c FileChange) Updated() string {
	return c.updated
}

// ReplaceResult is the outcome of Runner.ReplaceAll. Files are in path order.
type ReplaceResult struct {
	Files   []FileChange
	Skipped []FileError
	Stats   Stats

	// Confirmed reports whether the confirmation gate allowed writing.
	Confirmed bool

	// DryRun reports that nothing was written on purpose.
	DryRun bool
}

// HasMatches reports whether any file contains the term.
func (r *SearchResult) HasMatches() bool {
	return r != nil && r.Stats.Occurrences > 0
}

// HasChanges reports whether any file would change or changed.
func (r *ReplaceResult) HasChanges() bool {
	return r != nil && len(r.Files) > 0
}

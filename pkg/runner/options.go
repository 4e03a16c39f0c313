// Package runner searches and replaces a literal term across many files. Files are
// processed in fixed-size batches; the files of one batch are read concurrently and the
// runner yields between batches so a host stays responsive.
package runner

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/foldedit/pkg/fsutil"
)

// Batch defaults.
const (
	DefaultBatchSize = 50
	DefaultYield     = 10 * time.Millisecond
)

// Options controls discovery and batch processing.
type Options struct {
	// Paths are the files or directories to process. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working directory.
	WorkingDir string

	// Extensions limits discovery to these extensions (lowercase, with leading dot).
	// Empty means every file; binary content is skipped when read.
	Extensions []string

	// IncludeGlobs keeps only files matching one of the patterns, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// IncludeVendored keeps files that go-enry classifies as vendored (node_modules/,
	// vendor/, minified bundles).
	IncludeVendored bool

	// FollowSymlinks walks directory symlinks.
	FollowSymlinks bool

	// Jobs bounds concurrent reads inside a batch. 0 or negative means runtime.NumCPU().
	Jobs int

	// BatchSize is the number of files per batch. 0 uses DefaultBatchSize.
	BatchSize int

	// Yield is the pause between batches. 0 uses DefaultYield; negative disables it.
	Yield time.Duration

	// Progress, when set, is called after every batch.
	Progress func(Progress)

	// Confirm gates ReplaceAll: nothing is written unless it returns true. A nil Confirm
	// never confirms.
	Confirm func(Stats) bool

	// DryRun makes ReplaceAll compute changes and diffs without asking or writing.
	DryRun bool

	// Backup controls backups taken before each write.
	Backup fsutil.BackupConfig

	// Logger receives debug progress; nil uses the default logger.
	Logger *log.Logger
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return o.BatchSize
}

func (o Options) yield() time.Duration {
	switch {
	case o.Yield < 0:
		return 0
	case o.Yield == 0:
		return DefaultYield
	}
	return o.Yield
}

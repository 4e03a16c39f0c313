package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/search"
	"github.com/yaklabco/foldedit/pkg/textedit"
	"github.com/yaklabco/foldedit/pkg/textlines"
)

// Runner runs cross-file searches and replacements. The zero value is ready to use.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Search finds the lines containing term in every discovered file. Files that cannot
// be read, including binary files, are recorded in Skipped and the run continues.
func (r *Runner) Search(ctx context.Context, opts Options, term string, caseSensitive bool) (*SearchResult, error) {
	if term == "" {
		return nil, search.ErrEmptyTerm
	}
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := loggerFor(opts)

	found := make([]*FileMatches, len(files))
	failed := make([]error, len(files))

	err = eachBatch(ctx, files, opts, logger, func(ctx context.Context, idx int, path string) {
		content, _, err := fsutil.ReadText(ctx, path, false)
		if err != nil {
			failed[idx] = err
			return
		}
		lines := textlines.Split(content)
		file := &FileMatches{Path: path, Occurrences: search.Count(content, term, caseSensitive)}
		for _, match := range search.Find(content, term, caseSensitive) {
			file.Matches = append(file.Matches, LineMatch{Line: match.Line, Text: lines[match.Line-1]})
		}
		found[idx] = file
	})

	result := &SearchResult{Stats: Stats{FilesDiscovered: len(files)}}
	for idx, path := range files {
		switch {
		case failed[idx] != nil:
			result.Skipped = append(result.Skipped, FileError{Path: path, Err: failed[idx]})
			result.Stats.FilesSkipped++
		case found[idx] != nil:
			result.Stats.FilesScanned++
			if len(found[idx].Matches) == 0 {
				continue
			}
			result.Files = append(result.Files, *found[idx])
			result.Stats.FilesTouched++
			result.Stats.Occurrences += found[idx].Occurrences
		}
	}

	logger.Debug("search finished",
		logging.FieldTerm, term,
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesMatched, result.Stats.FilesTouched,
		logging.FieldOccurrences, result.Stats.Occurrences)

	return result, err
}

// ReplaceAll replaces every occurrence of term with replacement across the discovered
// files. It first computes every change and the aggregate Stats. Unless opts.DryRun is
// set, opts.Confirm is then asked with those Stats and files are written only if it
// returns true. Each write is atomic, takes the configured backup, and refuses files
// modified since they were read.
//
// Cancellation is checked between files; a cancelled run may have written some files.
func (r *Runner) ReplaceAll(
	ctx context.Context,
	opts Options,
	term, replacement string,
	caseSensitive bool,
) (*ReplaceResult, error) {
	replacer, err := search.NewReplacer(term, replacement, caseSensitive)
	if err != nil {
		return nil, err
	}
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := loggerFor(opts)

	planned := make([]*FileChange, len(files))
	failed := make([]error, len(files))
	scanned := make([]bool, len(files))

	err = eachBatch(ctx, files, opts, logger, func(ctx context.Context, idx int, path string) {
		content, snap, err := fsutil.ReadText(ctx, path, false)
		if err != nil {
			failed[idx] = err
			return
		}
		scanned[idx] = true
		updated, count, err := replacer.Replace(content)
		if err != nil {
			failed[idx] = err
			return
		}
		if count == 0 {
			return
		}
		planned[idx] = &FileChange{
			Path:        path,
			Occurrences: count,
			Diff:        textedit.GenerateDiff(path, content, updated),
			updated:     updated,
			snap:        snap,
		}
	})

	result := &ReplaceResult{Stats: Stats{FilesDiscovered: len(files)}, DryRun: opts.DryRun}
	for idx, path := range files {
		if failed[idx] != nil {
			result.Skipped = append(result.Skipped, FileError{Path: path, Err: failed[idx]})
			result.Stats.FilesSkipped++
		}
		if scanned[idx] {
			result.Stats.FilesScanned++
		}
		if planned[idx] != nil {
			result.Files = append(result.Files, *planned[idx])
			result.Stats.FilesTouched++
			result.Stats.Occurrences += planned[idx].Occurrences
		}
	}
	if err != nil {
		return result, err
	}

	if opts.DryRun || len(result.Files) == 0 {
		return result, nil
	}
	if opts.Confirm == nil || !opts.Confirm(result.Stats) {
		logger.Debug("replace not confirmed", logging.FieldFilesMatched, result.Stats.FilesTouched)
		return result, nil
	}
	result.Confirmed = true

	err = r.write(ctx, result, opts, logger)

	logger.Debug("replace finished",
		logging.FieldTerm, term,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldOccurrences, result.Stats.Occurrences)
	return result, err
}

// write saves every planned change, in batches.
func (r *Runner) write(ctx context.Context, result *ReplaceResult, opts Options, logger *log.Logger) error {
	paths := make([]string, len(result.Files))
	for idx, change := range result.Files {
		paths[idx] = change.Path
	}

	errs := make([]error, len(paths))
	err := eachBatch(ctx, paths, opts, logger, func(ctx context.Context, idx int, _ string) {
		change := &result.Files[idx]
		if _, err := fsutil.Save(ctx, change.Path, change.snap, change.updated, opts.Backup); err != nil {
			errs[idx] = err
			return
		}
		change.Written = true
	})

	for idx := range result.Files {
		change := &result.Files[idx]
		switch {
		case errs[idx] != nil:
			change.Err = errs[idx]
			result.Skipped = append(result.Skipped, FileError{Path: change.Path, Err: errs[idx]})
			result.Stats.FilesSkipped++
		case change.Written:
			result.Stats.FilesModified++
		}
	}
	return err
}

// eachBatch runs fn for every path. Paths are split into batches of opts.BatchSize;
// inside a batch up to opts.Jobs paths run concurrently. Between batches progress is
// reported and the runner pauses for opts.Yield. fn records its own failures; only
// cancellation stops the run.
func eachBatch(
	ctx context.Context,
	paths []string,
	opts Options,
	logger *log.Logger,
	fn func(ctx context.Context, idx int, path string),
) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	size := opts.batchSize()
	start := time.Now()

	for lo := 0; lo < len(paths); lo += size {
		hi := min(lo+size, len(paths))

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(jobs)
		for idx := lo; idx < hi; idx++ {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				fn(groupCtx, idx, paths[idx])
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("batch cancelled: %w", err)
		}

		progress := newProgress(hi, len(paths), time.Since(start))
		logger.Debug("batch done",
			logging.FieldBatch, lo/size+1,
			logging.FieldFiles, hi,
			"total", len(paths))
		if opts.Progress != nil {
			opts.Progress(progress)
		}

		if hi < len(paths) {
			if err := pause(ctx, opts.yield()); err != nil {
				return err
			}
		}
	}
	return nil
}

func newProgress(done, total int, elapsed time.Duration) Progress {
	progress := Progress{Done: done, Total: total, Elapsed: elapsed}
	if done > 0 && done < total {
		progress.ETA = elapsed / time.Duration(done) * time.Duration(total-done)
	}
	return progress
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("run cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logging.Default()
}

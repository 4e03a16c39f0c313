package config

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/fold"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/runner"
	"github.com/yaklabco/foldedit/pkg/viewport"
)

// FoldOptions returns the indentation options of the fold engine.
func (c *Config) FoldOptions() fold.Options {
	return fold.Options{TabWidth: c.TabWidth, IndentWidth: c.IndentWidth}
}

// EditorOptions returns the options of documents opened under this configuration.
func (c *Config) EditorOptions(logger *log.Logger) editor.Options {
	return editor.Options{
		Fold:         c.FoldOptions(),
		HistoryDepth: c.HistoryDepth,
		Logger:       logger,
	}
}

// Breakpoints returns the responsive line height table of the viewport.
func (c *Config) Breakpoints() []viewport.Breakpoint {
	table := make([]viewport.Breakpoint, 0, len(c.LineHeights))
	for _, row := range c.LineHeights {
		table = append(table, viewport.Breakpoint{MinWidth: row.MinWidth, LineHeight: row.LineHeight})
	}
	return table
}

// BackupConfig returns the backup settings used when files are overwritten.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	mode := fsutil.BackupMode(c.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{Enabled: c.BackupsEnabled(), Mode: mode}
}

// RunnerOptions returns the cross-file runner options for paths.
func (c *Config) RunnerOptions(paths []string, logger *log.Logger) runner.Options {
	return runner.Options{
		Paths:        append([]string(nil), paths...),
		Extensions:   append([]string(nil), c.Extensions...),
		ExcludeGlobs: append([]string(nil), c.Ignore...),
		Jobs:         c.Jobs,
		BatchSize:    c.Batch.Size,
		Yield:        c.Batch.Yield,
		DryRun:       c.DryRun,
		Backup:       c.BackupConfig(),
		Logger:       logger,
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/config"
	"github.com/yaklabco/foldedit/pkg/reporter"
	"github.com/yaklabco/foldedit/pkg/runner"
	"github.com/yaklabco/foldedit/pkg/search"
)

// batchFlags are the file selection flags shared by search and replace.
type batchFlags struct {
	format          string
	caseSensitive   bool
	ignore          []string
	include         []string
	extensions      []string
	jobs            int
	includeVendored bool
	followSymlinks  bool
	noSummary       bool
	compact         bool
}

func addBatchFlags(cmd *cobra.Command, flags *batchFlags, formats string) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+formats)
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "match the term case-sensitively")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process files matching these globs")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only process these extensions, e.g. .go,.py")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel readers per batch (0 = auto)")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "process vendored and generated files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// overrides returns the config values set by batch flags.
func (f *batchFlags) overrides(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{Jobs: f.jobs, Format: f.format}
	if cmd.Flags().Changed("case-sensitive") {
		cfg.Search.CaseSensitive = config.Bool(f.caseSensitive)
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = normalizeExtensions(f.extensions)
	}
	return cfg
}

// runnerOptions builds the runner options for paths.
func (f *batchFlags) runnerOptions(set *settings, paths []string) runner.Options {
	opts := set.cfg.RunnerOptions(paths, set.logger)
	opts.WorkingDir = set.workDir
	opts.IncludeGlobs = f.include
	opts.IncludeVendored = f.includeVendored
	opts.FollowSymlinks = f.followSymlinks
	opts.Extensions = normalizeExtensions(opts.Extensions)
	opts.Progress = func(progress runner.Progress) {
		set.logger.Debug("batch done",
			logging.FieldFilesScanned, progress.Done,
			logging.FieldFiles, progress.Total,
			"eta", progress.ETA)
	}
	return opts
}

// reporter builds the reporter for the resolved format.
func (f *batchFlags) reporter(cmd *cobra.Command, set *settings, term string) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(set.cfg.Format)
	if err != nil {
		return nil, usageError(err)
	}
	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         set.cfg.Color,
		Term:          term,
		CaseSensitive: set.cfg.CaseSensitive(),
		ShowSummary:   !f.noSummary,
		Compact:       f.compact,
		WorkingDir:    set.workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// normalizeExtensions lowercases extensions and adds the leading dot.
func normalizeExtensions(exts []string) []string {
	if exts == nil {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, strings.ToLower(ext))
	}
	return out
}

func newSearchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "search TERM [paths...]",
		Short: "Search files for a term",
		Long: `Search every file under the given paths for a literal term and list the
matching lines. Files are read in batches; binary and unreadable files are skipped
and reported. Exits with status 1 when anything matched.

Examples:
  foldedit search TODO
  foldedit search "func main" cmd/ --ext .go
  foldedit search Config --case-sensitive --format json`,
		Args: argsUsage(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1:], flags)
		},
	}

	addBatchFlags(cmd, flags, "text, table, json, summary")
	return cmd
}

func runSearch(cmd *cobra.Command, term string, paths []string, flags *batchFlags) error {
	if term == "" {
		return usageError(search.ErrEmptyTerm)
	}
	set, err := loadSettings(cmd, flags.overrides(cmd))
	if err != nil {
		return err
	}
	rep, err := flags.reporter(cmd, set, term)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	result, err := runner.New().Search(ctx, flags.runnerOptions(set, paths), term, set.cfg.CaseSensitive())
	if result == nil {
		return ioError(err)
	}
	if _, reportErr := rep.ReportSearch(ctx, result); reportErr != nil {
		return ioError(fmt.Errorf("report results: %w", reportErr))
	}
	if err != nil {
		return ioError(err)
	}

	if result.HasMatches() {
		return ErrMatchesFound
	}
	return nil
}

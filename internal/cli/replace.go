package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/runner"
	"github.com/yaklabco/foldedit/pkg/search"
)

// errNotWritten reports files that failed to save during a replace.
var errNotWritten = errors.New("files could not be written")

type replaceFlags struct {
	batchFlags
	yes    bool
	dryRun bool
}

func newReplaceCommand() *cobra.Command {
	flags := &replaceFlags{}

	cmd := &cobra.Command{
		Use:   "replace TERM REPLACEMENT [paths...]",
		Short: "Replace a term across files",
		Long: `Replace every occurrence of a literal term across the files under the given
paths. All changes are computed first and summarized; nothing is written until the
replacement is confirmed, either at the prompt or with --yes. Each file is written
atomically after a backup, and files changed on disk since they were read are
skipped. Exits with status 1 when changes were computed but not written.

Examples:
  foldedit replace oldName newName --dry-run --format diff
  foldedit replace oldName newName src/ --ext .go --yes
  foldedit replace "TODO" "FIXME" --case-sensitive`,
		Args: argsUsage(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, args[0], args[1], args[2:], flags)
		},
	}

	addBatchFlags(cmd, &flags.batchFlags, "text, table, json, diff, summary")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "write changes without asking")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show changes without writing them")

	return cmd
}

func runReplace(cmd *cobra.Command, term, replacement string, paths []string, flags *replaceFlags) error {
	if term == "" {
		return usageError(search.ErrEmptyTerm)
	}

	overrides := flags.overrides(cmd)
	overrides.Yes = flags.yes
	overrides.DryRun = flags.dryRun
	set, err := loadSettings(cmd, overrides)
	if err != nil {
		return err
	}
	rep, err := flags.reporter(cmd, set, term)
	if err != nil {
		return err
	}

	opts := flags.runnerOptions(set, paths)
	opts.Confirm = confirmer(cmd, set)

	ctx := commandContext(cmd)
	result, err := runner.New().ReplaceAll(ctx, opts, term, replacement, set.cfg.CaseSensitive())
	if result == nil {
		return ioError(err)
	}
	if _, reportErr := rep.ReportReplace(ctx, result); reportErr != nil {
		return ioError(fmt.Errorf("report results: %w", reportErr))
	}
	if err != nil {
		return ioError(err)
	}

	failed := 0
	for _, change := range result.Files {
		if change.Err != nil {
			failed++
		}
	}
	switch {
	case failed > 0:
		return ioError(fmt.Errorf("%w: %d", errNotWritten, failed))
	case result.HasChanges() && !result.Confirmed:
		return ErrChangesPending
	}
	return nil
}

// confirmer returns the confirmation gate: --yes confirms, a terminal or an injected
// input is asked, anything else declines.
func confirmer(cmd *cobra.Command, set *settings) func(runner.Stats) bool {
	return func(stats runner.Stats) bool {
		if set.cfg.Yes {
			return true
		}
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && !isInteractive(f) {
			set.logger.Warn("replacement not confirmed; pass --yes to write without a prompt",
				logging.FieldFilesMatched, stats.FilesTouched)
			return false
		}
		prompt := fmt.Sprintf("Replace %d occurrence(s) in %d file(s)?", stats.Occurrences, stats.FilesTouched)
		ok, err := confirm(in, cmd.ErrOrStderr(), prompt)
		if err != nil {
			set.logger.Warn("confirmation failed", logging.FieldError, err)
			return false
		}
		return ok
	}
}

// Package cli provides the Cobra command structure for foldedit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root foldedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "foldedit",
		Short: "A headless code editor core with folding, search, and replace",
		Long: `foldedit is a headless code-editing core with a terminal front end.

It folds indentation blocks into read-only placeholders while keeping the full
text intact, highlights code with pattern-based tokenizers, and searches or
replaces across many files with confirmation, dry-run mode, and backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newReplaceCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// argsUsage wraps a positional argument validator so its errors exit with ExitInvalidUsage.
func argsUsage(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

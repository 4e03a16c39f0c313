package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/configloader"
	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new foldedit configuration file",
		Long: `Create a new .foldedit.yml configuration file in the current directory.
The minimal template lists the common settings as comments; the full template
writes every setting with its default value.

Examples:
  foldedit init                      Create a minimal .foldedit.yml
  foldedit init --full               Create a config with every setting
  foldedit init --format json        Create .foldedit.json instead
  foldedit init --output custom.yml  Write to a custom file path`,
		Args: argsUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .foldedit.yml or .foldedit.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != "yaml" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	var outputPath string
	switch {
	case flags.output != "":
		outputPath, err = writeConfigFile(flags.output, content, flags.force)
	case flags.format == "json":
		outputPath, err = writeConfigFile(".foldedit.json", content, flags.force)
	default:
		var workDir string
		workDir, err = os.Getwd()
		if err == nil {
			outputPath, err = configloader.WriteProjectConfig(workDir, content, flags.force)
		}
	}
	if errors.Is(err, configloader.ErrConfigExists) {
		return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
	}
	if err != nil {
		return ioError(err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	return nil
}

func writeConfigFile(path string, content []byte, force bool) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err == nil && !force {
		return path, fmt.Errorf("%w: %s", configloader.ErrConfigExists, path)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return path, fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

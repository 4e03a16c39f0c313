package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/configloader"
	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/config"
)

// settings is the resolved state shared by every subcommand.
type settings struct {
	cfg     *config.Config
	logger  *log.Logger
	workDir string
	color   bool
}

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadSettings resolves the configuration for cmd. overrides holds the values of flags
// the user set explicitly.
func loadSettings(cmd *cobra.Command, overrides *config.Config) (*settings, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if overrides == nil {
		overrides = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		overrides.Color, _ = cmd.Flags().GetString("color")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, ioError(fmt.Errorf("get working directory: %w", err))
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return &settings{
		cfg:     result.Config,
		logger:  logger,
		workDir: workDir,
		color:   pretty.IsColorEnabled(result.Config.Color, cmd.OutOrStdout()),
	}, nil
}

// renderer builds the terminal renderer for the configured theme.
func (s *settings) renderer() *pretty.TerminalRenderer {
	return pretty.NewTerminalRenderer(pretty.NewTheme(s.cfg.Theme, s.color), pretty.NewStyles(s.color))
}

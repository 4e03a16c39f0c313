// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/foldedit/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned by WriteProjectConfig when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (FOLDEDIT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.foldedit.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/foldedit/config.yaml)
//  6. System config (/etc/foldedit/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}
	seen := make(map[string]bool)
	cfg := config.NewConfig()

	sources := []struct {
		name    string
		path    string
		ignored bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, source := range sources {
		if source.ignored || source.path == "" {
			continue
		}
		fileCfg, err := LoadFile(source.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", source.name, err)
		}
		if err := collect(ValidateWithFile(fileCfg, source.path), result, seen); err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, source.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if err := collect(Validate(cfg), result, seen); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

// collect returns the first validation error, or records new warnings in result.
func collect(validation *ValidationResult, result *LoadResult, seen map[string]bool) error {
	if !validation.Valid() {
		return &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		key := w.Field + "\x00" + w.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Warnings = append(result.Warnings, w.Error())
	}
	return nil
}

// LoadFile loads a configuration from a YAML file. Unset fields stay zero.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteProjectConfig writes content to the project config in dir and returns its path.
// An existing file is only replaced when force is set.
func WriteProjectConfig(dir string, content []byte, force bool) (string, error) {
	path := filepath.Join(dir, ProjectConfigName)
	if !force && fileExists(path) {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return path, fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

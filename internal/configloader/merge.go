package configloader

import (
	"maps"

	"github.com/yaklabco/foldedit/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Maps: merged per key, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.IndentWidth != 0 {
		result.IndentWidth = override.IndentWidth
	}
	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.BufferLines != 0 {
		result.BufferLines = override.BufferLines
	}
	if override.HistoryDepth != 0 {
		result.HistoryDepth = override.HistoryDepth
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}

	if override.Search.CaseSensitive != nil {
		result.Search.CaseSensitive = config.Bool(*override.Search.CaseSensitive)
	}
	if override.Search.Debounce != 0 {
		result.Search.Debounce = override.Search.Debounce
	}
	if override.Batch.Size != 0 {
		result.Batch.Size = override.Batch.Size
	}
	if override.Batch.Yield != 0 {
		result.Batch.Yield = override.Batch.Yield
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Keybindings = mergeStrings(base.Keybindings, override.Keybindings)
	result.Languages = mergeStrings(base.Languages, override.Languages)

	if override.LineHeights != nil {
		result.LineHeights = override.LineHeights
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	// CLI-level fields.
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Yes {
		result.Yes = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	return &result
}

// mergeStrings returns a new map holding base overlaid with override.
func mergeStrings(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

// Package config defines the configuration types of foldedit.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import "time"

// Defaults.
const (
	DefaultIndentWidth  = 4
	DefaultTabWidth     = 4
	DefaultBufferLines  = 5
	DefaultHistoryDepth = 1000
	DefaultDebounce     = 300 * time.Millisecond
	DefaultBatchSize    = 50
	DefaultBatchYield   = 10 * time.Millisecond
	DefaultTheme        = "monokai"
	DefaultBackupMode   = "sidecar"
)

// LineHeight is one row of the responsive line height table.
type LineHeight struct {
	MinWidth   int `yaml:"min_width"`
	LineHeight int `yaml:"line_height"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	// CaseSensitive is a pointer so that a file can turn it off explicitly.
	CaseSensitive *bool `yaml:"case_sensitive,omitempty"`

	// Debounce delays in-document search after typing.
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// BatchConfig controls cross-file batching.
type BatchConfig struct {
	Size  int           `yaml:"size,omitempty"`
	Yield time.Duration `yaml:"yield,omitempty"`
}

// BackupsConfig controls backups taken before files are overwritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	// IndentWidth is the extra indentation of a placeholder past its parent line.
	IndentWidth int `yaml:"indent_width,omitempty"`

	// TabWidth is the column width of a tab when comparing indentation.
	TabWidth int `yaml:"tab_width,omitempty"`

	// BufferLines is the number of lines rendered beyond each edge of the viewport.
	BufferLines int `yaml:"buffer_lines,omitempty"`

	// LineHeights maps viewport widths to line heights.
	LineHeights []LineHeight `yaml:"line_heights,omitempty"`

	// HistoryDepth bounds the undo stack; 0 is unlimited.
	HistoryDepth int `yaml:"history_depth,omitempty"`

	Search SearchConfig `yaml:"search,omitempty"`
	Batch  BatchConfig  `yaml:"batch,omitempty"`

	// Keybindings maps action names to chords. An empty chord unbinds the action.
	Keybindings map[string]string `yaml:"keybindings,omitempty"`

	// Theme is a chroma style name.
	Theme string `yaml:"theme,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Languages maps file extensions to language tags, e.g. ".tpl": html.
	Languages map[string]string `yaml:"languages,omitempty"`

	// Ignore contains glob patterns of files skipped by cross-file search and replace.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions limits cross-file search and replace to these extensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color is the color mode: auto, always or never.
	Color string `yaml:"-"`

	// Format is the report format.
	Format string `yaml:"-"`

	// Yes confirms replacements without prompting.
	Yes bool `yaml:"-"`

	// DryRun shows replacements without writing them.
	DryRun bool `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	caseSensitive := false
	backups := true
	return &Config{
		IndentWidth:  DefaultIndentWidth,
		TabWidth:     DefaultTabWidth,
		BufferLines:  DefaultBufferLines,
		LineHeights:  DefaultLineHeights(),
		HistoryDepth: DefaultHistoryDepth,
		Search: SearchConfig{
			CaseSensitive: &caseSensitive,
			Debounce:      DefaultDebounce,
		},
		Batch: BatchConfig{
			Size:  DefaultBatchSize,
			Yield: DefaultBatchYield,
		},
		Keybindings: make(map[string]string),
		Theme:       DefaultTheme,
		Backups: BackupsConfig{
			Enabled: &backups,
			Mode:    DefaultBackupMode,
		},
		Languages: make(map[string]string),
		Color:     "auto",
		Format:    "text",
		Jobs:      0, // 0 means use GOMAXPROCS
	}
}

// DefaultLineHeights returns the default responsive line height table.
func DefaultLineHeights() []LineHeight {
	return []LineHeight{
		{MinWidth: 0, LineHeight: 18},
		{MinWidth: 768, LineHeight: 20},
		{MinWidth: 1280, LineHeight: 22},
	}
}

// CaseSensitive reports the effective search case sensitivity.
func (c *Config) CaseSensitive() bool {
	return c.Search.CaseSensitive != nil && *c.Search.CaseSensitive
}

// BackupsEnabled reports whether backups are enabled.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled != nil && *c.Backups.Enabled
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

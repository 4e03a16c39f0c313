package configloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/config"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/input"
	"github.com/yaklabco/foldedit/pkg/langdetect"
	"github.com/yaklabco/foldedit/pkg/reporter"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 3

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "keybindings.save").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown actions).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownColorModes lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	nonNegative := []struct {
		field string
		value int
	}{
		{"indent_width", cfg.IndentWidth},
		{"tab_width", cfg.TabWidth},
		{"buffer_lines", cfg.BufferLines},
		{"history_depth", cfg.HistoryDepth},
		{"batch.size", cfg.Batch.Size},
		{"jobs", cfg.Jobs},
	}
	for _, check := range nonNegative {
		if check.value < 0 {
			result.addError(check.field, check.value, "must be >= 0, got %d", check.value)
		}
	}
	if cfg.Search.Debounce < 0 {
		result.addError("search.debounce", cfg.Search.Debounce, "must not be negative")
	}
	if cfg.Batch.Yield < 0 {
		result.addError("batch.yield", cfg.Batch.Yield, "must not be negative")
	}

	if cfg.Backups.Mode != "" && !IsValidBackupMode(cfg.Backups.Mode) {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Format != "" {
		if _, err := reporter.ParseFormat(cfg.Format); err != nil {
			result.addError("format", cfg.Format, "%v", err)
		}
	}
	if cfg.Theme != "" && !pretty.IsTheme(cfg.Theme) {
		result.addWarning("theme", cfg.Theme, "unknown theme %q; the fallback style is used%s",
			cfg.Theme, didYouMean(suggest(cfg.Theme, pretty.ThemeNames())))
	}

	validateLineHeights(cfg, result)
	validateKeybindings(cfg, result)
	validateLanguages(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateLineHeights(cfg *config.Config, result *ValidationResult) {
	seen := make(map[int]bool, len(cfg.LineHeights))
	for i, row := range cfg.LineHeights {
		field := fmt.Sprintf("line_heights[%d]", i)
		if row.MinWidth < 0 {
			result.addError(field+".min_width", row.MinWidth, "must be >= 0, got %d", row.MinWidth)
		}
		if row.LineHeight <= 0 {
			result.addError(field+".line_height", row.LineHeight, "must be > 0, got %d", row.LineHeight)
		}
		if seen[row.MinWidth] {
			result.addError(field+".min_width", row.MinWidth, "duplicate min_width %d", row.MinWidth)
		}
		seen[row.MinWidth] = true
	}
}

func validateKeybindings(cfg *config.Config, result *ValidationResult) {
	actions := make([]string, 0, len(cfg.Keybindings))
	for action := range cfg.Keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	chords := make(map[string]string, len(actions))
	for _, action := range actions {
		chord := cfg.Keybindings[action]
		field := "keybindings." + action
		if !input.IsAction(action) {
			result.addWarning(field, action, "unknown action %q; it will be ignored%s",
				action, didYouMean(suggest(action, input.Actions())))
			continue
		}
		if strings.TrimSpace(chord) == "" {
			continue
		}
		key, err := input.ParseChord(chord)
		if err != nil {
			result.addError(field, chord, "%v", err)
			continue
		}
		if other, ok := chords[key.String()]; ok {
			result.addWarning(field, chord, "chord %q is also bound to %q", chord, other)
			continue
		}
		chords[key.String()] = action
	}
}

func validateLanguages(cfg *config.Config, result *ValidationResult) {
	exts := make([]string, 0, len(cfg.Languages))
	for ext := range cfg.Languages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	for _, ext := range exts {
		lang := cfg.Languages[ext]
		field := "languages." + ext
		if strings.TrimSpace(ext) == "" {
			result.addError(field, ext, "empty extension")
			continue
		}
		if langdetect.Tag(lang) == highlight.PlainTextTag && !isPlainTextName(lang) {
			result.addWarning(field, lang, "unknown language %q; files fall back to detection%s",
				lang, didYouMean(langdetect.Suggest(lang)))
		}
	}
}

func isPlainTextName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case highlight.PlainTextTag, "plain", "plaintext", "none":
		return true
	}
	return false
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// suggest returns the candidates closest to name, best first.
func suggest(name string, candidates []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) == 0 {
		lower := strings.ToLower(name)
		for _, candidate := range candidates {
			if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(candidate)); d <= maxSuggestionDistance {
				ranks = append(ranks, fuzzy.Rank{Target: candidate, Distance: d})
			}
		}
	}
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, rank.Target)
	}
	return out
}

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", suggestions[0])
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	switch fsutil.BackupMode(mode) {
	case fsutil.BackupModeSidecar, fsutil.BackupModeNone:
		return true
	}
	return false
}

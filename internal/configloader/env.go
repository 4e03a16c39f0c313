package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/foldedit/pkg/config"
)

// envVarPrefix is the prefix for all foldedit environment variables.
const envVarPrefix = "FOLDEDIT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"THEME":           {field: "theme", typ: envTypeString, description: "Chroma style used to color tokens"},
	"TAB_WIDTH":       {field: "tab_width", typ: envTypeInt, description: "Column width of a tab"},
	"INDENT_WIDTH":    {field: "indent_width", typ: envTypeInt, description: "Placeholder indentation past its parent"},
	"BUFFER_LINES":    {field: "buffer_lines", typ: envTypeInt, description: "Lines rendered beyond the viewport"},
	"HISTORY_DEPTH":   {field: "history_depth", typ: envTypeInt, description: "Undo depth (0 = unlimited)"},
	"CASE_SENSITIVE":  {field: "search.case_sensitive", typ: envTypeBool, description: "Case-sensitive search: true or false"},
	"DEBOUNCE":        {field: "search.debounce", typ: envTypeDuration, description: "Search debounce, e.g. 300ms"},
	"BATCH_SIZE":      {field: "batch.size", typ: envTypeInt, description: "Files read per cross-file batch"},
	"BATCH_YIELD":     {field: "batch.yield", typ: envTypeDuration, description: "Pause between batches, e.g. 10ms"},
	"JOBS":            {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Back up files before writing: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of searched extensions"},
	"COLOR":           {field: "color", typ: envTypeString, description: "Color mode: auto, always, or never"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text, table, json, diff, or summary"},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool, description: "Show replacements without writing: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with FOLDEDIT_ (e.g., FOLDEDIT_THEME).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// loadFromLookup applies overrides read through lookup, in a stable order.
func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "theme":
		cfg.Theme = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "color":
		cfg.Color = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "search.case_sensitive":
		cfg.Search.CaseSensitive = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "tab_width":
		cfg.TabWidth = value
	case "indent_width":
		cfg.IndentWidth = value
	case "buffer_lines":
		cfg.BufferLines = value
	case "history_depth":
		cfg.HistoryDepth = value
	case "batch.size":
		cfg.Batch.Size = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "search.debounce":
		cfg.Search.Debounce = value
	case "batch.yield":
		cfg.Batch.Yield = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}

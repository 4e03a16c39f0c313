package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from data stay
// unset, so the result can be merged over defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	// Use YAML round-trip for deep copy of serializable fields
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		return c.deepCopy()
	}

	// Maps that were empty are dropped by omitempty.
	if c.Keybindings != nil && clone.Keybindings == nil {
		clone.Keybindings = make(map[string]string)
	}
	if c.Languages != nil && clone.Languages == nil {
		clone.Languages = make(map[string]string)
	}

	c.copyCLIFields(clone)
	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Color = c.Color
	target.Format = c.Format
	target.Yes = c.Yes
	target.DryRun = c.DryRun
	target.Jobs = c.Jobs
}

// deepCopy creates a manual deep copy of the configuration.
// This is used as a fallback when YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := *c

	if c.LineHeights != nil {
		clone.LineHeights = append([]LineHeight(nil), c.LineHeights...)
	}
	if c.Search.CaseSensitive != nil {
		clone.Search.CaseSensitive = Bool(*c.Search.CaseSensitive)
	}
	if c.Backups.Enabled != nil {
		clone.Backups.Enabled = Bool(*c.Backups.Enabled)
	}
	if c.Keybindings != nil {
		clone.Keybindings = maps.Clone(c.Keybindings)
	}
	if c.Languages != nil {
		clone.Languages = maps.Clone(c.Languages)
	}
	if c.Ignore != nil {
		clone.Ignore = append([]string(nil), c.Ignore...)
	}
	if c.Extensions != nil {
		clone.Extensions = append([]string(nil), c.Extensions...)
	}

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

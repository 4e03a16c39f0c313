package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/input"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal, fully commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = generateFullTemplate()
	} else {
		content = generateMinimalTemplate()
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}
	return content, nil
}

// Template returns the minimal YAML template written by "foldedit init".
func Template() []byte {
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Spaces a collapsed placeholder is indented past its parent line
# indent_width: 4

# Column width of a tab when comparing indentation
# tab_width: 4

# Chroma style used to color tokens
# theme: monokai

# Search defaults
# search:
#   case_sensitive: false
#   debounce: 300ms

# Key bindings (action: chord); an empty chord unbinds the action
# keybindings:
#   redo: ctrl+shift+z

# Extension to language overrides
# languages:
#   .tpl: html

# Files skipped by cross-file search and replace
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
	return buf.Bytes()
}

// generateFullTemplate creates a template with every setting at its default.
func generateFullTemplate() []byte {
	defaults := NewConfig()
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(" - Full Template\n#\n")
	buf.WriteString("# This template lists every setting with its default value.\n\n")

	fmt.Fprintf(&buf, "# Spaces a collapsed placeholder is indented past its parent line\nindent_width: %d\n\n", defaults.IndentWidth)
	fmt.Fprintf(&buf, "# Column width of a tab when comparing indentation\ntab_width: %d\n\n", defaults.TabWidth)
	fmt.Fprintf(&buf, "# Lines rendered beyond each edge of the viewport\nbuffer_lines: %d\n\n", defaults.BufferLines)
	fmt.Fprintf(&buf, "# Undo depth (0 = unlimited)\nhistory_depth: %d\n\n", defaults.HistoryDepth)

	buf.WriteString("# Line height by minimum viewport width\nline_heights:\n")
	for _, row := range defaults.LineHeights {
		fmt.Fprintf(&buf, "  - min_width: %d\n    line_height: %d\n", row.MinWidth, row.LineHeight)
	}

	fmt.Fprintf(&buf, "\nsearch:\n  case_sensitive: %t\n  debounce: %s\n", defaults.CaseSensitive(), defaults.Search.Debounce)
	buf.WriteString("\n# Cross-file runs read files in batches and pause between them\n")
	fmt.Fprintf(&buf, "batch:\n  size: %d\n  yield: %s\n", defaults.Batch.Size, defaults.Batch.Yield)

	buf.WriteString("\n# " + wrapComment("Key bindings. Actions: "+strings.Join(input.Actions(), ", "), commentWrapWidth) + "\n")
	buf.WriteString("keybindings:\n")
	bindings := input.DefaultBindings()
	for _, action := range input.Actions() {
		fmt.Fprintf(&buf, "  %s: %s\n", action, bindings[input.Action(action)])
	}

	fmt.Fprintf(&buf, "\n# Chroma style used to color tokens\ntheme: %s\n", defaults.Theme)
	fmt.Fprintf(&buf, "\n# Backups before files are overwritten (mode: sidecar or none)\nbackups:\n  enabled: %t\n  mode: %s\n",
		defaults.BackupsEnabled(), defaults.Backups.Mode)

	buf.WriteString("\n# " + wrapComment("Extension to language overrides. Languages: "+
		strings.Join(highlight.Default().Tags(), ", "), commentWrapWidth) + "\n")
	buf.WriteString("languages: {}\n")

	buf.WriteString("\n# Files skipped by cross-file search and replace\nignore:\n")
	buf.WriteString("  - \"vendor/**\"\n  - \"node_modules/**\"\n")

	buf.WriteString("\n# Extensions searched by cross-file runs (empty = all)\nextensions: []\n")
	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON converts a YAML template to JSON. Commented-out settings are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	doc := map[string]any{}
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# foldedit configuration
# See: https://github.com/yaklabco/foldedit`
}

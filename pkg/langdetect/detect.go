// Package langdetect picks the highlight language tag of a document from its path,
// its content, and configured overrides. Detection is backed by go-enry.
package langdetect

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yaklabco/foldedit/pkg/highlight"
)

// classifierCandidates limits the content classifier to languages with built-in rules.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Rust", "Java",
	"C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Markdown",
}

// enryNames maps go-enry language names that do not lowercase to a known tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]string{
	"C++":        "cpp",
	"Shell":      "shell",
	"Dockerfile": "shell",
	"JSON5":      "json",
	"JSONC":      "json",
	"TSX":        "typescript",
	"JSX":        "javascript",
	"SCSS":       "css",
}

// Tag converts a go-enry language name or a user-supplied tag to a registered tag.
// Unknown names yield highlight.PlainTextTag.
func Tag(name string) string {
	if name == "" {
		return highlight.PlainTextTag
	}
	if mapped, ok := enryNames[name]; ok {
		name = mapped
	}
	lang, ok := highlight.Default().Find(name)
	if !ok {
		return highlight.PlainTextTag
	}
	return lang.Name()
}

// FromFilename returns the tag for path based on its name and extension.
// ok is false when the name says nothing about the language.
func FromFilename(path string) (string, bool) {
	base := filepath.Base(path)
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		if tag := Tag(lang); tag != highlight.PlainTextTag {
			return tag, true
		}
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		if tag := Tag(lang); tag != highlight.PlainTextTag {
			return tag, true
		}
	}
	// Ambiguous extensions (.h, .md variants) are settled by the first candidate
	// that has rules.
	for _, lang := range enry.GetLanguagesByExtension(base, nil, nil) {
		if tag := Tag(lang); tag != highlight.PlainTextTag {
			return tag, true
		}
	}
	return highlight.PlainTextTag, false
}

// Detect guesses the tag from content: shebang first, then telltale patterns, then
// the enry classifier. It returns highlight.PlainTextTag when unsure.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return highlight.PlainTextTag
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Tag(lang)
	}
	if tag := detectByPattern(content); tag != "" {
		return tag
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Tag(lang)
	}
	return highlight.PlainTextTag
}

// Resolve picks the tag of a document. Precedence: an explicit override, then the
// configured extension map (keys like ".tpl" or "tpl"), then the filename, then the
// content. Overrides that name no known language are ignored.
func Resolve(path string, content []byte, override string, extensions map[string]string) string {
	if override != "" {
		if tag := Tag(override); tag != highlight.PlainTextTag || isPlainText(override) {
			return tag
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		for _, key := range []string{ext, strings.TrimPrefix(ext, ".")} {
			if configured, ok := extensions[key]; ok {
				return Tag(configured)
			}
		}
	}

	if tag, ok := FromFilename(path); ok {
		return tag
	}
	return Detect(content)
}

func isPlainText(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case highlight.PlainTextTag, "plain", "plaintext", "none":
		return true
	}
	return false
}

// Suggest returns known tags close to name, best first. It is used for "did you mean"
// hints on unknown language names.
func Suggest(name string) []string {
	ranks := fuzzy.RankFindNormalizedFold(name, highlight.Default().Names())
	if len(ranks) == 0 {
		for _, known := range highlight.Default().Names() {
			if fuzzy.LevenshteinDistance(strings.ToLower(name), known) <= 2 {
				ranks = append(ranks, fuzzy.Rank{Target: known, Distance: 0})
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

func detectByPattern(content []byte) string {
	text := string(content)
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(trimmed, "package "):
		return "go"
	case strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html"):
		return "html"
	case (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
		strings.Contains(trimmed, `"`) && (strings.HasSuffix(trimmed, "}") || strings.HasSuffix(trimmed, "]")):
		return "json"
	case strings.Contains(text, "def ") && strings.Contains(text, "):"),
		strings.Contains(text, "__name__"):
		return "python"
	case strings.Contains(text, "fn main()") || strings.Contains(text, "let mut "):
		return "rust"
	case hasSQLPrefix(strings.ToUpper(trimmed)):
		return "sql"
	case strings.Contains(text, "console.log") || strings.Contains(text, "=>"):
		return "javascript"
	case strings.HasPrefix(trimmed, "# "):
		return "markdown"
	case yamlKeys(text) >= 2:
		return "yaml"
	}
	return ""
}

func hasSQLPrefix(upper string) bool {
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func yamlKeys(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			count++
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "(){};") && !strings.HasPrefix(line, `"`) {
			count++
		}
	}
	return count
}

package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/pkg/langdetect"
)

func TestTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Go":         "go",
		"C++":        "cpp",
		"Shell":      "shell",
		"bash":       "shell",
		"TypeScript": "typescript",
		"JS":         "javascript",
		"Haskell":    "text",
		"":           "text",
	}
	for name, expected := range tests {
		assert.Equal(t, expected, langdetect.Tag(name), name)
	}
}

func TestFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{path: "main.go", expected: "go", ok: true},
		{path: "src/app.ts", expected: "typescript", ok: true},
		{path: "script.py", expected: "python", ok: true},
		{path: "build.sh", expected: "shell", ok: true},
		{path: "README.md", expected: "markdown", ok: true},
		{path: "style.css", expected: "css", ok: true},
		{path: "lib.rs", expected: "rust", ok: true},
		{path: "notes", expected: "text", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			tag, ok := langdetect.FromFilename(tt.path)
			assert.Equal(t, tt.expected, tag)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "shell"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "go", content: "package main\n\nfunc main() {}\n", expected: "go"},
		{name: "python", content: "def foo():\n    pass\n", expected: "python"},
		{name: "json", content: `{"key": "value"}`, expected: "json"},
		{name: "yaml", content: "key: value\nother: 123\n", expected: "yaml"},
		{name: "rust", content: "fn main() {\n    let mut x = 1;\n}", expected: "rust"},
		{name: "sql", content: "SELECT * FROM users;", expected: "sql"},
		{name: "empty", content: "  \n", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	content := []byte("package main\n")
	extensions := map[string]string{".tpl": "html", "conf": "yaml"}

	assert.Equal(t, "python", langdetect.Resolve("main.go", content, "py", extensions))
	assert.Equal(t, "text", langdetect.Resolve("main.go", content, "plaintext", extensions))
	assert.Equal(t, "go", langdetect.Resolve("main.go", content, "klingon", extensions))
	assert.Equal(t, "html", langdetect.Resolve("page.tpl", content, "", extensions))
	assert.Equal(t, "yaml", langdetect.Resolve("app.CONF", content, "", extensions))
	assert.Equal(t, "go", langdetect.Resolve("main.go", []byte("SELECT 1"), "", extensions))
	assert.Equal(t, "go", langdetect.Resolve("untitled", content, "", extensions))
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	assert.Contains(t, langdetect.Suggest("pyth"), "python")
	assert.Contains(t, langdetect.Suggest("rsut"), "rust")
	assert.Empty(t, langdetect.Suggest("zzzzzzzz"))
}

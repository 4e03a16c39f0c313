package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/runner"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, name)
	}
	return out
}

func TestDiscoverSkipsHiddenVendoredAndImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.go":                   "package main\n",
		"notes.txt":                 "notes\n",
		"src/app.js":                "let x = 1;\n",
		".git/config":               "[core]\n",
		".env":                      "SECRET=1\n",
		"node_modules/lib/index.js": "module.exports = {};\n",
		"vendor/dep/dep.go":         "package dep\n",
		"logo.png":                  "png",
		"main.go.foldedit.bak":      "package main\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "main.go", "notes.txt", "src/app.js"), files)
}

func TestDiscoverIncludeVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.go":           "package main\n",
		"vendor/dep/dep.go": "package dep\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IncludeVendored: true})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "main.go", "vendor/dep/dep.go"), files)
}

func TestDiscoverExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"vendor/dep/dep.go": "package dep\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"vendor/dep/dep.go", filepath.Join(dir, "vendor/dep/dep.go")},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "vendor/dep/dep.go"), files, "named files are kept once")
}

func TestDiscoverFilters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":              "",
		"a_test.go":         "",
		"b.py":              "",
		"docs/readme.md":    "",
		"docs/deep/spec.md": "",
		"testdata/x.go":     "",
	})

	tests := []struct {
		name     string
		opts     runner.Options
		expected []string
	}{
		{
			name:     "extensions",
			opts:     runner.Options{Extensions: []string{".GO"}},
			expected: []string{"a.go", "a_test.go", "testdata/x.go"},
		},
		{
			name:     "exclude directory",
			opts:     runner.Options{ExcludeGlobs: []string{"docs/**", "**/testdata"}},
			expected: []string{"a.go", "a_test.go", "b.py"},
		},
		{
			name:     "exclude base name",
			opts:     runner.Options{ExcludeGlobs: []string{"*_test.go"}},
			expected: []string{"a.go", "b.py", "docs/deep/spec.md", "docs/readme.md", "testdata/x.go"},
		},
		{
			name:     "include",
			opts:     runner.Options{IncludeGlobs: []string{"docs/**"}},
			expected: []string{"docs/deep/spec.md", "docs/readme.md"},
		},
		{
			name:     "paths",
			opts:     runner.Options{Paths: []string{"docs", "b.py"}},
			expected: []string{"b.py", "docs/deep/spec.md", "docs/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.expected...), files)
		})
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a\n"})
	writeTree(t, outside, map[string]string{"b.txt": "b\n"})
	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.txt"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), files[0])
	assert.Equal(t, "b.txt", filepath.Base(files[1]))
}

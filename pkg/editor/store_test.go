package editor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/textedit"
)

func loadOptions() editor.LoadOptions {
	return editor.LoadOptions{Options: editor.Options{Logger: logging.Discard()}}
}

func TestLoadDetectsLanguage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\r\n    pass\r\n"), 0o600))

	doc, err := editor.Load(ctx, path, loadOptions())
	require.NoError(t, err)
	assert.Equal(t, "python", doc.Language)
	assert.Equal(t, "def f():\n    pass\n", doc.FullCode)
	assert.NotNil(t, doc.File)

	opts := loadOptions()
	opts.Language = "text"
	doc, err = editor.Load(ctx, path, opts)
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Language)
}

func TestLoadBinary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte("ab\x00cd"), 0o600))

	_, err := editor.Load(ctx, path, loadOptions())
	require.ErrorIs(t, err, fsutil.ErrBinary)

	opts := loadOptions()
	opts.AllowBinary = true
	doc, err := editor.Load(ctx, path, opts)
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Language)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "app.js")
	require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o600))

	doc, err := editor.Load(ctx, path, loadOptions())
	require.NoError(t, err)
	doc.ApplyViewText("let a = 2;\n", textedit.Caret(0))
	require.True(t, doc.Dirty())

	backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	require.NoError(t, editor.Save(ctx, doc, backup))
	assert.False(t, doc.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let a = 2;\n", string(data))

	data, err = os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\n", string(data))

	doc.ApplyViewText("let a = 3;\n", textedit.Caret(0))
	require.NoError(t, editor.Save(ctx, doc, backup), "saving twice uses the refreshed snapshot")
}

func TestSaveRefusesExternalChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "app.js")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o600))

	doc, err := editor.Load(ctx, path, loadOptions())
	require.NoError(t, err)

	later := doc.File.ModTime.Add(time.Second)
	require.NoError(t, os.WriteFile(path, []byte("external\n"), 0o600))
	require.NoError(t, os.Chtimes(path, later, later))

	doc.ApplyViewText("mine\n", textedit.Caret(0))
	err = editor.Save(ctx, doc, fsutil.DefaultBackupConfig())
	require.ErrorIs(t, err, fsutil.ErrModified)
	assert.True(t, doc.Dirty())
}

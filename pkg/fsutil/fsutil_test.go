package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("text file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "main.go", "package main\n")

		content, snap, err := fsutil.ReadText(ctx, path, false)
		require.NoError(t, err)
		assert.Equal(t, "package main\n", content)
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(len(content)), snap.Size)
		assert.True(t, snap.Matches(content))
		assert.False(t, snap.Matches(content+"x"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadText(ctx, filepath.Join(dir, "nope.txt"), false)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadText(ctx, dir, false)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("binary rejected unless allowed", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "blob.bin", "\x00\x01\x02binary\x00")

		_, _, err := fsutil.ReadText(ctx, path, false)
		require.ErrorIs(t, err, fsutil.ErrBinary)

		content, _, err := fsutil.ReadText(ctx, path, true)
		require.NoError(t, err)
		assert.Equal(t, "\x00\x01\x02binary\x00", content)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadText(canceled, dir, false)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSnapshotChanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	path := writeFile(t, dir, "a.txt", "one\n")
	_, snap, err := fsutil.ReadText(ctx, path, false)
	require.NoError(t, err)

	changed, err := snap.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o600))
	require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))
	changed, err = snap.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed, "same size and mtime must fall back to hashing")

	require.NoError(t, os.Remove(path))
	changed, err = snap.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	var nilSnap *fsutil.Snapshot
	_, err = nilSnap.Changed(ctx)
	require.ErrorIs(t, err, fsutil.ErrNoSnapshot)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, fsutil.WriteAtomic(ctx, path, "hello\n", 0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	err = fsutil.WriteAtomic(ctx, filepath.Join(dir, "missing", "out.txt"), "x", 0)
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes and returns fresh snapshot", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "doc.go", "old\n")
		_, snap, err := fsutil.ReadText(ctx, path, false)
		require.NoError(t, err)

		written, err := fsutil.Save(ctx, path, snap, "new\n", fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.True(t, written.Matches("new\n"))

		changed, err := written.Changed(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("refuses file modified on disk", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "doc.go", "old\n")
		_, snap, err := fsutil.ReadText(ctx, path, false)
		require.NoError(t, err)

		later := snap.ModTime.Add(time.Second)
		require.NoError(t, os.WriteFile(path, []byte("theirs\n"), 0o600))
		require.NoError(t, os.Chtimes(path, later, later))

		_, err = fsutil.Save(ctx, path, snap, "mine\n", fsutil.DefaultBackupConfig())
		require.ErrorIs(t, err, fsutil.ErrModified)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "theirs\n", string(data))
	})

	t.Run("new file without snapshot", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "fresh.txt")
		written, err := fsutil.Save(ctx, path, nil, "fresh\n", fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
		require.NoError(t, err)
		assert.True(t, written.Matches("fresh\n"))
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})
}

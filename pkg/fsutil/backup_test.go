package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tmp/a.go.foldedit.bak", fsutil.BackupPath("/tmp/a.go", fsutil.BackupModeSidecar))
	assert.Empty(t, fsutil.BackupPath("/tmp/a.go", fsutil.BackupModeNone))
	assert.Equal(t, "/tmp/a.go.foldedit.bak", fsutil.BackupPath("/tmp/a.go", "bogus"))
}

func TestBackupLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	path := writeFile(t, t.TempDir(), "doc.txt", "v1\n")
	backupPath := fsutil.BackupPath(path, cfg.Mode)

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("v2\n"), 0o600))

	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created, "existing backup keeps the first version")

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "v1\n", string(data))

	restored, err := fsutil.RestoreBackup(ctx, path, cfg.Mode)
	require.NoError(t, err)
	assert.True(t, restored)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1\n", string(data))

	removed, err := fsutil.RemoveBackup(path, cfg.Mode)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, backupPath)

	removed, err = fsutil.RemoveBackup(path, cfg.Mode)
	require.NoError(t, err)
	assert.False(t, removed)

	restored, err = fsutil.RestoreBackup(ctx, path, cfg.Mode)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestBackupDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := writeFile(t, t.TempDir(), "doc.txt", "v1\n")
	for _, cfg := range []fsutil.BackupConfig{
		fsutil.DefaultBackupConfig(),
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
	}
	assert.NoFileExists(t, path+fsutil.BackupSuffix)
}

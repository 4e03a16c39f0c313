package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode selects where backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file's path to name its sidecar backup.
const BackupSuffix = ".foldedit.bak"

// BackupConfig controls backups taken before a file is overwritten.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the default: disabled, sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// Active reports whether backups will be written.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns where the backup of path is stored, or "" for BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location unless a backup already exists, so
// the first backup keeps the content from before the first save. It reports whether a
// backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Active() {
		return false, nil
	}
	backupPath := BackupPath(path, cfg.Mode)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup %s: %w", backupPath, err)
	}

	content, snap, err := ReadText(ctx, path, true)
	if err != nil {
		if os.IsNotExist(err) || isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over it and reports whether one existed.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, snap, err := ReadText(ctx, backupPath, true)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("restore %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode.Perm()); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

// RemoveBackup deletes the backup of path and reports whether one existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}
	if err := os.Remove(backupPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

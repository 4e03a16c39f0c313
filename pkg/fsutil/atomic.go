package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode of newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file in the same directory
// and a rename. A zero mode means DefaultFileMode. On failure the original is untouched.
func WriteAtomic(ctx context.Context, path, content string, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write %s: %w", path, ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// Save writes content over the file described by snap.
//
// The write is refused with ErrModified when the file changed on disk since snap was
// taken. A nil snap writes a new file. A backup is taken first when enabled. The
// returned snapshot describes the file as written.
func Save(ctx context.Context, path string, snap *Snapshot, content string, backup BackupConfig) (*Snapshot, error) {
	mode := DefaultFileMode
	if snap != nil {
		changed, err := snap.Changed(ctx)
		if err != nil {
			return nil, err
		}
		if changed {
			return nil, fmt.Errorf("%w: %s", ErrModified, path)
		}
		mode = snap.Mode.Perm()
	}

	if _, err := CreateBackup(ctx, path, backup); err != nil {
		return nil, err
	}
	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return nil, err
	}

	_, written, err := ReadText(ctx, path, true)
	if err != nil {
		return nil, fmt.Errorf("re-reading %s: %w", path, err)
	}
	return written, nil
}

// Package fsutil reads and writes documents on disk: change detection, atomic writes
// and sidecar backups. It is the persistence collaborator of the editor core.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-enry/go-enry/v2"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrBinary indicates the file content is not text.
	ErrBinary = errors.New("binary file")

	// ErrModified indicates the file changed on disk since it was read.
	ErrModified = errors.New("file modified on disk")

	// ErrNoSnapshot is returned when a nil snapshot is checked.
	ErrNoSnapshot = errors.New("nil snapshot")
)

// Snapshot records the on-disk state of a file when it was read or written.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte
}

// ReadText reads a text file. Binary content is rejected with ErrBinary unless
// allowBinary is set, which is the "open anyway" path.
func ReadText(ctx context.Context, path string, allowBinary bool) (string, *Snapshot, error) {
	select {
	case <-ctx.Done():
		return "", nil, fmt.Errorf("read %s: %w", path, ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", nil, classify(path, err)
	}
	if stat.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, classify(path, err)
	}
	if !allowBinary && enry.IsBinary(content) {
		return "", nil, fmt.Errorf("%w: %s", ErrBinary, path)
	}

	return string(content), &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Changed reports whether the file differs from the snapshot. Modification time and
// size are compared first; when they agree the content is re-hashed. A deleted file
// counts as changed.
func (s *Snapshot) Changed(ctx context.Context) (bool, error) {
	if s == nil {
		return false, ErrNoSnapshot
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check %s: %w", s.Path, ctx.Err())
	default:
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

// Matches reports whether content hashes to the snapshot's hash.
func (s *Snapshot) Matches(content string) bool {
	return s != nil && sha256.Sum256([]byte(content)) == s.Hash
}

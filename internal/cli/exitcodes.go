package cli

import (
	"errors"
	"strings"

	"github.com/yaklabco/foldedit/pkg/fsutil"
)

// Exit codes for foldedit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFound indicates a search found matches or a replace left changes pending.
	ExitFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrMatchesFound is returned by search when any file matched.
	ErrMatchesFound = errors.New("matches found")

	// ErrChangesPending is returned by replace when changes were computed but not written.
	ErrChangesPending = errors.New("changes pending")
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func usageError(err error) error {
	return withExitCode(ExitInvalidUsage, err)
}

// ioError tags err as an I/O failure unless it already carries a code.
func ioError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return withExitCode(ExitIOError, err)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrMatchesFound), errors.Is(err, ErrChangesPending):
		return ExitFound
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, fsutil.ErrModified), errors.Is(err, fsutil.ErrBinary):
		return ExitIOError
	case strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "unknown flag"),
		strings.HasPrefix(err.Error(), "unknown shorthand flag"):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only signals an exit status and needs no log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrMatchesFound) || errors.Is(err, ErrChangesPending)
}

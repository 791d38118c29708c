package scan

import (
	"errors"
	"io/fs"
)

// Error taxonomy for per-entry failures. All are non-fatal to the scan
// except ErrRootUnreadable, which fails the whole session.
var (
	// ErrPermissionDenied marks an entry that could not be read due to
	// missing permissions.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound marks an entry that disappeared between listing and
	// probing.
	ErrNotFound = errors.New("entry not found")
	// ErrIO marks any other I/O failure on an entry.
	ErrIO = errors.New("i/o error")
	// ErrRootUnreadable marks a root path that does not denote a readable
	// directory.
	ErrRootUnreadable = errors.New("root is not a readable directory")
	// ErrSymlinkOutsideRoot marks a symlink whose target escapes the scan
	// root.
	ErrSymlinkOutsideRoot = errors.New("symlink target outside scan root")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("session already started")
)

// classify maps a raw filesystem error onto the taxonomy.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	default:
		return ErrIO
	}
}

package scan

import (
	"io/fs"
	"time"
)

// Kind identifies the type of a filesystem entry.
type Kind uint8

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link that was not followed.
	KindSymlink
	// KindOther covers devices, sockets, pipes and unresolvable symlinks.
	KindOther
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// kindFromMode derives the Kind from a file mode.
func kindFromMode(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Status describes how an entry resolved.
type Status uint8

const (
	// StatusDone means the entry and, for a directory, its whole subtree
	// resolved without errors.
	StatusDone Status = iota
	// StatusPartiallyFailed means a directory resolved but at least one
	// descendant could not be read.
	StatusPartiallyFailed
	// StatusFailed means the entry itself could not be read.
	StatusFailed
	// StatusCancelled means the entry was not resolved before cancellation.
	StatusCancelled
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusPartiallyFailed:
		return "partially-failed"
	case StatusFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Entry is an immutable snapshot of one resolved filesystem node.
//
// For a file, Size is its byte length. For a directory, Size is the sum of
// all descendant file sizes and is only reported once every descendant has
// resolved. Err carries the entry's own I/O error, if any.
type Entry struct {
	// Path is the absolute, filesystem-native path.
	Path string
	// Name is the last path component.
	Name string
	// Kind is the entry type.
	Kind Kind
	// Size is the entry size in bytes.
	Size int64
	// Depth is the distance from the scan root (root = 0).
	Depth int
	// Status describes how the entry resolved.
	Status Status
	// Err is the entry's own I/O error, nil when none occurred.
	Err error
}

// SessionStatus is the lifecycle state of a Session.
type SessionStatus uint8

const (
	// StateIdle means the session has not been started.
	StateIdle SessionStatus = iota
	// StateRunning means the scan is in progress.
	StateRunning
	// StateCompleted means the scan finished, possibly with per-entry errors.
	StateCompleted
	// StateCancelled means the scan was cancelled before completion.
	StateCancelled
	// StateFailed means the root itself could not be read.
	StateFailed
)

// String returns the lowercase name of the session status.
func (s SessionStatus) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (s SessionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Summary holds the final aggregate of a scan. It is valid once the
// session's Done channel is closed.
type Summary struct {
	// TotalBytes is the cumulative size of all counted files.
	TotalBytes int64 `json:"total_bytes"`
	// TotalItems is the number of resolved entries.
	TotalItems int64 `json:"total_items"`
	// ErrorCount is the number of per-entry errors encountered.
	ErrorCount int64 `json:"error_count"`
	// Status is the terminal session status.
	Status SessionStatus `json:"status"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
}

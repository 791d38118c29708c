package scan

import (
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/fjellheim/treedu/internal/logging"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// defaultBufferSize is the default capacity of the results channel.
const defaultBufferSize = 128

// Options configures a scan session.
type Options struct {
	// Concurrency is the maximum number of simultaneously in-flight
	// filesystem operations (0 = derived from available I/O parallelism).
	Concurrency int
	// FollowSymlinks descends symlinked directories whose resolved target
	// stays inside the scan root. Off by default. Sizes are attributed per
	// path, so a directory reachable both directly and through a followed
	// link is counted under each path it appears at.
	FollowSymlinks bool
	// IncludeHidden includes entries whose name starts with a dot.
	// Hidden entries are skipped by default.
	IncludeHidden bool
	// Excludes contains glob patterns matched against slash paths.
	// Matching directories are not descended; matching files not counted.
	Excludes []string
	// MaxDepth caps the depth of emitted entries (0 = unlimited).
	// Aggregation always runs to the leaves regardless of the cap.
	MaxDepth int
	// BufferSize is the capacity of the results channel (0 = default).
	BufferSize int
	// Progress is invoked periodically with the running item and byte
	// counts. Optional.
	Progress func(items, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug output. A nil logger discards everything.
	Logger *logging.Logger
}

// concurrency returns the effective worker limit.
func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}

	return fastwalk.DefaultNumWorkers()
}

// bufferSize returns the effective results channel capacity.
func (o Options) bufferSize() int {
	if o.BufferSize > 0 {
		return o.BufferSize
	}

	return defaultBufferSize
}

// Package scan implements a concurrent recursive directory-size engine.
//
// A Session walks a directory tree with a bounded pool of workers,
// aggregates file sizes into their ancestor directories, and streams
// finalized entries to the caller as they resolve. Per-entry I/O errors
// are isolated to their subtree; only an unreadable root fails a scan.
package scan

package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fjellheim/treedu/internal/logging"
)

// scheduler dispatches directory tasks with bounded concurrency and folds
// child results into parent totals through the pending-children countdown.
// Cancellation is cooperative: it is observed at task-dispatch boundaries,
// never mid-syscall.
type scheduler struct {
	ctx      context.Context
	sem      chan struct{}
	wg       sync.WaitGroup
	filter   *filter
	out      chan Entry
	maxDepth int
	log      *logging.Logger

	totalBytes atomic.Int64
	totalItems atomic.Int64
	errorCount atomic.Int64
}

// newScheduler creates a scheduler emitting resolved entries on out.
func newScheduler(ctx context.Context, flt *filter, out chan Entry, opts Options) *scheduler {
	return &scheduler{
		ctx:      ctx,
		sem:      make(chan struct{}, opts.concurrency()),
		filter:   flt,
		out:      out,
		maxDepth: opts.MaxDepth,
		log:      opts.Logger,
	}
}

// acquire takes a worker slot. It refuses once cancellation is observed,
// so no new filesystem read starts after that point.
func (s *scheduler) acquire() bool {
	if s.ctx.Err() != nil {
		return false
	}

	select {
	case s.sem <- struct{}{}:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// release frees a worker slot.
func (s *scheduler) release() { <-s.sem }

// spawn enqueues the directory task for a node.
func (s *scheduler) spawn(n *node) {
	s.wg.Add(1)

	go s.runDir(n)
}

// runDir processes one directory: list its children in a single read,
// classify each child, spawn tasks for subdirectories, then release the
// node's listing token.
func (s *scheduler) runDir(n *node) {
	defer s.wg.Done()

	if !s.acquire() {
		n.cancelled = true
		s.resolve(n)

		return
	}

	entries, err := os.ReadDir(n.path)
	if err != nil {
		n.err = classify(err)

		// A partially read listing still resolves the children we got;
		// a fully failed one fails the node itself.
		if len(entries) == 0 {
			n.failed = true
		} else {
			n.partial = true
		}

		s.log.Debugf("reading %s: %v", n.path, err)
	}

	var subdirs []*node

	for _, de := range entries {
		if s.ctx.Err() != nil {
			n.cancelled = true

			break
		}

		s.processChild(n, de, &subdirs)
	}

	s.release()

	// Subdirectory tasks run outside this node's worker slot; their
	// completion is tracked by the pending countdown, not by waiting.
	for _, child := range subdirs {
		s.spawn(child)
	}

	s.resolve(n)
}

// processChild classifies one listed entry. Files resolve immediately;
// subdirectories are registered on the parent and handed back for
// spawning after the listing slot is released.
func (s *scheduler) processChild(n *node, de fs.DirEntry, subdirs *[]*node) {
	name := de.Name()
	path := filepath.Join(n.path, name)
	depth := n.depth + 1

	if s.filter.skip(path, name) {
		s.log.Debugf("skipping %s", path)

		return
	}

	res := probeChild(de)
	if res.kind == KindSymlink && s.filter.followSymlinks {
		res = probeSymlink(path, s.filter)
	}

	switch {
	case res.err != nil:
		n.childFailed.Store(true)
		s.emit(Entry{Path: path, Name: name, Kind: res.kind, Depth: depth, Status: StatusFailed, Err: res.err})
	case res.kind == KindDir:
		child := newNode(n, path, name, depth)
		n.pending.Add(1)
		*subdirs = append(*subdirs, child)
	default:
		n.size.Add(res.size)
		s.totalBytes.Add(res.size)
		s.emit(Entry{Path: path, Name: name, Kind: res.kind, Size: res.size, Depth: depth, Status: StatusDone})
	}
}

// resolve releases one pending unit on the node and finalizes it when all
// children have resolved.
func (s *scheduler) resolve(n *node) {
	if n.pending.Add(-1) == 0 {
		s.finalize(n)
	}
}

// finalize reports a fully resolved node and folds its aggregate into the
// parent. The cascade runs in whichever worker resolved the last child,
// so a parent may finalize on a different goroutine than the one that
// listed it.
func (s *scheduler) finalize(n *node) {
	st := n.status()

	p := n.parent
	if p == nil {
		// The root is reported through the session summary, not the
		// stream; only its own read error needs accounting here.
		if n.err != nil {
			s.errorCount.Add(1)
		}

		return
	}

	if st != StatusCancelled {
		s.emit(n.entry())
	}

	switch st {
	case StatusCancelled:
		p.childCancelled.Store(true)
	case StatusFailed:
		p.childFailed.Store(true)
	case StatusPartiallyFailed:
		p.childFailed.Store(true)
		p.size.Add(n.size.Load())
	default:
		p.size.Add(n.size.Load())
	}

	if p.pending.Add(-1) == 0 {
		s.finalize(p)
	}
}

// emit accounts for a resolved entry and forwards it to the stream.
// Entries deeper than the emission cap are counted but not forwarded,
// and nothing is forwarded after cancellation.
func (s *scheduler) emit(e Entry) {
	s.totalItems.Add(1)

	if e.Err != nil {
		s.errorCount.Add(1)
	}

	if s.maxDepth > 0 && e.Depth > s.maxDepth {
		return
	}

	select {
	case s.out <- e:
	case <-s.ctx.Done():
	}
}

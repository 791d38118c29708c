package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fjellheim/treedu/internal/logging"
)

// Session is a single scan invocation over a root directory. It owns the
// scheduler and the tree of accumulators for its run; nothing is shared
// across sessions. Entries stream on Results while the scan runs, and the
// final Summary is available once Done is closed.
type Session struct {
	id     uuid.UUID
	root   string
	opts   Options
	filter *filter
	log    *logging.Logger

	status    atomic.Int32
	cancelled atomic.Bool

	// mu guards the ctx/cancel handoff between Start and a concurrent
	// Cancel; everything else is atomic or single-writer.
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	sched *scheduler
	out   chan Entry
	done  chan struct{}

	started time.Time
	summary Summary
}

// NewSession prepares a scan of root. Exclusion patterns are compiled
// here so invalid options fail before any I/O happens.
func NewSession(root string, opts Options) (*Session, error) {
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	flt, err := newFilter(abs, opts)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:     uuid.New(),
		root:   abs,
		opts:   opts,
		filter: flt,
		log:    opts.Logger,
		out:    make(chan Entry, opts.bufferSize()),
		done:   make(chan struct{}),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Root returns the absolute root path being scanned.
func (s *Session) Root() string { return s.root }

// Status returns the current lifecycle state.
func (s *Session) Status() SessionStatus {
	return SessionStatus(s.status.Load())
}

// Start validates the root and launches the scan, returning immediately.
// An unreadable or non-directory root fails the session outright and no
// partial tree is produced.
func (s *Session) Start(ctx context.Context) error {
	if !s.status.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	if err := probeRoot(s.root); err != nil {
		s.summary = Summary{Status: StateFailed}
		s.status.Store(int32(StateFailed))
		close(s.out)
		close(s.done)

		return err
	}

	s.started = time.Now()

	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if s.cancelled.Load() {
		s.cancel()
	}

	s.sched = newScheduler(s.ctx, s.filter, s.out, s.opts)

	go s.run()

	return nil
}

// Cancel requests cooperative cancellation. It is idempotent, safe to
// call from any goroutine at any time, and cannot be undone. Consumers
// that stop reading Results early must call it so producers can exit.
func (s *Session) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	// Start may not have installed the context yet; it checks the
	// cancelled flag after doing so and cancels on our behalf.
	if cancel != nil {
		cancel()
	}
}

// Results returns the stream of resolved entries. Files arrive as they
// are probed; a directory arrives only once its whole subtree resolved.
// The channel closes when the scan finishes or is cancelled.
func (s *Session) Results() <-chan Entry { return s.out }

// Done is closed once the session reached a terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

// Summary returns the final aggregate. Before the session finishes it
// carries only the current status.
func (s *Session) Summary() Summary {
	select {
	case <-s.done:
		return s.summary
	default:
		return Summary{Status: s.Status()}
	}
}

// Wait blocks until the scan finishes or ctx expires.
func (s *Session) Wait(ctx context.Context) (Summary, error) {
	select {
	case <-s.done:
		return s.summary, nil
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	}
}

// run drives the scheduler to completion and records the summary.
func (s *Session) run() {
	defer close(s.done)
	defer close(s.out)
	defer s.cancel()

	s.log.Debugf("session %s: scanning %s with %d workers", s.id, s.root, s.opts.concurrency())

	stopProgress := s.startProgressReporter()

	root := newNode(nil, s.root, filepath.Base(s.root), 0)
	s.sched.spawn(root)
	s.sched.wg.Wait()
	stopProgress()

	st := StateCompleted

	switch {
	case s.cancelled.Load() || root.status() == StatusCancelled:
		st = StateCancelled
	case root.status() == StatusFailed:
		st = StateFailed
	}

	s.summary = Summary{
		TotalBytes: s.sched.totalBytes.Load(),
		TotalItems: s.sched.totalItems.Load(),
		ErrorCount: s.sched.errorCount.Load(),
		Status:     st,
		Elapsed:    time.Since(s.started),
	}
	s.status.Store(int32(st))

	s.log.Debugf("session %s: %s, %d items, %d bytes, %d errors",
		s.id, st, s.summary.TotalItems, s.summary.TotalBytes, s.summary.ErrorCount)
}

// startProgressReporter invokes the progress hook on each tick until the
// scan finishes. The returned stop function is safe to call once.
func (s *Session) startProgressReporter() func() {
	hook := s.opts.Progress
	if hook == nil {
		return func() {}
	}

	interval := s.opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	stop := make(chan struct{})

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(s.sched.totalItems.Load(), s.sched.totalBytes.Load())
			case <-stop:
				return
			case <-s.ctx.Done():
				return
			}
		}
	}()

	return func() { close(stop) }
}

// Collect runs a whole scan and gathers the streamed entries. It is the
// convenience path for callers that do not need progressive consumption.
func Collect(ctx context.Context, root string, opts Options) ([]Entry, Summary, error) {
	sess, err := NewSession(root, opts)
	if err != nil {
		return nil, Summary{}, err
	}

	if err := sess.Start(ctx); err != nil {
		return nil, sess.Summary(), err
	}

	var entries []Entry
	for e := range sess.Results() {
		entries = append(entries, e)
	}

	<-sess.Done()

	return entries, sess.Summary(), nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/fjellheim/treedu/internal/history"
	"github.com/fjellheim/treedu/internal/logging"
	"github.com/fjellheim/treedu/internal/scan"
)

func logic(opts options) error {
	logger := logging.NewLogger(os.Stderr)
	if opts.debug {
		logger.EnableDebug()
	}

	// History is best effort: a missing or broken database never blocks
	// a scan.
	store, err := history.Open()
	if err != nil {
		logger.Debugf("history unavailable: %v", err)

		store = nil
	} else {
		defer store.Close()
	}

	root, err := normalizeRoot(opts.path)
	if err != nil {
		return err
	}

	// Listing history touches no filesystem tree, so it runs before any
	// progress machinery takes over stderr.
	if opts.history {
		return showHistory(root, store)
	}

	scanOpts := scan.Options{
		Concurrency:    opts.concurrency,
		FollowSymlinks: opts.followSymlinks,
		IncludeHidden:  opts.hidden,
		Excludes:       opts.excludes,
		MaxDepth:       opts.depth,
		Logger:         logger,
	}

	enableProgress := opts.output != "json" &&
		!opts.debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		scanOpts.Progress = func(items, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d items, %s",
				items, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
		scanOpts.ProgressInterval = 100 * time.Millisecond
	}

	sess, err := scan.NewSession(opts.path, scanOpts)
	if err != nil {
		return err
	}

	var previous *history.Record

	if store != nil {
		previous, err = store.Latest(sess.Root())
		if err != nil {
			logger.Debugf("reading history: %v", err)
		}
	}

	ctx := context.Background()

	if opts.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := sess.Start(ctx); err != nil {
		return err
	}

	entries := make([]scan.Entry, 0, 1024)
	for e := range sess.Results() {
		entries = append(entries, e)
	}

	<-sess.Done()
	summary := sess.Summary()

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if store != nil && !opts.noHistory && summary.Status == scan.StateCompleted {
		rec := history.Record{
			Root:       sess.Root(),
			SessionID:  sess.ID().String(),
			TotalBytes: summary.TotalBytes,
			TotalItems: summary.TotalItems,
			ErrorCount: summary.ErrorCount,
			Elapsed:    summary.Elapsed,
			ScannedAt:  time.Now(),
		}
		if err := store.Add(rec); err != nil {
			logger.Debugf("recording history: %v", err)
		}
	}

	listing := buildListing(entries, opts.minSize, opts.top)
	report := buildReport(sess.Root(), listing, summary, previous)

	switch opts.output {
	case "json":
		return PrintJSON(report, os.Stdout)
	case "table":
		return PrintTable(report, os.Stdout)
	default:
		return fmt.Errorf("unknown output format: %s", opts.output)
	}
}

// normalizeRoot resolves a path the same way a session does, so history
// lookups hit the rows recorded under the session's root.
func normalizeRoot(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	return abs, nil
}

// showHistory prints prior scans of root and exits.
func showHistory(root string, store *history.Store) error {
	if store == nil {
		return fmt.Errorf("history database is unavailable")
	}

	records, err := store.List(root, 20)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	return PrintHistory(root, records, os.Stdout)
}

// Package history persists per-root scan summaries in a local sqlite
// database so later runs can show what changed. Only summaries are
// stored, never the scanned tree itself.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one completed scan of a root.
type Record struct {
	Root       string
	SessionID  string
	TotalBytes int64
	TotalItems int64
	ErrorCount int64
	Elapsed    time.Duration
	ScannedAt  time.Time
}

// Store wraps the sqlite database holding scan records.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root TEXT NOT NULL,
    session_id TEXT NOT NULL,
    total_bytes INTEGER NOT NULL,
    total_items INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    scanned_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS scans_root_time ON scans (root, scanned_at);
`

// Open opens the default store under the user cache directory.
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	dir := filepath.Join(home, ".cache", "treedu")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return OpenAt(filepath.Join(dir, "history.db"))
}

// OpenAt opens a store at an explicit database path.
func OpenAt(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	db.Exec(`PRAGMA journal_mode=WAL;`)
	db.Exec(`PRAGMA synchronous=NORMAL;`)
	db.Exec(`PRAGMA busy_timeout=5000;`)

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Add appends a scan record.
func (s *Store) Add(rec Record) error {
	query := `
        INSERT INTO scans (root, session_id, total_bytes, total_items, error_count, elapsed_ms, scanned_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.Exec(query,
		rec.Root, rec.SessionID, rec.TotalBytes, rec.TotalItems,
		rec.ErrorCount, rec.Elapsed.Milliseconds(), rec.ScannedAt.Unix())

	return err
}

// Latest returns the most recent record for root, or nil when none exists.
func (s *Store) Latest(root string) (*Record, error) {
	row := s.db.QueryRow(`
        SELECT root, session_id, total_bytes, total_items, error_count, elapsed_ms, scanned_at
        FROM scans WHERE root = ? ORDER BY scanned_at DESC, id DESC LIMIT 1
    `, root)

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// List returns up to limit records for root, newest first.
func (s *Store) List(root string, limit int) ([]Record, error) {
	rows, err := s.db.Query(`
        SELECT root, session_id, total_bytes, total_items, error_count, elapsed_ms, scanned_at
        FROM scans WHERE root = ? ORDER BY scanned_at DESC, id DESC LIMIT ?
    `, root, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record

	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, *rec)
	}

	return records, rows.Err()
}

// scanRecord reads one row through the given scan function.
func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var (
		rec       Record
		elapsedMs int64
		scannedAt int64
	)

	if err := scan(&rec.Root, &rec.SessionID, &rec.TotalBytes, &rec.TotalItems,
		&rec.ErrorCount, &elapsedMs, &scannedAt); err != nil {
		return nil, err
	}

	rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	rec.ScannedAt = time.Unix(scannedAt, 0)

	return &rec, nil
}

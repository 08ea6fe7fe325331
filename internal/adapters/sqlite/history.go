package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

const schemaVersion = "1"

// History implements ports.RunHistory using SQLite
type History struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure History implements RunHistory
var _ ports.RunHistory = (*History)(nil)

// NewHistory creates a new SQLite run history
func NewHistory() *History {
	return &History{now: time.Now}
}

// Open creates or opens the database at dbPath. The path is used as given.
func (h *History) Open(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("history database path is required")
	}
	h.dbPath = dbPath

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			catalog_path TEXT NOT NULL,
			entry_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS entries (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			identifier TEXT NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_identifier ON entries(identifier);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record stores a saved catalog and all its entries in one transaction
func (h *History) Record(catalog *domain.Catalog, catalogPath string) (*ports.Run, error) {
	if h.db == nil {
		return nil, fmt.Errorf("history is not open")
	}

	run := &ports.Run{
		Root:        catalog.Root,
		CatalogPath: catalogPath,
		EntryCount:  catalog.Len(),
		CreatedAt:   h.now().UTC().Truncate(time.Second),
	}

	tx, err := h.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (root, catalog_path, entry_count, created_at)
		VALUES (?, ?, ?, ?)
	`, run.Root, run.CatalogPath, run.EntryCount, run.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (run_id, position, identifier, path) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i, e := range catalog.Entries {
		if _, err := stmt.Exec(run.ID, i, e.Identifier, e.Path); err != nil {
			return nil, fmt.Errorf("failed to insert entry %s: %w", e.Identifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (h *History) ListRuns(limit int) ([]ports.Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.Query(`
		SELECT id, root, catalog_path, entry_count, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ports.Run
	for rows.Next() {
		var r ports.Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Root, &r.CatalogPath, &r.EntryCount, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunEntries returns the entries of one run in their original order
func (h *History) RunEntries(runID int64) ([]domain.Entry, error) {
	rows, err := h.db.Query(`
		SELECT identifier, path
		FROM entries WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Identifier, &e.Path); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

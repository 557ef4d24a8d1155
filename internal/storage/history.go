package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// History records run summaries in a local sqlite database so past
// runs can be inspected after the JSON output has been overwritten.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	total INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	duration_seconds REAL NOT NULL
);`

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Record appends one run's metadata.
func (h *History) Record(meta RunMeta) error {
	_, err := h.db.Exec(
		`INSERT INTO runs (timestamp, total, passed, failed, duration_seconds) VALUES (?, ?, ?, ?, ?)`,
		meta.Timestamp, meta.TotalTests, meta.PassedTests, meta.FailedTests, meta.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(limit int) ([]RunMeta, error) {
	rows, err := h.db.Query(
		`SELECT timestamp, total, passed, failed, duration_seconds FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.Timestamp, &m.TotalTests, &m.PassedTests, &m.FailedTests, &m.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

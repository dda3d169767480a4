// ABOUTME: SQLite-backed pipeline library for saving and reopening named pipelines.
// ABOUTME: Stores serialized pipeline snapshots keyed by name with upsert semantics.
package editor

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flumeworks/flume/flow"
)

// LibraryEntry is a summary row for library listings.
type LibraryEntry struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

// Library persists pipeline snapshots in a SQLite database so saved
// pipelines survive server restarts and session eviction.
type Library struct {
	db *sql.DB
}

// OpenLibrary opens or creates the library database at the given path.
func OpenLibrary(path string) (*Library, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS pipelines (
			name TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the library database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save upserts a snapshot under the given name.
func (l *Library) Save(name string, snap *flow.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = l.db.Exec(
		`INSERT INTO pipelines (name, snapshot, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		name,
		string(data),
		time.Now().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert pipeline: %w", err)
	}
	return nil
}

// Load returns the snapshot saved under name.
func (l *Library) Load(name string) (*flow.Snapshot, error) {
	var data string
	err := l.db.QueryRow("SELECT snapshot FROM pipelines WHERE name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pipeline %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("query pipeline: %w", err)
	}
	var snap flow.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// List returns all saved pipelines, most recently updated first.
func (l *Library) List() ([]LibraryEntry, error) {
	rows, err := l.db.Query(
		"SELECT name, updated_at FROM pipelines ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query pipelines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []LibraryEntry
	for rows.Next() {
		var e LibraryEntry
		if err := rows.Scan(&e.Name, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a saved pipeline and reports whether it existed.
func (l *Library) Delete(name string) (bool, error) {
	res, err := l.db.Exec("DELETE FROM pipelines WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("delete pipeline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete pipeline: %w", err)
	}
	return n > 0, nil
}

package pccache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite is an on-disk response cache backed by a single SQLite table.
// Lookups that hit any storage error behave as cache misses so a
// corrupt cache file degrades to plain network access.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) a SQLite response cache at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "pubchem_cache.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("pccache: create cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("pccache: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pccache: create responses table: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Get returns the stored body for key, if any.
func (s *SQLite) Get(key string) ([]byte, bool) {
	if s == nil || s.db == nil {
		return nil, false
	}
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM responses WHERE url = ?`, key).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores body under key, replacing any previous entry.
func (s *SQLite) Set(key string, body []byte) {
	if s == nil || s.db == nil {
		return
	}
	_, _ = s.db.Exec(
		`INSERT INTO responses (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key, body, time.Now().Unix(),
	)
}

// Clear removes every cached response but keeps the database file.
func (s *SQLite) Clear() error {
	if s == nil || s.db == nil {
		return errors.New("pccache: sqlite cache not initialized")
	}
	if _, err := s.db.Exec(`DELETE FROM responses`); err != nil {
		return fmt.Errorf("pccache: clear responses: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

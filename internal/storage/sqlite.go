package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteMedium stores keys in a single SQLite table.
type SQLiteMedium struct {
	db   *sql.DB
	path string
}

// NewSQLiteMedium opens or creates the database at dir/store.db.
func NewSQLiteMedium(dir string) (*SQLiteMedium, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	dbPath := filepath.Join(dir, "store.db")

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	medium := &SQLiteMedium{
		db:   db,
		path: dbPath,
	}

	if err := medium.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return medium, nil
}

// initialize creates the required tables if they don't exist.
func (s *SQLiteMedium) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the value stored for key.
func (s *SQLiteMedium) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (s *SQLiteMedium) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *SQLiteMedium) Remove(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *SQLiteMedium) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Path returns the database file path.
func (s *SQLiteMedium) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteMedium) Close() error {
	return s.db.Close()
}

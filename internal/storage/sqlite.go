package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
)

const flagsSchema = `
CREATE TABLE IF NOT EXISTS tour_flags (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// OpenDB opens (and creates if needed) the engine's SQLite database.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}
	return db, nil
}

// SQLiteStore persists flags in a tour_flags table. Shares a database handle
// with the telemetry repository.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the store and bootstraps its schema.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	if _, err := db.Exec(flagsSchema); err != nil {
		return nil, fmt.Errorf("create tour_flags table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM tour_flags WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger := logging.Component("storage")
			logger.Debug().Err(err).Str("key", key).Msg("flag read failed; treating as absent")
		}
		return "", false
	}
	return value, true
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tour_flags (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write flag %s: %w", key, err)
	}
	return nil
}

// Remove implements Store.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tour_flags WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove flag %s: %w", key, err)
	}
	return nil
}

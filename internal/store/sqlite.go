// internal/store/sqlite.go
//
// SQLite Backend: the record blob is one row of the kv table created by the
// sqlitedb migrations.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteBackend stores the record blob in kv under Key.
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

// NewSQLiteBackend returns a backend using db (opened via sqlitedb.Open).
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db, key: StorageKey}
}

// Read returns the blob row, or ErrNoData when the row is absent.
func (s *SQLiteBackend) Read(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, s.key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("select kv %s: %w", s.key, err)
	}
	return blob, nil
}

// Write upserts the blob row.
func (s *SQLiteBackend) Write(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		s.key, blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert kv %s: %w", s.key, err)
	}
	return nil
}

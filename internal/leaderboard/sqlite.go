// internal/leaderboard/sqlite.go
//
// SQLite Store over the scores table (see sqlitedb migrations).

package leaderboard

import (
	"context"
	"database/sql"
	"time"
)

// createdLayout is fixed width so created_at strings sort chronologically.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore persists scores in SQLite.
type SQLStore struct{ db *sql.DB }

// NewSQLStore returns a Store using db (opened via sqlitedb.Open).
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Insert(ctx context.Context, sc Score) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores(id, username, guesses, time_seconds, puzzle_date, created_at)
VALUES(?,?,?,?,?,?)`,
		sc.ID, sc.Username, sc.Guesses, sc.TimeSeconds, sc.PuzzleDate, sc.CreatedAt.UTC().Format(createdLayout),
	)
	return err
}

func (s *SQLStore) ListByDate(ctx context.Context, date string, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, guesses, time_seconds, puzzle_date, created_at
FROM scores
WHERE puzzle_date=?
ORDER BY guesses ASC, time_seconds ASC, created_at ASC, rowid ASC
LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Score, 0, limit)
	for rows.Next() {
		var sc Score
		var created string
		if err := rows.Scan(&sc.ID, &sc.Username, &sc.Guesses, &sc.TimeSeconds, &sc.PuzzleDate, &created); err != nil {
			return nil, err
		}
		sc.CreatedAt, _ = time.Parse(createdLayout, created)
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteDate(ctx context.Context, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scores WHERE puzzle_date=?`, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT puzzle_date FROM scores ORDER BY puzzle_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

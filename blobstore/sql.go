package blobstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQL stores versioned blobs in a single table, one row per key. Works
// against both sqlite and postgres through database/sql; the schema below is
// valid for either. Blob contents are line-oriented UTF-8, so they are kept
// in a TEXT column.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// EnsureSchema creates the blob table. Safe to call multiple times.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create blob schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS blob (
    key TEXT PRIMARY KEY,
    generation BIGINT NOT NULL,
    data TEXT NOT NULL
);
`

func (s *SQL) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var data string
	var generation int64
	err := s.db.QueryRowContext(ctx, `
		SELECT data, generation FROM blob WHERE key = $1
	`, key).Scan(&data, &generation)

	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return []byte(data), generation, nil
}

func (s *SQL) PutIfGeneration(ctx context.Context, key string, expected int64, data []byte) (int64, error) {
	if expected == 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO blob (key, generation, data) VALUES ($1, 1, $2)
		`, key, string(data))
		if err != nil {
			if isUniqueViolation(err) {
				// Someone created the blob since the caller's read.
				return 0, ErrConflict
			}
			return 0, fmt.Errorf("%w: create %s: %v", ErrUnavailable, key, err)
		}
		return 1, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE blob SET data = $1, generation = generation + 1
		WHERE key = $2 AND generation = $3
	`, string(data), key, expected)
	if err != nil {
		return 0, fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}
	if n == 0 {
		return 0, ErrConflict
	}
	return expected + 1, nil
}

// isUniqueViolation matches the primary-key violation messages of both
// supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

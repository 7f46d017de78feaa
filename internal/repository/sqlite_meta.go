package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/planscope/planscope/internal/db"
)

// SQLiteMetaRepo implements MetaRepo using the app_meta key/value table.
type SQLiteMetaRepo struct {
	q db.DBTX
}

// NewSQLiteMetaRepo creates a meta repo over the given DBTX.
func NewSQLiteMetaRepo(q db.DBTX) *SQLiteMetaRepo {
	return &SQLiteMetaRepo{q: q}
}

// Get returns the stored value, or "" when the key is absent.
func (r *SQLiteMetaRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.q.QueryRowContext(ctx, `SELECT value FROM app_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for the key.
func (r *SQLiteMetaRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO app_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.q.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

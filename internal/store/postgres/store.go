// Package postgres implements the record store on a single Postgres table.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/observability"
)

// Store keeps each logical key as one JSONB row in the records table.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	started := time.Now()
	defer func() { observability.ObserveStoreOperation("get", started, err) }()

	row := s.pool.QueryRow(ctx, `SELECT value FROM records WHERE key = $1`, key)
	if err = row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set implements store.Store.
func (s *Store) Set(ctx context.Context, key string, value []byte) (err error) {
	started := time.Now()
	defer func() { observability.ObserveStoreOperation("set", started, err) }()

	const stmt = `INSERT INTO records (key, value, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err = s.pool.Exec(ctx, stmt, key, value)
	return err
}

// Remove implements store.Store.
func (s *Store) Remove(ctx context.Context, key string) (err error) {
	started := time.Now()
	defer func() { observability.ObserveStoreOperation("remove", started, err) }()

	_, err = s.pool.Exec(ctx, `DELETE FROM records WHERE key = $1`, key)
	return err
}

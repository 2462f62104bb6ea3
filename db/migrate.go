// Package db embeds the Postgres schema and applies pending migrations.
package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS migrations (
    migration   TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Files lists the embedded migration file names in apply order.
func Files() ([]string, error) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		names[i] = path.Base(name)
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every embedded migration not yet recorded in the
// migrations table. Each file and its record insert share one transaction.
// It returns the names of the files it applied.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := pool.Query(ctx, `SELECT migration FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		applied[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	files, err := Files()
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, name := range files {
		if applied[name] {
			continue
		}
		contents, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return ran, err
		}
		if err := applyOne(ctx, pool, name, string(contents)); err != nil {
			return ran, err
		}
		ran = append(ran, name)
	}
	return ran, nil
}

func applyOne(ctx context.Context, pool *pgxpool.Pool, name, contents string) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, contents); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO migrations (migration, description) VALUES ($1, $2)`, name, describe(name)); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return tx.Commit(ctx)
}

// describe turns "0002_notification_dlq.up.sql" into "notification dlq".
func describe(name string) string {
	name = strings.TrimSuffix(name, ".sql")
	name = strings.TrimSuffix(name, ".up")
	if _, rest, ok := strings.Cut(name, "_"); ok {
		name = rest
	}
	return strings.ReplaceAll(name, "_", " ")
}

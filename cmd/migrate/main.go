// Applies pending migrations from db/migrations to POSTGRES_URL.
// Already-applied files are skipped; each file runs in its own transaction.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/db"
	"example.com/fittrack/internal/config"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if len(applied) == 0 {
		fmt.Println("Nothing to migrate.")
		return
	}
	for _, name := range applied {
		fmt.Printf("  applied: %s\n", name)
	}
	fmt.Printf("%d migration(s) applied.\n", len(applied))
}

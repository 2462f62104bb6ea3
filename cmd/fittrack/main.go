// Command fittrack logs training, sport, food and supplement intake and
// reports on them. Reminders are re-armed after every change that affects
// them.
//
// Usage: fittrack <command> [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/app"
	"example.com/fittrack/internal/config"
	"example.com/fittrack/internal/notify"
	"example.com/fittrack/internal/reminder"
	"example.com/fittrack/internal/repository"
	"example.com/fittrack/internal/store"
	"example.com/fittrack/internal/store/memory"
	"example.com/fittrack/internal/store/postgres"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, closeFn, err := build(ctx, cfg)
	if err != nil {
		log.Fatalf("fittrack: %v", err)
	}
	defer closeFn()

	if err := run(ctx, a, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "fittrack: %v\n", err)
		closeFn()
		os.Exit(1)
	}
}

func build(ctx context.Context, cfg config.Config) (*app.App, func(), error) {
	var (
		s       store.Store
		host    reminder.Host
		closeFn = func() {}
	)
	switch cfg.StoreBackend {
	case config.BackendMemory:
		s = memory.New()
		host = notify.NewMemoryHost(cfg.NotificationsEnabled)
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		s = postgres.New(pool)
		host = notify.NewPostgresHost(pool, cfg.NotificationsEnabled)
		closeFn = pool.Close
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	policy := reminder.Policy{Reinforcements: cfg.ReminderReinforcements, Interval: cfg.ReminderInterval}
	a := app.New(repository.New(s), host, policy,
		app.WithLocation(cfg.Location),
		app.WithLogger(log.New(os.Stderr, "[fittrack] ", 0)),
	)
	return a, closeFn, nil
}

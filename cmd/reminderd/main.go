package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/config"
	"example.com/fittrack/internal/notify"
	"example.com/fittrack/internal/reminder"
	"example.com/fittrack/internal/repository"
	"example.com/fittrack/internal/store/postgres"
	httptransport "example.com/fittrack/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := repository.New(postgres.New(pool))
	host := notify.NewPostgresHost(pool, cfg.NotificationsEnabled)
	scheduler := reminder.NewScheduler(host, repo,
		reminder.WithPolicy(reminder.Policy{Reinforcements: cfg.ReminderReinforcements, Interval: cfg.ReminderInterval}),
		reminder.WithLocation(cfg.Location),
	)

	producer := notify.NewKafkaProducer(cfg.KafkaBrokers)
	defer producer.Close()

	// A reminder more than a day late belongs to a day that has already been re-armed.
	dispatcher := notify.NewDispatcher(pool, producer, cfg.ReminderTopic,
		cfg.DispatchPollInterval, cfg.DispatchBatchSize, cfg.DispatchMaxAttempts, cfg.DispatchBaseDelay,
		notify.WithMaxLateness(24*time.Hour),
	)
	go dispatcher.Start(ctx)

	daily := make(chan struct{})
	go func() {
		defer close(daily)
		scheduler.RunDaily(ctx)
	}()

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.MetricsAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.OpsHandler(map[string]httptransport.Check{"postgres": pool.Ping}))

	go func() {
		log.Printf("reminderd listening on %s (topic=%s, zone=%s)", cfg.MetricsAddress, cfg.ReminderTopic, cfg.Location)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownCh
	log.Println("reminderd shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	dispatcher.Wait()
	<-daily
}

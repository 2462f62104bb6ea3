package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"

	"example.com/fittrack/internal/events"
	"example.com/fittrack/internal/reminder"
)

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// Reasons recorded when a reminder is abandoned.
const (
	ReasonExhausted = "retries_exhausted"
	ReasonStale     = "stale"
	ReasonMalformed = "malformed_payload"
)

// Dispatcher publishes due reminders from scheduled_notifications to Kafka.
// Failed deliveries are retried with exponential backoff; once maxAttempts
// is reached the row is copied to notification_dlq and abandoned.
type Dispatcher struct {
	queue            queue
	producer         messageWriter
	topic            string
	pollInterval     time.Duration
	batchSize        int
	maxAttempts      int
	baseDelay        time.Duration
	maxLateness      time.Duration
	now              func() time.Time
	logger           *log.Logger
	shutdownComplete chan struct{}
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMaxLateness abandons reminders whose fire time is older than lateness
// instead of delivering them. Zero disables the check.
func WithMaxLateness(lateness time.Duration) Option {
	return func(d *Dispatcher) {
		d.maxLateness = lateness
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher constructs a Dispatcher over pool.
func NewDispatcher(pool *pgxpool.Pool, producer messageWriter, topic string, pollInterval time.Duration, batchSize, maxAttempts int, baseDelay time.Duration, opts ...Option) *Dispatcher {
	q := &pgQueue{pool: pool, claimTimeout: 5 * time.Minute}
	return newDispatcher(q, producer, topic, pollInterval, batchSize, maxAttempts, baseDelay, opts...)
}

func newDispatcher(q queue, producer messageWriter, topic string, pollInterval time.Duration, batchSize, maxAttempts int, baseDelay time.Duration, opts ...Option) *Dispatcher {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 25
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseDelay <= 0 {
		baseDelay = 30 * time.Second
	}
	d := &Dispatcher{
		queue:            q,
		producer:         producer,
		topic:            topic,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		maxAttempts:      maxAttempts,
		baseDelay:        baseDelay,
		now:              time.Now,
		logger:           log.New(os.Stdout, "[dispatcher] ", log.LstdFlags),
		shutdownComplete: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the polling loop. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		if err := d.processBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Printf("dispatch error: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait waits until the dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	start := time.Now()
	now := d.now().UTC()

	due, err := d.queue.claim(ctx, now, d.batchSize)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	if len(due) == 0 {
		return nil
	}
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	var (
		delivered []string
		errs      error
	)
	for _, item := range due {
		if d.maxLateness > 0 && now.Sub(item.FireAt) > d.maxLateness {
			errs = errors.Join(errs, d.abandon(ctx, item, ReasonStale, nil))
			continue
		}

		msg, err := d.message(item, now)
		if err != nil {
			errs = errors.Join(errs, d.abandon(ctx, item, ReasonMalformed, err))
			continue
		}

		if err := d.producer.WriteMessages(ctx, d.topic, msg); err != nil {
			d.logger.Printf("deliver %s (supplement=%s seq=%d): %v", item.Handle, item.SupplementID, item.Sequence, err)
			errs = errors.Join(errs, d.fail(ctx, item, now, err))
			continue
		}
		delivered = append(delivered, item.Handle)
	}

	if err := d.queue.markDelivered(ctx, delivered); err != nil {
		errs = errors.Join(errs, err)
	} else {
		deliveredCounter.Add(float64(len(delivered)))
	}
	return errs
}

func (d *Dispatcher) message(item Due, now time.Time) (kafka.Message, error) {
	var payload reminder.Payload
	if err := json.Unmarshal(item.Payload, &payload); err != nil {
		return kafka.Message{}, err
	}
	event := events.ReminderDue{
		Handle:         item.Handle,
		SupplementID:   item.SupplementID,
		SupplementName: payload.SupplementName,
		Title:          payload.Title,
		Body:           payload.Body,
		Sequence:       item.Sequence,
		FireAt:         item.FireAt.UTC(),
		PublishedAt:    now,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(item.SupplementID),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.TypeReminderDue)},
			{Key: "handle", Value: []byte(item.Handle)},
		},
	}, nil
}

func (d *Dispatcher) fail(ctx context.Context, item Due, now time.Time, cause error) error {
	attempt := item.Attempts + 1
	if attempt >= d.maxAttempts {
		return d.abandon(ctx, item, ReasonExhausted, cause)
	}
	retryCounter.Inc()
	return d.queue.scheduleRetry(ctx, item, now.Add(d.backoffDelay(attempt)), cause.Error())
}

func (d *Dispatcher) abandon(ctx context.Context, item Due, reason string, cause error) error {
	detail := reason
	if cause != nil {
		detail = fmt.Sprintf("%s: %v", reason, cause)
	}
	if err := d.queue.abandon(ctx, item, detail); err != nil {
		return err
	}
	dlqCounter.WithLabelValues(reason).Inc()
	return nil
}

// backoffDelay calculates exponential backoff capped at one hour.
func (d *Dispatcher) backoffDelay(attempt int) time.Duration {
	delay := d.baseDelay
	for i := 1; i < attempt && delay < time.Hour; i++ {
		delay *= 2
	}
	if delay > time.Hour {
		delay = time.Hour
	}
	return delay
}

//go:build integration

package consumer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
	"example.com/fittrack/internal/testsupport"
)

func TestKafkaReminderReachesNotifier(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	broker := testsupport.StartKafka(ctx, t)
	topic := "supplement_reminders"

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  "notifier-integration",
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	t.Cleanup(func() { _ = reader.Close() })

	writer := &kafka.Writer{Addr: kafka.TCP(broker), Topic: topic, RequiredAcks: kafka.RequireAll}
	t.Cleanup(func() { _ = writer.Close() })

	taken := domain.IntakeLog{}
	taken.Put(domain.NewDate(2024, time.May, 6), "supp_whey", domain.Intake{Count: 1})

	for _, evt := range []events.ReminderDue{
		{Handle: "h-whey", SupplementID: "supp_whey", Title: "Whey", FireAt: time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)},
		{Handle: "h-creatine", SupplementID: "supp_creatine", Title: "Creatina", FireAt: time.Date(2024, time.May, 6, 8, 0, 0, 0, time.UTC)},
	} {
		value, err := json.Marshal(evt)
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return writer.WriteMessages(ctx, kafka.Message{
				Key:     []byte(evt.SupplementID),
				Value:   value,
				Headers: []kafka.Header{{Key: "event_type", Value: []byte(events.TypeReminderDue)}},
			}) == nil
		}, 30*time.Second, 500*time.Millisecond)
	}

	shown := make(chan events.ReminderDue, 2)
	notifier := notifierFunc(func(_ context.Context, r events.ReminderDue) error {
		shown <- r
		return nil
	})

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	proc := NewProcessor(reader, NewReminderHandler(notifier, stubIntake{log: taken}, time.UTC),
		WithLogger(log.New(io.Discard, "", 0)))
	go func() { _ = proc.Run(runCtx) }()

	select {
	case r := <-shown:
		require.Equal(t, "h-creatine", r.Handle, "satisfied supplement is suppressed")
	case <-time.After(time.Minute):
		t.Fatal("reminder not delivered")
	}
}

type notifierFunc func(context.Context, events.ReminderDue) error

func (f notifierFunc) Notify(ctx context.Context, r events.ReminderDue) error { return f(ctx, r) }

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/events"
)

func TestProcessorCommitsMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:     "supplement_reminders",
		Partition: 0,
		Offset:    12,
		Key:       []byte("supp_creatine"),
		Value:     json.RawMessage(`{"handle":"h-1"}`),
		Time:      time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.TypeReminderDue)},
		},
	}

	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	handler := &RecordingHandler{}
	proc := NewProcessor(reader, handler, WithLogger(log.New(io.Discard, "", 0)))

	before := testutil.ToFloat64(processedCounter.WithLabelValues("supplement_reminders", events.TypeReminderDue))

	err := proc.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.count)
	require.Equal(t, 1, reader.commitCount)
	require.Equal(t, events.TypeReminderDue, handler.last.Headers["event_type"])
	require.Equal(t, "supp_creatine", string(handler.last.Key))
	require.InDelta(t, before+1, testutil.ToFloat64(processedCounter.WithLabelValues("supplement_reminders", events.TypeReminderDue)), 0.0001)
}

func TestProcessorCommitsEvenWhenHandlerFails(t *testing.T) {
	msg := kafka.Message{Topic: "supplement_reminders", Offset: 3}
	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	proc := NewProcessor(reader, HandlerFunc(func(context.Context, Message) error {
		return errors.New("notifier offline")
	}), WithLogger(log.New(io.Discard, "", 0)))

	before := testutil.ToFloat64(failedCounter.WithLabelValues("supplement_reminders", ""))
	require.ErrorIs(t, proc.Run(context.Background()), context.Canceled)
	require.Equal(t, 1, reader.commitCount)
	require.InDelta(t, before+1, testutil.ToFloat64(failedCounter.WithLabelValues("supplement_reminders", "")), 0.0001)
}

func TestProcessorStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader := &stubReader{}
	err := NewProcessor(reader, &RecordingHandler{}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, reader.idx)
}

type stubReader struct {
	msgs        []kafka.Message
	idx         int
	commitCount int
	errAfter    error
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if r.idx >= len(r.msgs) {
		return kafka.Message{}, r.errAfter
	}
	msg := r.msgs[r.idx]
	r.idx++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCount++
	return nil
}

func (r *stubReader) Close() error { return nil }

type RecordingHandler struct {
	count int
	last  Message
}

var _ Handler = (*RecordingHandler)(nil)

func (h *RecordingHandler) Handle(_ context.Context, msg Message) error {
	h.count++
	h.last = msg
	return nil
}

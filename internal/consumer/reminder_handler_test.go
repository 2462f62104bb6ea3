package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
)

type recordingNotifier struct {
	shown []events.ReminderDue
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, r events.ReminderDue) error {
	if n.err != nil {
		return n.err
	}
	n.shown = append(n.shown, r)
	return nil
}

type stubIntake struct {
	log domain.IntakeLog
	err error
}

func (s stubIntake) Intake(context.Context) (domain.IntakeLog, error) {
	return s.log, s.err
}

func reminderMessage(t *testing.T, evt events.ReminderDue) Message {
	t.Helper()
	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	return Message{
		Topic:   "supplement_reminders",
		Payload: payload,
		Headers: map[string]string{"event_type": events.TypeReminderDue},
	}
}

var creatineDue = events.ReminderDue{
	Handle:         "h-1",
	SupplementID:   "supp_creatine",
	SupplementName: "Creatina",
	Title:          "Hora de tomar Creatina",
	Body:           "6 g",
	Sequence:       2,
	FireAt:         time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC),
}

func TestReminderHandlerNotifiesWhenNotTaken(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewReminderHandler(notifier, stubIntake{log: domain.IntakeLog{}}, time.UTC)

	require.NoError(t, h.Handle(context.Background(), reminderMessage(t, creatineDue)))
	require.Len(t, notifier.shown, 1)
	require.Equal(t, "h-1", notifier.shown[0].Handle)
}

func TestReminderHandlerSuppressesSatisfiedSupplement(t *testing.T) {
	taken := domain.IntakeLog{}
	taken.Put(domain.NewDate(2024, time.May, 6), "supp_creatine", domain.Intake{Taken: true})
	notifier := &recordingNotifier{}
	h := NewReminderHandler(notifier, stubIntake{log: taken}, time.UTC)

	require.NoError(t, h.Handle(context.Background(), reminderMessage(t, creatineDue)))
	require.Empty(t, notifier.shown)
}

func TestReminderHandlerUsesLocalDayOfFireTime(t *testing.T) {
	// 02:00 UTC on the 7th is still the 6th in BRT.
	evt := creatineDue
	evt.FireAt = time.Date(2024, time.May, 7, 2, 0, 0, 0, time.UTC)
	taken := domain.IntakeLog{}
	taken.Put(domain.NewDate(2024, time.May, 6), "supp_creatine", domain.Intake{Taken: true})

	notifier := &recordingNotifier{}
	h := NewReminderHandler(notifier, stubIntake{log: taken}, time.FixedZone("BRT", -3*3600))
	require.NoError(t, h.Handle(context.Background(), reminderMessage(t, evt)))
	require.Empty(t, notifier.shown)
}

func TestReminderHandlerIgnoresOtherEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewReminderHandler(notifier, nil, time.UTC)
	msg := reminderMessage(t, creatineDue)
	msg.Headers["event_type"] = "something.else"

	require.NoError(t, h.Handle(context.Background(), msg))
	require.Empty(t, notifier.shown)
}

func TestReminderHandlerErrors(t *testing.T) {
	boom := errors.New("store down")
	h := NewReminderHandler(&recordingNotifier{}, stubIntake{err: boom}, time.UTC)
	require.ErrorIs(t, h.Handle(context.Background(), reminderMessage(t, creatineDue)), boom)

	msg := reminderMessage(t, creatineDue)
	msg.Payload = json.RawMessage(`[`)
	require.Error(t, NewReminderHandler(&recordingNotifier{}, nil, time.UTC).Handle(context.Background(), msg))
}

func TestLogNotifierWritesReminder(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: log.New(&buf, "", 0)}
	require.NoError(t, n.Notify(context.Background(), creatineDue))
	require.Contains(t, buf.String(), "Hora de tomar Creatina")
	require.Contains(t, buf.String(), "reinforcement 2")
}

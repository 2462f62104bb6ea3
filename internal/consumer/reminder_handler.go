package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/events"
)

// Notifier shows a reminder to the user.
type Notifier interface {
	Notify(context.Context, events.ReminderDue) error
}

// LogNotifier writes reminders to a logger. It stands in for a device push
// channel on headless installs.
type LogNotifier struct {
	Logger *log.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, r events.ReminderDue) error {
	logger := n.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[notify] ", log.LstdFlags)
	}
	kind := "primary"
	if r.Reinforcement() {
		kind = fmt.Sprintf("reinforcement %d", r.Sequence)
	}
	logger.Printf("%s: %s (%s, fired %s)", r.Title, r.Body, kind, r.FireAt.Format(time.RFC3339))
	return nil
}

// IntakeSource reads the supplement intake log.
type IntakeSource interface {
	Intake(context.Context) (domain.IntakeLog, error)
}

// ReminderHandler decodes reminder.due events and forwards them to a
// Notifier unless the supplement was satisfied on the reminder's local day
// after the trigger was armed.
type ReminderHandler struct {
	notifier Notifier
	intake   IntakeSource
	loc      *time.Location
}

// NewReminderHandler constructs a ReminderHandler. A nil intake source
// disables suppression.
func NewReminderHandler(notifier Notifier, intake IntakeSource, loc *time.Location) Handler {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderHandler{notifier: notifier, intake: intake, loc: loc}
}

// Handle implements Handler.
func (h *ReminderHandler) Handle(ctx context.Context, msg Message) error {
	if msg.Headers["event_type"] != events.TypeReminderDue {
		return nil
	}

	var evt events.ReminderDue
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode reminder: %w", err)
	}

	if h.intake != nil {
		taken, err := h.intake.Intake(ctx)
		if err != nil {
			return fmt.Errorf("load intake: %w", err)
		}
		day := domain.DateOf(evt.FireAt.In(h.loc))
		if taken.Get(day, evt.SupplementID).Satisfied() {
			reminderCounter.WithLabelValues("suppressed").Inc()
			return nil
		}
	}

	if err := h.notifier.Notify(ctx, evt); err != nil {
		return err
	}
	reminderCounter.WithLabelValues("shown").Inc()
	return nil
}

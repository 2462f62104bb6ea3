package ledger

import (
	"context"
	"errors"
	"fmt"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/observability"
)

var (
	// ErrUnknownSupplement is returned for intake against a supplement that does not exist.
	ErrUnknownSupplement = errors.New("unknown supplement")
	// ErrTrackingMismatch is returned when the intake operation does not fit the supplement's tracking type.
	ErrTrackingMismatch = errors.New("operation does not match supplement tracking type")
)

// IntakeOn returns the intake records of day keyed by supplement id.
func (l *Ledger) IntakeOn(ctx context.Context, day domain.Date) (map[string]domain.Intake, error) {
	log, err := l.repo.Intake(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Intake, len(log.Day(day)))
	for id, intake := range log.Day(day) {
		out[id] = intake
	}
	return out, nil
}

// SetTaken marks a daily-check supplement taken or not taken on day.
func (l *Ledger) SetTaken(ctx context.Context, supplementID string, day domain.Date, taken bool) (domain.Intake, error) {
	return l.updateIntake(ctx, supplementID, day, domain.TrackingDailyCheck, func(domain.Intake) domain.Intake {
		return domain.Intake{Taken: taken}
	})
}

// AdjustCount adds delta to a counter supplement on day. The count never
// drops below zero.
func (l *Ledger) AdjustCount(ctx context.Context, supplementID string, day domain.Date, delta int) (domain.Intake, error) {
	return l.updateIntake(ctx, supplementID, day, domain.TrackingCounter, func(cur domain.Intake) domain.Intake {
		count := cur.Count + delta
		if count < 0 {
			count = 0
		}
		return domain.Intake{Count: count}
	})
}

func (l *Ledger) updateIntake(ctx context.Context, supplementID string, day domain.Date, want domain.TrackingType, apply func(domain.Intake) domain.Intake) (domain.Intake, error) {
	supplements, err := l.repo.Supplements(ctx)
	if err != nil {
		return domain.Intake{}, err
	}
	supp, ok := findSupplement(supplements, supplementID)
	if !ok {
		return domain.Intake{}, fmt.Errorf("%w: %s", ErrUnknownSupplement, supplementID)
	}
	if supp.TrackingType != want {
		return domain.Intake{}, fmt.Errorf("%w: %s is tracked as %s", ErrTrackingMismatch, supp.Name, supp.TrackingType)
	}

	log, err := l.repo.Intake(ctx)
	if err != nil {
		return domain.Intake{}, err
	}
	next := apply(log.Get(day, supplementID))
	log.Put(day, supplementID, next)
	if err := l.repo.SaveIntake(ctx, log); err != nil {
		return domain.Intake{}, err
	}
	observability.RecordLedgerWrite(l.now())
	return next, nil
}

func findSupplement(supplements []domain.Supplement, id string) (domain.Supplement, bool) {
	for _, s := range supplements {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Supplement{}, false
}

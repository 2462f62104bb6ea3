// Package app wires the ledger, catalog and reminder scheduler into the
// operations a front end drives. Every mutation that can change which
// reminders should be armed is followed by a full re-arm.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"example.com/fittrack/internal/catalog"
	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/ledger"
	"example.com/fittrack/internal/reminder"
	"example.com/fittrack/internal/repository"
)

// ErrRearm marks a mutation that was saved but whose follow-up re-arm
// failed. The stored change stands; reminders catch up on the next re-arm.
var ErrRearm = errors.New("reminders were not re-armed")

// App is one user's session over a repository.
type App struct {
	Repo      *repository.Repository
	Ledger    *ledger.Ledger
	Catalog   *catalog.Catalog
	Scheduler *reminder.Scheduler

	loc    *time.Location
	now    func() time.Time
	logger *log.Logger
}

// Option configures an App.
type Option func(*App)

// WithLocation sets the zone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(a *App) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithClock overrides the wall clock for the app and everything it wires.
func WithClock(fn func() time.Time) Option {
	return func(a *App) {
		if fn != nil {
			a.now = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New wires an App. policy controls the reminder cascade.
func New(repo *repository.Repository, host reminder.Host, policy reminder.Policy, opts ...Option) *App {
	a := &App{
		Repo:   repo,
		loc:    time.Local,
		now:    time.Now,
		logger: log.New(os.Stdout, "[app] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Ledger = ledger.New(repo, ledger.WithClock(a.now))
	a.Catalog = catalog.New(repo, nil)
	a.Scheduler = reminder.NewScheduler(host, repo,
		reminder.WithPolicy(policy),
		reminder.WithLocation(a.loc),
		reminder.WithClock(a.now),
		reminder.WithLogger(a.logger),
	)
	return a
}

// Today returns the current local calendar day.
func (a *App) Today() domain.Date {
	return domain.DateOf(a.now().In(a.loc))
}

// Rearm recomputes the armed reminder set.
func (a *App) Rearm(ctx context.Context) (reminder.State, error) {
	return a.Scheduler.Rearm(ctx)
}

func (a *App) rearm(ctx context.Context) error {
	if _, err := a.Scheduler.Rearm(ctx); err != nil {
		a.logger.Printf("re-arm failed: %v", err)
		return fmt.Errorf("%w: %w", ErrRearm, err)
	}
	return nil
}

// SetTaken records a daily-check supplement and re-arms.
func (a *App) SetTaken(ctx context.Context, supplementID string, day domain.Date, taken bool) (domain.Intake, error) {
	intake, err := a.Ledger.SetTaken(ctx, supplementID, day, taken)
	if err != nil {
		return domain.Intake{}, err
	}
	return intake, a.rearm(ctx)
}

// AdjustCount changes a counter supplement's daily count and re-arms.
func (a *App) AdjustCount(ctx context.Context, supplementID string, day domain.Date, delta int) (domain.Intake, error) {
	intake, err := a.Ledger.AdjustCount(ctx, supplementID, day, delta)
	if err != nil {
		return domain.Intake{}, err
	}
	return intake, a.rearm(ctx)
}

// SetReminder saves a supplement's reminder settings and re-arms.
func (a *App) SetReminder(ctx context.Context, supplementID string, cfg domain.ReminderConfig) error {
	if err := a.Catalog.SetReminder(ctx, supplementID, cfg); err != nil {
		return err
	}
	return a.rearm(ctx)
}

// AddSupplement creates a supplement. New supplements have no reminder, so
// nothing needs re-arming.
func (a *App) AddSupplement(ctx context.Context, s domain.Supplement) (domain.Supplement, error) {
	return a.Catalog.AddSupplement(ctx, s)
}

// UpdateSupplement saves a supplement and re-arms; its name and dose appear
// in armed notifications.
func (a *App) UpdateSupplement(ctx context.Context, s domain.Supplement) error {
	if err := a.Catalog.UpdateSupplement(ctx, s); err != nil {
		return err
	}
	return a.rearm(ctx)
}

// DeleteSupplement removes a supplement with its reminder and re-arms.
func (a *App) DeleteSupplement(ctx context.Context, id string) error {
	if err := a.Catalog.DeleteSupplement(ctx, id); err != nil {
		return err
	}
	return a.rearm(ctx)
}

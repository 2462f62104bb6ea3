package reminder

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/observability"
)

// Host is the notification facility triggers are armed on.
type Host interface {
	// RequestPermission asks to deliver notifications. A refusal is not an error.
	RequestPermission(ctx context.Context) (bool, error)
	// ScheduleAt arms a notification and returns its handle.
	ScheduleAt(ctx context.Context, at time.Time, payload Payload) (string, error)
	// CancelAll disarms every pending notification.
	CancelAll(ctx context.Context) error
}

// Source supplies the records a re-arm pass reads.
type Source interface {
	Supplements(ctx context.Context) ([]domain.Supplement, error)
	ReminderConfigs(ctx context.Context) (map[string]domain.ReminderConfig, error)
	Intake(ctx context.Context) (domain.IntakeLog, error)
}

// Armed is a trigger the host accepted.
type Armed struct {
	Trigger
	Handle string
}

// State is the outcome of the latest re-arm pass.
type State struct {
	Armed            []Armed
	PermissionDenied bool
	RearmedAt        time.Time
}

// ArmedFor returns the triggers armed for one supplement.
func (s State) ArmedFor(supplementID string) []Armed {
	var out []Armed
	for _, a := range s.Armed {
		if a.Payload.SupplementID == supplementID {
			out = append(out, a)
		}
	}
	return out
}

// Scheduler owns the reminder state. Calls are expected from one goroutine.
type Scheduler struct {
	host   Host
	source Source
	policy Policy
	loc    *time.Location
	now    func() time.Time
	logger *log.Logger
	state  State
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPolicy overrides the reinforcement policy.
func WithPolicy(p Policy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithLocation sets the time zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(fn func() time.Time) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler constructs a Scheduler.
func NewScheduler(host Host, source Source, opts ...Option) *Scheduler {
	s := &Scheduler{
		host:   host,
		source: source,
		policy: DefaultPolicy,
		loc:    time.Local,
		now:    time.Now,
		logger: log.New(os.Stdout, "[reminder] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the result of the latest re-arm pass.
func (s *Scheduler) State() State {
	out := s.state
	out.Armed = append([]Armed(nil), s.state.Armed...)
	return out
}

// Rearm cancels every pending notification and arms the triggers Plan
// computes from the current records. Permission is requested only when
// there is something to arm; a refusal leaves nothing armed and is
// reported in State rather than as an error.
func (s *Scheduler) Rearm(ctx context.Context) (State, error) {
	now := s.now().In(s.loc)
	s.state = State{RearmedAt: now}

	if err := s.host.CancelAll(ctx); err != nil {
		observability.RecordRearm("error", 0)
		return s.State(), fmt.Errorf("cancel notifications: %w", err)
	}

	triggers, err := s.plan(ctx, now)
	if err != nil {
		observability.RecordRearm("error", 0)
		return s.State(), err
	}
	if len(triggers) == 0 {
		observability.RecordRearm("idle", 0)
		return s.State(), nil
	}

	granted, err := s.host.RequestPermission(ctx)
	if err != nil {
		observability.RecordRearm("error", 0)
		return s.State(), fmt.Errorf("request notification permission: %w", err)
	}
	if !granted {
		s.logger.Printf("notification permission denied; %d reminders not armed", len(triggers))
		s.state.PermissionDenied = true
		observability.RecordRearm("permission_denied", 0)
		return s.State(), nil
	}

	for _, trigger := range triggers {
		handle, err := s.host.ScheduleAt(ctx, trigger.At, trigger.Payload)
		if err != nil {
			observability.RecordRearm("error", len(s.state.Armed))
			return s.State(), fmt.Errorf("schedule %s #%d: %w", trigger.Payload.SupplementID, trigger.Payload.Sequence, err)
		}
		s.state.Armed = append(s.state.Armed, Armed{Trigger: trigger, Handle: handle})
	}
	observability.RecordRearm("armed", len(s.state.Armed))
	return s.State(), nil
}

func (s *Scheduler) plan(ctx context.Context, now time.Time) ([]Trigger, error) {
	supplements, err := s.source.Supplements(ctx)
	if err != nil {
		return nil, err
	}
	configs, err := s.source.ReminderConfigs(ctx)
	if err != nil {
		return nil, err
	}
	intake, err := s.source.Intake(ctx)
	if err != nil {
		return nil, err
	}
	return Plan(now, supplements, configs, intake.Day(domain.DateOf(now)), s.policy), nil
}

// RunDaily re-arms immediately and then shortly after every local midnight
// until ctx is cancelled. Errors are logged and retried at the next pass.
func (s *Scheduler) RunDaily(ctx context.Context) {
	for {
		if state, err := s.Rearm(ctx); err != nil {
			s.logger.Printf("rearm failed: %v", err)
		} else {
			s.logger.Printf("rearmed %d reminders", len(state.Armed))
		}

		timer := time.NewTimer(untilNextDay(s.now().In(s.loc)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// untilNextDay returns the wait until one second past the next local midnight.
func untilNextDay(now time.Time) time.Duration {
	next := domain.DateOf(now).AddDays(1)
	return next.In(now.Location()).Add(time.Second).Sub(now)
}

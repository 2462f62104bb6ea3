package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
)

type scheduled struct {
	at      time.Time
	payload Payload
}

type stubHost struct {
	granted     bool
	permErr     error
	cancelErr   error
	scheduleErr error
	pending     []scheduled
	cancels     int
	asked       int
}

func (h *stubHost) RequestPermission(context.Context) (bool, error) {
	h.asked++
	return h.granted, h.permErr
}

func (h *stubHost) ScheduleAt(_ context.Context, at time.Time, payload Payload) (string, error) {
	if h.scheduleErr != nil {
		return "", h.scheduleErr
	}
	h.pending = append(h.pending, scheduled{at: at, payload: payload})
	return fmt.Sprintf("h-%d", len(h.pending)), nil
}

func (h *stubHost) CancelAll(context.Context) error {
	if h.cancelErr != nil {
		return h.cancelErr
	}
	h.cancels++
	h.pending = nil
	return nil
}

type stubSource struct {
	supplements []domain.Supplement
	configs     map[string]domain.ReminderConfig
	intake      domain.IntakeLog
	err         error
}

func (s *stubSource) Supplements(context.Context) ([]domain.Supplement, error) {
	return s.supplements, s.err
}

func (s *stubSource) ReminderConfigs(context.Context) (map[string]domain.ReminderConfig, error) {
	return s.configs, nil
}

func (s *stubSource) Intake(context.Context) (domain.IntakeLog, error) {
	return s.intake, nil
}

func newTestScheduler(host Host, source Source, now time.Time) *Scheduler {
	return NewScheduler(host, source,
		WithLocation(time.UTC),
		WithClock(func() time.Time { return now }),
		WithLogger(log.New(io.Discard, "", 0)),
	)
}

func TestRearmArmsPrimaryAndReinforcements(t *testing.T) {
	host := &stubHost{granted: true}
	source := &stubSource{
		supplements: []domain.Supplement{creatine},
		configs:     map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")},
		intake:      domain.IntakeLog{},
	}
	s := newTestScheduler(host, source, at(6, 7, 0))

	state, err := s.Rearm(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Armed, 6)
	require.Len(t, host.pending, 6)
	require.Equal(t, "h-1", state.Armed[0].Handle)
	require.Len(t, s.State().ArmedFor(creatine.ID), 6)
}

func TestRearmIsIdempotent(t *testing.T) {
	host := &stubHost{granted: true}
	source := &stubSource{
		supplements: []domain.Supplement{creatine},
		configs:     map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")},
		intake:      domain.IntakeLog{},
	}
	s := newTestScheduler(host, source, at(6, 7, 0))

	_, err := s.Rearm(context.Background())
	require.NoError(t, err)
	_, err = s.Rearm(context.Background())
	require.NoError(t, err)
	require.Len(t, host.pending, 6, "cancel-then-rearm never accumulates duplicates")
	require.Equal(t, 2, host.cancels)
}

func TestRearmAfterIntakeDisarms(t *testing.T) {
	host := &stubHost{granted: true}
	source := &stubSource{
		supplements: []domain.Supplement{creatine},
		configs:     map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")},
		intake:      domain.IntakeLog{},
	}
	s := newTestScheduler(host, source, at(6, 7, 0))

	_, err := s.Rearm(context.Background())
	require.NoError(t, err)

	source.intake.Put(domain.NewDate(2024, time.May, 6), creatine.ID, domain.Intake{Taken: true})
	state, err := s.Rearm(context.Background())
	require.NoError(t, err)
	require.Empty(t, state.Armed)
	require.Empty(t, host.pending)
	require.Equal(t, 1, host.asked, "permission is not requested when nothing needs arming")
}

func TestRearmPermissionDeniedIsNotAnError(t *testing.T) {
	host := &stubHost{granted: false}
	source := &stubSource{
		supplements: []domain.Supplement{creatine},
		configs:     map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")},
	}
	s := newTestScheduler(host, source, at(6, 7, 0))

	state, err := s.Rearm(context.Background())
	require.NoError(t, err)
	require.True(t, state.PermissionDenied)
	require.Empty(t, state.Armed)
	require.Empty(t, host.pending)
}

func TestRearmPropagatesHostAndSourceFailures(t *testing.T) {
	boom := errors.New("unavailable")
	source := &stubSource{
		supplements: []domain.Supplement{creatine},
		configs:     map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")},
	}

	_, err := newTestScheduler(&stubHost{cancelErr: boom}, source, at(6, 7, 0)).Rearm(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = newTestScheduler(&stubHost{granted: true, scheduleErr: boom}, source, at(6, 7, 0)).Rearm(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = newTestScheduler(&stubHost{granted: true}, &stubSource{err: boom}, at(6, 7, 0)).Rearm(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestUntilNextDay(t *testing.T) {
	require.Equal(t, 2*time.Hour+time.Second, untilNextDay(at(6, 22, 0)))
	require.Equal(t, 24*time.Hour+time.Second, untilNextDay(at(6, 0, 0)))
}

type signalHost struct {
	stubHost
	cancelled chan struct{}
}

func (h *signalHost) CancelAll(ctx context.Context) error {
	err := h.stubHost.CancelAll(ctx)
	select {
	case h.cancelled <- struct{}{}:
	default:
	}
	return err
}

func TestRunDailyStopsOnCancel(t *testing.T) {
	host := &signalHost{stubHost: stubHost{granted: true}, cancelled: make(chan struct{}, 1)}
	s := newTestScheduler(host, &stubSource{}, at(6, 7, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunDaily(ctx)
		close(done)
	}()

	select {
	case <-host.cancelled:
	case <-time.After(time.Second):
		t.Fatal("RunDaily did not rearm on start")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunDaily did not stop")
	}
	require.False(t, s.State().RearmedAt.IsZero())
}

// Package ledger records training, sport, food and supplement intake and
// reconciles resistance-training sessions to one per calendar day.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/energy"
	"example.com/fittrack/internal/observability"
)

var (
	// ErrUnknownPlan is returned when a training session names a plan that does not exist.
	ErrUnknownPlan = errors.New("unknown workout plan")
	// ErrUnknownSport is returned when a sport session names a sport that does not exist.
	ErrUnknownSport = errors.New("unknown sport")
	// ErrDuplicateTraining is returned when an edit would leave two training sessions on one day.
	ErrDuplicateTraining = errors.New("a training session is already logged for that day")
)

// Outcome is the reconciliation result of an append.
type Outcome string

const (
	// OutcomeInserted means the entry was added.
	OutcomeInserted Outcome = "inserted"
	// OutcomeAlreadyLogged means the same plan was already logged that day; nothing changed.
	OutcomeAlreadyLogged Outcome = "already_logged"
	// OutcomeNeedsConfirmation means a different plan is logged that day and
	// replacing it requires explicit confirmation; nothing changed.
	OutcomeNeedsConfirmation Outcome = "needs_confirmation"
	// OutcomeReplaced means the confirmed entry replaced the day's session, keeping its id.
	OutcomeReplaced Outcome = "replaced"
)

// Result describes what an append did.
type Result struct {
	Outcome Outcome
	// Entry is the stored entry after the call.
	Entry domain.ActivityEntry
	// Existing is the conflicting entry when Outcome is OutcomeNeedsConfirmation.
	Existing *domain.ActivityEntry
}

// Repository is the persistence the ledger needs.
type Repository interface {
	Activities(ctx context.Context) ([]domain.ActivityEntry, error)
	SaveActivities(ctx context.Context, entries []domain.ActivityEntry) error
	Foods(ctx context.Context) ([]domain.FoodEntry, error)
	SaveFoods(ctx context.Context, entries []domain.FoodEntry) error
	Intake(ctx context.Context) (domain.IntakeLog, error)
	SaveIntake(ctx context.Context, log domain.IntakeLog) error
	Supplements(ctx context.Context) ([]domain.Supplement, error)
	Plans(ctx context.Context) (domain.PlanSet, error)
	Sports(ctx context.Context) ([]domain.SportDefinition, error)
	Profile(ctx context.Context) (domain.UserProfile, bool, error)
	NextPlanID(ctx context.Context) (string, bool, error)
	SetNextPlanID(ctx context.Context, planID string) error
}

// Ledger orchestrates ledger mutations.
type Ledger struct {
	repo  Repository
	mets  energy.METTable
	newID func() string
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMETs overrides the MET table used for calorie estimates.
func WithMETs(t energy.METTable) Option {
	return func(l *Ledger) { l.mets = t }
}

// WithIDGenerator overrides entry id generation.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.now = fn
		}
	}
}

// New constructs a Ledger.
func New(repo Repository, opts ...Option) *Ledger {
	l := &Ledger{
		repo:  repo,
		mets:  energy.DefaultMETs,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Entries returns every activity entry in stored order.
func (l *Ledger) Entries(ctx context.Context) ([]domain.ActivityEntry, error) {
	return l.repo.Activities(ctx)
}

// Append adds entry to the ledger. Resistance-training entries are
// reconciled against any session already logged on the same day: the same
// plan is a no-op, a different plan needs confirm to replace it. A replaced
// entry keeps the original id.
func (l *Ledger) Append(ctx context.Context, entry domain.ActivityEntry, confirm bool) (Result, error) {
	if err := entry.Validate(); err != nil {
		return Result{}, err
	}
	entries, err := l.repo.Activities(ctx)
	if err != nil {
		return Result{}, err
	}
	if entry.ID == "" {
		entry.ID = l.newID()
	} else if indexOf(entries, entry.ID) >= 0 {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrDuplicateID, entry.ID)
	}

	kind := kindOf(entry)
	if !entry.IsResistanceTraining() {
		entries = append(entries, entry)
		if err := l.repo.SaveActivities(ctx, entries); err != nil {
			return Result{}, err
		}
		l.recordWrite(kind, OutcomeInserted)
		return Result{Outcome: OutcomeInserted, Entry: entry}, nil
	}

	idx := sameDayTraining(entries, entry.Date, "")
	switch {
	case idx < 0:
		entries = append(entries, entry)
		if err := l.repo.SaveActivities(ctx, entries); err != nil {
			return Result{}, err
		}
		if err := l.advanceRotation(ctx, entry.Details.PlanID); err != nil {
			return Result{}, err
		}
		l.recordWrite(kind, OutcomeInserted)
		return Result{Outcome: OutcomeInserted, Entry: entry}, nil

	case entries[idx].Details.PlanID == entry.Details.PlanID:
		observability.RecordLedgerAppend(kind, string(OutcomeAlreadyLogged))
		return Result{Outcome: OutcomeAlreadyLogged, Entry: entries[idx]}, nil

	case !confirm:
		existing := entries[idx]
		observability.RecordLedgerAppend(kind, string(OutcomeNeedsConfirmation))
		return Result{Outcome: OutcomeNeedsConfirmation, Entry: existing, Existing: &existing}, nil
	}

	entry.ID = entries[idx].ID
	entries[idx] = entry
	if err := l.repo.SaveActivities(ctx, entries); err != nil {
		return Result{}, err
	}
	if err := l.advanceRotation(ctx, entry.Details.PlanID); err != nil {
		return Result{}, err
	}
	l.recordWrite(kind, OutcomeReplaced)
	return Result{Outcome: OutcomeReplaced, Entry: entry}, nil
}

// Replace overwrites the entry with the same id. It refuses edits that
// would put two training sessions on one day.
func (l *Ledger) Replace(ctx context.Context, entry domain.ActivityEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	entries, err := l.repo.Activities(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(entries, entry.ID)
	if idx < 0 {
		return domain.ErrEntryNotFound
	}
	if entry.IsResistanceTraining() && sameDayTraining(entries, entry.Date, entry.ID) >= 0 {
		return ErrDuplicateTraining
	}
	entries[idx] = entry
	if err := l.repo.SaveActivities(ctx, entries); err != nil {
		return err
	}
	observability.RecordLedgerWrite(l.now())
	return nil
}

// Remove deletes the entry with id. The rotation pointer is left unchanged.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	entries, err := l.repo.Activities(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(entries, id)
	if idx < 0 {
		return domain.ErrEntryNotFound
	}
	entries = append(entries[:idx], entries[idx+1:]...)
	if err := l.repo.SaveActivities(ctx, entries); err != nil {
		return err
	}
	observability.RecordLedgerWrite(l.now())
	return nil
}

// NextPlan suggests the plan to train next. A pointer to a deleted plan,
// or no pointer at all, yields the first plan. ok is false without plans.
func (l *Ledger) NextPlan(ctx context.Context) (plan domain.WorkoutPlan, ok bool, err error) {
	plans, err := l.repo.Plans(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, false, err
	}
	ordered := plans.Ordered()
	if len(ordered) == 0 {
		return domain.WorkoutPlan{}, false, nil
	}
	nextID, _, err := l.repo.NextPlanID(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, false, err
	}
	if p, found := plans[nextID]; found {
		return p, true, nil
	}
	return ordered[0], true, nil
}

// TrainingInput describes a resistance-training session to log.
type TrainingInput struct {
	Date        domain.Date
	PlanID      string
	Performance map[string]float64
	DurationMin float64
	Intensity   domain.Intensity
	Notes       string
}

// LogTraining validates the plan and exercise ids, estimates calories when
// a duration is given, and appends the session.
func (l *Ledger) LogTraining(ctx context.Context, in TrainingInput, confirm bool) (Result, error) {
	plans, err := l.repo.Plans(ctx)
	if err != nil {
		return Result{}, err
	}
	plan, ok := plans[in.PlanID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownPlan, in.PlanID)
	}
	for exerciseID := range in.Performance {
		if _, ok := plan.Exercise(exerciseID); !ok {
			return Result{}, fmt.Errorf("%w: exercise %s is not in plan %s", domain.ErrInvalidEntry, exerciseID, plan.ID)
		}
	}

	calories, err := l.estimate(ctx, domain.SportGym, in.Intensity, in.DurationMin)
	if err != nil {
		return Result{}, err
	}

	entry := domain.ActivityEntry{
		Date:     in.Date,
		Category: domain.SportGym,
		Details: domain.ActivityDetails{
			PlanID:      plan.ID,
			Performance: in.Performance,
			DurationMin: in.DurationMin,
			Intensity:   in.Intensity,
			Calories:    calories,
			Notes:       in.Notes,
		},
	}
	return l.Append(ctx, entry, confirm)
}

// SportInput describes a sport session to log.
type SportInput struct {
	Date        domain.Date
	SportID     string
	DurationMin float64
	Intensity   domain.Intensity
	DistanceKM  float64
	Notes       string
}

// LogSport appends a sport session with an estimated calorie cost.
func (l *Ledger) LogSport(ctx context.Context, in SportInput) (Result, error) {
	if in.SportID == domain.SportGym {
		return Result{}, fmt.Errorf("%w: resistance training is logged against a plan", domain.ErrInvalidEntry)
	}
	sports, err := l.repo.Sports(ctx)
	if err != nil {
		return Result{}, err
	}
	if !containsSport(sports, in.SportID) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownSport, in.SportID)
	}

	calories, err := l.estimate(ctx, in.SportID, in.Intensity, in.DurationMin)
	if err != nil {
		return Result{}, err
	}

	entry := domain.ActivityEntry{
		Date:     in.Date,
		Category: in.SportID,
		Details: domain.ActivityDetails{
			DurationMin: in.DurationMin,
			Intensity:   in.Intensity,
			DistanceKM:  in.DistanceKM,
			Calories:    calories,
			Notes:       in.Notes,
		},
	}
	return l.Append(ctx, entry, false)
}

func (l *Ledger) estimate(ctx context.Context, activityID string, intensity domain.Intensity, minutes float64) (float64, error) {
	if minutes <= 0 {
		return 0, nil
	}
	profile, ok, err := l.repo.Profile(ctx)
	if err != nil {
		return 0, err
	}
	weight := energy.DefaultWeightKG
	if ok && profile.WeightKG > 0 {
		weight = profile.WeightKG
	}
	return l.mets.Calories(activityID, intensity, weight, minutes), nil
}

func (l *Ledger) advanceRotation(ctx context.Context, loggedPlanID string) error {
	plans, err := l.repo.Plans(ctx)
	if err != nil {
		return err
	}
	next, ok := plans.After(loggedPlanID)
	if !ok {
		return nil
	}
	return l.repo.SetNextPlanID(ctx, next.ID)
}

func (l *Ledger) recordWrite(kind string, outcome Outcome) {
	observability.RecordLedgerAppend(kind, string(outcome))
	observability.RecordLedgerWrite(l.now())
}

func kindOf(entry domain.ActivityEntry) string {
	if entry.IsResistanceTraining() {
		return "training"
	}
	return "sport"
}

func sameDayTraining(entries []domain.ActivityEntry, day domain.Date, excludeID string) int {
	for i, e := range entries {
		if e.IsResistanceTraining() && e.Date.Equal(day) && e.ID != excludeID {
			return i
		}
	}
	return -1
}

func indexOf(entries []domain.ActivityEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func containsSport(sports []domain.SportDefinition, id string) bool {
	for _, s := range sports {
		if s.ID == id {
			return true
		}
	}
	return false
}

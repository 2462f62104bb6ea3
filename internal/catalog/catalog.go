// Package catalog manages the user-editable definitions the ledger refers
// to: workout plans, sports, supplements, reminder settings and the profile.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"example.com/fittrack/internal/domain"
)

var (
	// ErrPlanNotFound indicates the workout plan does not exist.
	ErrPlanNotFound = errors.New("workout plan not found")
	// ErrExerciseNotFound indicates the exercise does not exist in the plan.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrSportNotFound indicates the sport does not exist.
	ErrSportNotFound = errors.New("sport not found")
	// ErrReservedSport is returned when deleting or redefining the gym sport.
	ErrReservedSport = errors.New("the gym sport is reserved")
	// ErrSupplementNotFound indicates the supplement does not exist.
	ErrSupplementNotFound = errors.New("supplement not found")
	// ErrTrackingTypeChange is returned when an update would change how a
	// supplement's intake is recorded.
	ErrTrackingTypeChange = errors.New("supplement tracking type cannot change")
)

// Repository is the persistence the catalog needs.
type Repository interface {
	Plans(ctx context.Context) (domain.PlanSet, error)
	SavePlans(ctx context.Context, plans domain.PlanSet) error
	Sports(ctx context.Context) ([]domain.SportDefinition, error)
	SaveSports(ctx context.Context, sports []domain.SportDefinition) error
	Supplements(ctx context.Context) ([]domain.Supplement, error)
	SaveSupplements(ctx context.Context, supplements []domain.Supplement) error
	ReminderConfigs(ctx context.Context) (map[string]domain.ReminderConfig, error)
	SaveReminderConfigs(ctx context.Context, configs map[string]domain.ReminderConfig) error
	Profile(ctx context.Context) (domain.UserProfile, bool, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
}

// Catalog orchestrates definition changes.
type Catalog struct {
	repo  Repository
	newID func() string
}

// New constructs a Catalog. A nil newID uses random UUIDs.
func New(repo Repository, newID func() string) *Catalog {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Catalog{repo: repo, newID: newID}
}

// Profile returns the saved profile; ok is false before the first save.
func (c *Catalog) Profile(ctx context.Context) (domain.UserProfile, bool, error) {
	return c.repo.Profile(ctx)
}

// SaveProfile validates and overwrites the profile.
func (c *Catalog) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return c.repo.SaveProfile(ctx, profile)
}

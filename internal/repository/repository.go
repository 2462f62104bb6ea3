// Package repository maps the tracker's records onto logical store keys.
// Every read goes to the store; nothing is cached between calls.
package repository

import (
	"context"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/store"
)

// Logical store keys.
const (
	KeyActivityLedger   = "activity_ledger"
	KeyFoodLedger       = "food_ledger"
	KeySupplementIntake = "supplement_intake"
	KeyReminderConfig   = "reminder_config"
	KeyWorkoutPlans     = "workout_plans"
	KeySportDefinitions = "sport_definitions"
	KeySupplements      = "supplements"
	KeyUserProfile      = "user_profile"
	KeyNextPlan         = "next_plan"
)

// Repository provides typed access to the store.
type Repository struct {
	store store.Store
}

// New constructs a Repository.
func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Activities returns the activity ledger, empty when nothing was logged.
func (r *Repository) Activities(ctx context.Context) ([]domain.ActivityEntry, error) {
	entries, _, err := store.LoadJSON[[]domain.ActivityEntry](ctx, r.store, KeyActivityLedger)
	return entries, err
}

// SaveActivities replaces the activity ledger.
func (r *Repository) SaveActivities(ctx context.Context, entries []domain.ActivityEntry) error {
	return store.SaveJSON(ctx, r.store, KeyActivityLedger, entries)
}

// Foods returns the food ledger.
func (r *Repository) Foods(ctx context.Context) ([]domain.FoodEntry, error) {
	entries, _, err := store.LoadJSON[[]domain.FoodEntry](ctx, r.store, KeyFoodLedger)
	return entries, err
}

// SaveFoods replaces the food ledger.
func (r *Repository) SaveFoods(ctx context.Context, entries []domain.FoodEntry) error {
	return store.SaveJSON(ctx, r.store, KeyFoodLedger, entries)
}

// Intake returns the supplement intake log. The result is never nil.
func (r *Repository) Intake(ctx context.Context) (domain.IntakeLog, error) {
	log, _, err := store.LoadJSON[domain.IntakeLog](ctx, r.store, KeySupplementIntake)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = domain.IntakeLog{}
	}
	return log, nil
}

// SaveIntake replaces the intake log.
func (r *Repository) SaveIntake(ctx context.Context, log domain.IntakeLog) error {
	return store.SaveJSON(ctx, r.store, KeySupplementIntake, log)
}

// ReminderConfigs returns reminder settings keyed by supplement id. Never nil.
func (r *Repository) ReminderConfigs(ctx context.Context) (map[string]domain.ReminderConfig, error) {
	configs, _, err := store.LoadJSON[map[string]domain.ReminderConfig](ctx, r.store, KeyReminderConfig)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = make(map[string]domain.ReminderConfig)
	}
	return configs, nil
}

// SaveReminderConfigs replaces the reminder settings.
func (r *Repository) SaveReminderConfigs(ctx context.Context, configs map[string]domain.ReminderConfig) error {
	return store.SaveJSON(ctx, r.store, KeyReminderConfig, configs)
}

// Plans returns the workout plans, writing the default plans on first use.
func (r *Repository) Plans(ctx context.Context) (domain.PlanSet, error) {
	plans, ok, err := store.LoadJSON[domain.PlanSet](ctx, r.store, KeyWorkoutPlans)
	if err != nil {
		return nil, err
	}
	if !ok {
		plans = seedPlans()
		if err := r.SavePlans(ctx, plans); err != nil {
			return nil, err
		}
	}
	if plans == nil {
		plans = domain.PlanSet{}
	}
	return plans, nil
}

// SavePlans replaces the workout plans.
func (r *Repository) SavePlans(ctx context.Context, plans domain.PlanSet) error {
	return store.SaveJSON(ctx, r.store, KeyWorkoutPlans, plans)
}

// Sports returns the sport definitions, seeding them on first use. The
// reserved gym sport is restored at the front if a stored list lacks it.
func (r *Repository) Sports(ctx context.Context) ([]domain.SportDefinition, error) {
	sports, ok, err := store.LoadJSON[[]domain.SportDefinition](ctx, r.store, KeySportDefinitions)
	if err != nil {
		return nil, err
	}
	if !ok {
		sports = seedSports()
		if err := r.SaveSports(ctx, sports); err != nil {
			return nil, err
		}
		return sports, nil
	}
	for _, sport := range sports {
		if sport.ID == domain.SportGym {
			return sports, nil
		}
	}
	return append([]domain.SportDefinition{gymSport()}, sports...), nil
}

// SaveSports replaces the sport definitions.
func (r *Repository) SaveSports(ctx context.Context, sports []domain.SportDefinition) error {
	return store.SaveJSON(ctx, r.store, KeySportDefinitions, sports)
}

// Supplements returns the supplement definitions, seeding them on first use.
func (r *Repository) Supplements(ctx context.Context) ([]domain.Supplement, error) {
	supplements, ok, err := store.LoadJSON[[]domain.Supplement](ctx, r.store, KeySupplements)
	if err != nil {
		return nil, err
	}
	if !ok {
		supplements = seedSupplements()
		if err := r.SaveSupplements(ctx, supplements); err != nil {
			return nil, err
		}
	}
	return supplements, nil
}

// SaveSupplements replaces the supplement definitions.
func (r *Repository) SaveSupplements(ctx context.Context, supplements []domain.Supplement) error {
	return store.SaveJSON(ctx, r.store, KeySupplements, supplements)
}

// Profile returns the user profile; ok is false when none was saved.
func (r *Repository) Profile(ctx context.Context) (domain.UserProfile, bool, error) {
	return store.LoadJSON[domain.UserProfile](ctx, r.store, KeyUserProfile)
}

// SaveProfile overwrites the user profile.
func (r *Repository) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	return store.SaveJSON(ctx, r.store, KeyUserProfile, profile)
}

// NextPlanID returns the rotation pointer.
func (r *Repository) NextPlanID(ctx context.Context) (string, bool, error) {
	return store.LoadJSON[string](ctx, r.store, KeyNextPlan)
}

// SetNextPlanID moves the rotation pointer.
func (r *Repository) SetNextPlanID(ctx context.Context, planID string) error {
	return store.SaveJSON(ctx, r.store, KeyNextPlan, planID)
}

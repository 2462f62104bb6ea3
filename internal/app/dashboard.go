package app

import (
	"context"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/energy"
	"example.com/fittrack/internal/stats"
)

// Dashboard is the daily overview.
type Dashboard struct {
	Date     domain.Date                      `json:"date"`
	Energy   stats.DailyEnergy                `json:"energy"`
	Macros   domain.Nutrition                 `json:"macros"`
	ByMeal   map[domain.Meal]domain.Nutrition `json:"by_meal"`
	Intake   map[string]domain.Intake         `json:"intake"`
	NextPlan *domain.WorkoutPlan              `json:"next_plan,omitempty"`

	// Estimate, Remaining and BMI are set only once a profile exists.
	Estimate  *energy.Estimate `json:"estimate,omitempty"`
	Remaining *float64         `json:"remaining,omitempty"`
	BMI       *BMIReading      `json:"bmi,omitempty"`
}

// BMIReading is a body-mass index with its class.
type BMIReading struct {
	Value float64         `json:"value"`
	Class energy.BMIClass `json:"class"`
}

// Dashboard builds the overview for day.
func (a *App) Dashboard(ctx context.Context, day domain.Date) (Dashboard, error) {
	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	foods, err := a.Ledger.Foods(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	intake, err := a.Ledger.IntakeOn(ctx, day)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Date:   day,
		Energy: stats.EnergyOn(foods, entries, day),
		Macros: stats.MacroTotals(foods, day),
		ByMeal: stats.MealTotals(foods, day),
		Intake: intake,
	}

	next, ok, err := a.Ledger.NextPlan(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if ok {
		d.NextPlan = &next
	}

	profile, ok, err := a.Catalog.Profile(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if ok {
		est := energy.Daily(profile, day)
		remaining := est.Target - d.Energy.Net
		bmi := energy.BMI(profile.WeightKG, profile.HeightCM)
		d.Estimate = &est
		d.Remaining = &remaining
		d.BMI = &BMIReading{Value: bmi, Class: energy.ClassifyBMI(bmi)}
	}
	return d, nil
}

// Summary rolls up the window around ref.
func (a *App) Summary(ctx context.Context, ref domain.Date, w stats.Window) (stats.Summary, error) {
	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	foods, err := a.Ledger.Foods(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(entries, foods, ref, w), nil
}

// EnergySeries returns the gap-filled daily balance for the window around ref.
func (a *App) EnergySeries(ctx context.Context, ref domain.Date, w stats.Window) ([]stats.DailyEnergy, error) {
	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := a.Ledger.Foods(ctx)
	if err != nil {
		return nil, err
	}
	return stats.EnergySeries(foods, entries, ref, w), nil
}

// PersonalRecord returns the best logged performance for an exercise.
func (a *App) PersonalRecord(ctx context.Context, exerciseID string) (float64, bool, error) {
	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return 0, false, err
	}
	best, ok := stats.PersonalRecord(entries, exerciseID)
	return best, ok, nil
}

// Progress returns the latest performance points for an exercise.
func (a *App) Progress(ctx context.Context, exerciseID string) ([]stats.Point, error) {
	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Progress(entries, exerciseID, stats.ProgressPoints), nil
}

// Adherence reports on how many days of the window around ref a supplement
// was satisfied, counting days up to today.
func (a *App) Adherence(ctx context.Context, supplementID string, ref domain.Date, w stats.Window) (satisfied, days int, err error) {
	taken, err := a.Repo.Intake(ctx)
	if err != nil {
		return 0, 0, err
	}
	satisfied, days = stats.Adherence(taken, supplementID, ref, a.Today(), w)
	return satisfied, days, nil
}

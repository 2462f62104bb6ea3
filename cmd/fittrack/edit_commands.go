package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"example.com/fittrack/internal/app"
	"example.com/fittrack/internal/domain"
)

func cmdEditEntry(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("edit-entry", out)
	id := fs.String("id", "", "activity entry id")
	date := fs.String("date", "", "day of the session (YYYY-MM-DD)")
	plan := fs.String("plan", "", "plan id of a training session")
	perf := fs.String("perf", "", "performances as EXERCISE=VALUE,...; replaces all of them")
	duration := fs.Float64("duration", 0, "duration in minutes")
	intensity := fs.String("intensity", "", "light, moderate or vigorous")
	distance := fs.Float64("distance", 0, "distance in km")
	kcal := fs.Float64("kcal", 0, "calories burned")
	notes := fs.String("notes", "", "free-form notes")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", *id); err != nil {
		return err
	}

	entries, err := a.Ledger.Entries(ctx)
	if err != nil {
		return err
	}
	var (
		entry domain.ActivityEntry
		found bool
	)
	for _, e := range entries {
		if e.ID == *id {
			entry, found = e, true
			break
		}
	}
	if !found {
		return fmt.Errorf("activity %s: %w", *id, domain.ErrEntryNotFound)
	}

	set := setFlags(fs)
	if set["date"] {
		day, err := parseDay(a, *date)
		if err != nil {
			return err
		}
		entry.Date = day
	}
	if set["plan"] {
		entry.Details.PlanID = strings.TrimSpace(*plan)
	}
	if set["perf"] {
		performance, err := parsePerformance(*perf)
		if err != nil {
			return err
		}
		entry.Details.Performance = performance
	}
	if set["duration"] {
		entry.Details.DurationMin = *duration
	}
	if set["intensity"] {
		entry.Details.Intensity = domain.Intensity(*intensity)
	}
	if set["distance"] {
		entry.Details.DistanceKM = *distance
	}
	if set["kcal"] {
		entry.Details.Calories = *kcal
	}
	if set["notes"] {
		entry.Details.Notes = *notes
	}

	if entry.IsResistanceTraining() {
		p, err := a.Catalog.Plan(ctx, entry.Details.PlanID)
		if err != nil {
			return fmt.Errorf("plan %s: %w", entry.Details.PlanID, err)
		}
		for exerciseID := range entry.Details.Performance {
			if _, ok := p.Exercise(exerciseID); !ok {
				return fmt.Errorf("%w: exercise %s is not part of plan %s", domain.ErrInvalidEntry, exerciseID, p.ID)
			}
		}
	}

	if err := a.Ledger.Replace(ctx, entry); err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %s (%s on %s)\n", entry.ID, entry.Category, entry.Date)
	return nil
}

func cmdEditFood(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("edit-food", out)
	id := fs.String("id", "", "food entry id")
	date := fs.String("date", "", "day eaten (YYYY-MM-DD)")
	meal := fs.String("meal", "", "breakfast, lunch, dinner or snack")
	desc := fs.String("desc", "", "what was eaten")
	kcal := fs.Float64("kcal", 0, "calories")
	protein := fs.Float64("protein", 0, "protein in grams")
	carbs := fs.Float64("carbs", 0, "carbohydrates in grams")
	fat := fs.Float64("fat", 0, "fat in grams")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", *id); err != nil {
		return err
	}

	foods, err := a.Ledger.Foods(ctx)
	if err != nil {
		return err
	}
	var (
		entry domain.FoodEntry
		found bool
	)
	for _, f := range foods {
		if f.ID == *id {
			entry, found = f, true
			break
		}
	}
	if !found {
		return fmt.Errorf("food %s: %w", *id, domain.ErrEntryNotFound)
	}

	set := setFlags(fs)
	if set["date"] {
		day, err := parseDay(a, *date)
		if err != nil {
			return err
		}
		entry.Date = day
	}
	if set["meal"] {
		entry.Meal = domain.Meal(*meal)
	}
	if set["desc"] {
		entry.Description = *desc
	}
	if set["kcal"] {
		entry.Nutrition.Calories = *kcal
	}
	if set["protein"] {
		entry.Nutrition.ProteinG = *protein
	}
	if set["carbs"] {
		entry.Nutrition.CarbsG = *carbs
	}
	if set["fat"] {
		entry.Nutrition.FatG = *fat
	}

	if err := a.Ledger.ReplaceFood(ctx, entry); err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %s (%s, %.0f kcal)\n", entry.ID, entry.Meal, entry.Nutrition.Calories)
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"example.com/fittrack/internal/app"
	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/ledger"
	"example.com/fittrack/internal/stats"
)

var errUsage = errors.New("usage")

type command struct {
	summary string
	run     func(ctx context.Context, a *app.App, args []string, out io.Writer) error
}

var commands = map[string]command{
	"log-gym":     {"log a resistance-training session against a plan", cmdLogGym},
	"log-sport":   {"log a sport session", cmdLogSport},
	"log-food":    {"log a food entry", cmdLogFood},
	"remove":      {"remove an activity entry", cmdRemove},
	"remove-food": {"remove a food entry", cmdRemoveFood},
	"take":        {"mark a daily-check supplement as taken", cmdTake},
	"count":       {"change a counter supplement's daily count", cmdCount},
	"reminder":    {"configure a supplement reminder", cmdReminder},
	"rearm":       {"recompute armed reminders", cmdRearm},
	"dashboard":   {"show the daily overview", cmdDashboard},
	"summary":     {"summarize a day, week or month", cmdSummary},
	"series":      {"show the daily energy balance over a window", cmdSeries},
	"adherence":   {"show supplement adherence over a window", cmdAdherence},
	"pr":          {"show an exercise's personal record", cmdPR},
	"progress":    {"show an exercise's recent performances", cmdProgress},
	"next-plan":   {"show the next plan in the rotation", cmdNextPlan},
	"plans":       {"list workout plans", cmdPlans},
	"sports":      {"list sports", cmdSports},
	"add-sport":   {"define a new sport", cmdAddSport},
	"supplements": {"list supplements and their reminders", cmdSupplements},
	"profile":     {"show or save the user profile", cmdProfile},

	"edit-entry":        {"edit an activity entry", cmdEditEntry},
	"edit-food":         {"edit a food entry", cmdEditFood},
	"delete-sport":      {"delete a sport definition", cmdDeleteSport},
	"add-supplement":    {"define a new supplement", cmdAddSupplement},
	"edit-supplement":   {"change a supplement's name or dose", cmdEditSupplement},
	"delete-supplement": {"delete a supplement and its reminder", cmdDeleteSupplement},
	"create-plan":       {"add a workout plan at the end of the rotation", cmdCreatePlan},
	"rename-plan":       {"rename a workout plan", cmdRenamePlan},
	"delete-plan":       {"delete a workout plan", cmdDeletePlan},
	"add-exercise":      {"add an exercise to a plan", cmdAddExercise},
	"edit-exercise":     {"edit an exercise of a plan", cmdEditExercise},
	"delete-exercise":   {"remove an exercise from a plan", cmdDeleteExercise},
	"reorder-exercises": {"set the exercise order of a plan", cmdReorderExercises},
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(out, "unknown command %q\n\n", args[0])
		usage(out)
		return errUsage
	}
	err := cmd.run(ctx, a, args[1:], out)
	if errors.Is(err, app.ErrRearm) {
		fmt.Fprintf(out, "warning: %v\n", err)
		return nil
	}
	return err
}

func usage(out io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "usage: fittrack <command> [flags]")
	fmt.Fprintln(out)
	for _, name := range names {
		fmt.Fprintf(out, "  %-18s %s\n", name, commands[name].summary)
	}
}

func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func parseDay(a *app.App, s string) (domain.Date, error) {
	if s == "" || s == "today" {
		return a.Today(), nil
	}
	return domain.ParseDate(s)
}

func parsePerformance(s string) (map[string]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	perf := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		id, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("performance %q: want EXERCISE=VALUE", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("performance %q: %w", pair, err)
		}
		perf[strings.TrimSpace(id)] = v
	}
	return perf, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdLogGym(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("log-gym", out)
	date := fs.String("date", "today", "day of the session (YYYY-MM-DD)")
	plan := fs.String("plan", "", "plan id; defaults to the next plan in the rotation")
	perf := fs.String("perf", "", "performances as EXERCISE=VALUE,...")
	duration := fs.Float64("duration", 0, "duration in minutes")
	intensity := fs.String("intensity", "", "light, moderate or vigorous")
	notes := fs.String("notes", "", "free-form notes")
	confirm := fs.Bool("confirm", false, "replace a different plan already logged that day")
	if err := parse(fs, args); err != nil {
		return err
	}

	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	performance, err := parsePerformance(*perf)
	if err != nil {
		return err
	}
	planID := *plan
	if planID == "" {
		next, ok, err := a.Ledger.NextPlan(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no workout plans defined")
		}
		planID = next.ID
	}

	res, err := a.Ledger.LogTraining(ctx, ledger.TrainingInput{
		Date:        day,
		PlanID:      planID,
		Performance: performance,
		DurationMin: *duration,
		Intensity:   domain.Intensity(*intensity),
		Notes:       *notes,
	}, *confirm)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case ledger.OutcomeAlreadyLogged:
		fmt.Fprintf(out, "plan %s is already logged on %s\n", planID, day)
	case ledger.OutcomeNeedsConfirmation:
		fmt.Fprintf(out, "plan %s is already logged on %s; rerun with -confirm to replace it\n", res.Existing.Details.PlanID, day)
	default:
		fmt.Fprintf(out, "%s %s (plan %s, %.0f kcal)\n", res.Outcome, res.Entry.ID, planID, res.Entry.Details.Calories)
	}
	return nil
}

func cmdLogSport(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("log-sport", out)
	date := fs.String("date", "today", "day of the session (YYYY-MM-DD)")
	sport := fs.String("sport", "", "sport id")
	duration := fs.Float64("duration", 0, "duration in minutes")
	intensity := fs.String("intensity", "", "light, moderate or vigorous")
	distance := fs.Float64("distance", 0, "distance in km")
	notes := fs.String("notes", "", "free-form notes")
	if err := parse(fs, args); err != nil {
		return err
	}

	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	res, err := a.Ledger.LogSport(ctx, ledger.SportInput{
		Date:        day,
		SportID:     *sport,
		DurationMin: *duration,
		Intensity:   domain.Intensity(*intensity),
		DistanceKM:  *distance,
		Notes:       *notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s (%s, %.0f kcal)\n", res.Outcome, res.Entry.ID, *sport, res.Entry.Details.Calories)
	return nil
}

func cmdLogFood(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("log-food", out)
	date := fs.String("date", "today", "day eaten (YYYY-MM-DD)")
	meal := fs.String("meal", string(domain.MealSnack), "breakfast, lunch, dinner or snack")
	desc := fs.String("desc", "", "what was eaten")
	kcal := fs.Float64("kcal", 0, "calories")
	protein := fs.Float64("protein", 0, "protein in grams")
	carbs := fs.Float64("carbs", 0, "carbohydrates in grams")
	fat := fs.Float64("fat", 0, "fat in grams")
	if err := parse(fs, args); err != nil {
		return err
	}

	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	entry, err := a.Ledger.LogFood(ctx, domain.FoodEntry{
		Date:        day,
		Meal:        domain.Meal(*meal),
		Description: *desc,
		Nutrition:   domain.Nutrition{Calories: *kcal, ProteinG: *protein, CarbsG: *carbs, FatG: *fat},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged %s\n", entry.ID)
	return nil
}

func cmdRemove(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("remove", out)
	id := fs.String("id", "", "activity entry id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.Ledger.Remove(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %s\n", *id)
	return nil
}

func cmdRemoveFood(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("remove-food", out)
	id := fs.String("id", "", "food entry id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.Ledger.RemoveFood(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %s\n", *id)
	return nil
}

func cmdTake(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("take", out)
	supp := fs.String("supp", "", "supplement id")
	date := fs.String("date", "today", "day (YYYY-MM-DD)")
	undo := fs.Bool("undo", false, "clear the taken flag")
	if err := parse(fs, args); err != nil {
		return err
	}
	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	intake, err := a.SetTaken(ctx, *supp, day, !*undo)
	if err != nil && !errors.Is(err, app.ErrRearm) {
		return err
	}
	fmt.Fprintf(out, "%s on %s: taken=%t\n", *supp, day, intake.Taken)
	return err
}

func cmdCount(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("count", out)
	supp := fs.String("supp", "", "supplement id")
	date := fs.String("date", "today", "day (YYYY-MM-DD)")
	delta := fs.Int("delta", 1, "amount to add; negative to subtract")
	if err := parse(fs, args); err != nil {
		return err
	}
	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	intake, err := a.AdjustCount(ctx, *supp, day, *delta)
	if err != nil && !errors.Is(err, app.ErrRearm) {
		return err
	}
	fmt.Fprintf(out, "%s on %s: count=%d\n", *supp, day, intake.Count)
	return err
}

func cmdReminder(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("reminder", out)
	supp := fs.String("supp", "", "supplement id")
	at := fs.String("time", "", "time of day (HH:MM); keeps the saved time when empty")
	off := fs.Bool("off", false, "disable the reminder")
	if err := parse(fs, args); err != nil {
		return err
	}

	configs, err := a.Catalog.ReminderConfigs(ctx)
	if err != nil {
		return err
	}
	cfg := configs[*supp]
	if *at != "" {
		tod, err := domain.ParseTimeOfDay(*at)
		if err != nil {
			return err
		}
		cfg.TimeOfDay = tod
	}
	cfg.Enabled = !*off

	err = a.SetReminder(ctx, *supp, cfg)
	if err != nil && !errors.Is(err, app.ErrRearm) {
		return err
	}
	state := a.Scheduler.State()
	switch {
	case state.PermissionDenied:
		fmt.Fprintln(out, "notifications are disabled; reminder saved but not armed")
	default:
		fmt.Fprintf(out, "%s: enabled=%t at %s, %d trigger(s) armed\n", *supp, cfg.Enabled, cfg.TimeOfDay, len(state.ArmedFor(*supp)))
	}
	return err
}

func cmdRearm(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if err := parse(newFlags("rearm", out), args); err != nil {
		return err
	}
	state, err := a.Rearm(ctx)
	if err != nil {
		return err
	}
	if state.PermissionDenied {
		fmt.Fprintln(out, "notifications are disabled; nothing armed")
		return nil
	}
	for _, armed := range state.Armed {
		fmt.Fprintf(out, "%s  %-16s %s\n", armed.At.Format("2006-01-02 15:04"), armed.Payload.SupplementID, armed.Payload.Title)
	}
	fmt.Fprintf(out, "%d trigger(s) armed\n", len(state.Armed))
	return nil
}

func cmdDashboard(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("dashboard", out)
	date := fs.String("date", "today", "day (YYYY-MM-DD)")
	if err := parse(fs, args); err != nil {
		return err
	}
	day, err := parseDay(a, *date)
	if err != nil {
		return err
	}
	d, err := a.Dashboard(ctx, day)
	if err != nil {
		return err
	}
	return printJSON(out, d)
}

func windowFlags(fs *flag.FlagSet) (date, window *string) {
	date = fs.String("date", "today", "reference day (YYYY-MM-DD)")
	window = fs.String("window", string(stats.WindowWeek), "day, week or month")
	return date, window
}

func resolveWindow(a *app.App, date, window string) (domain.Date, stats.Window, error) {
	day, err := parseDay(a, date)
	if err != nil {
		return domain.Date{}, "", err
	}
	w, err := stats.ParseWindow(window)
	if err != nil {
		return domain.Date{}, "", err
	}
	return day, w, nil
}

func cmdSummary(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("summary", out)
	date, window := windowFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	day, w, err := resolveWindow(a, *date, *window)
	if err != nil {
		return err
	}
	s, err := a.Summary(ctx, day, w)
	if err != nil {
		return err
	}
	return printJSON(out, s)
}

func cmdSeries(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("series", out)
	date, window := windowFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	day, w, err := resolveWindow(a, *date, *window)
	if err != nil {
		return err
	}
	series, err := a.EnergySeries(ctx, day, w)
	if err != nil {
		return err
	}
	return printJSON(out, series)
}

func cmdAdherence(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("adherence", out)
	date, window := windowFlags(fs)
	supp := fs.String("supp", "", "supplement id")
	if err := parse(fs, args); err != nil {
		return err
	}
	day, w, err := resolveWindow(a, *date, *window)
	if err != nil {
		return err
	}
	satisfied, days, err := a.Adherence(ctx, *supp, day, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d of %d day(s)\n", *supp, satisfied, days)
	return nil
}

func cmdPR(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("pr", out)
	exercise := fs.String("exercise", "", "exercise id")
	if err := parse(fs, args); err != nil {
		return err
	}
	best, ok, err := a.PersonalRecord(ctx, *exercise)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(out, "%s: no performance logged\n", *exercise)
		return nil
	}
	fmt.Fprintf(out, "%s: %g\n", *exercise, best)
	return nil
}

func cmdProgress(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("progress", out)
	exercise := fs.String("exercise", "", "exercise id")
	if err := parse(fs, args); err != nil {
		return err
	}
	points, err := a.Progress(ctx, *exercise)
	if err != nil {
		return err
	}
	return printJSON(out, points)
}

func cmdNextPlan(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if err := parse(newFlags("next-plan", out), args); err != nil {
		return err
	}
	plan, ok, err := a.Ledger.NextPlan(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "no workout plans defined")
		return nil
	}
	fmt.Fprintf(out, "%s  %s (%s)\n", plan.ID, plan.Name, plan.MuscleGroups)
	return nil
}

func cmdPlans(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if err := parse(newFlags("plans", out), args); err != nil {
		return err
	}
	plans, err := a.Catalog.Plans(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, plans)
}

func cmdSports(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if err := parse(newFlags("sports", out), args); err != nil {
		return err
	}
	sports, err := a.Catalog.Sports(ctx)
	if err != nil {
		return err
	}
	for _, s := range sports {
		fmt.Fprintf(out, "%-16s %-20s %s\n", s.ID, s.Name, s.Icon)
	}
	return nil
}

func cmdAddSport(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("add-sport", out)
	name := fs.String("name", "", "display name")
	icon := fs.String("icon", "", "icon as SET:NAME or NAME")
	if err := parse(fs, args); err != nil {
		return err
	}
	sport, err := a.Catalog.AddSport(ctx, *name, domain.ParseIconRef(*icon))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s\n", sport.ID)
	return nil
}

func cmdSupplements(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if err := parse(newFlags("supplements", out), args); err != nil {
		return err
	}
	supplements, err := a.Catalog.Supplements(ctx)
	if err != nil {
		return err
	}
	configs, err := a.Catalog.ReminderConfigs(ctx)
	if err != nil {
		return err
	}
	for _, s := range supplements {
		reminder := "off"
		if cfg, ok := configs[s.ID]; ok && cfg.Enabled {
			reminder = cfg.TimeOfDay.String()
		}
		fmt.Fprintf(out, "%-16s %-20s %-8s %-12s reminder=%s\n", s.ID, s.Name, s.Dose, s.TrackingType, reminder)
	}
	return nil
}

func cmdProfile(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("profile", out)
	weight := fs.Float64("weight", 0, "body weight in kg")
	height := fs.Float64("height", 0, "height in cm")
	birth := fs.String("birth", "", "birth date (YYYY-MM-DD)")
	sex := fs.String("sex", "", "male or female")
	level := fs.String("level", string(domain.ActivityModerate), "sedentary, light, moderate, active or very_active")
	goalWeight := fs.Float64("goal-weight", 0, "target weight in kg")
	goalDate := fs.String("goal-date", "", "target date (YYYY-MM-DD)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if fs.NFlag() == 0 {
		profile, ok, err := a.Catalog.Profile(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "no profile saved")
			return nil
		}
		return printJSON(out, profile)
	}

	profile := domain.UserProfile{
		WeightKG:      *weight,
		HeightCM:      *height,
		Sex:           domain.Sex(*sex),
		ActivityLevel: domain.ActivityLevel(*level),
	}
	if *birth != "" {
		d, err := domain.ParseDate(*birth)
		if err != nil {
			return err
		}
		profile.BirthDate = d
	}
	if *goalWeight > 0 {
		d, err := domain.ParseDate(*goalDate)
		if err != nil {
			return err
		}
		profile.Goal = &domain.Goal{TargetWeightKG: *goalWeight, TargetDate: d}
	}
	if err := a.Catalog.SaveProfile(ctx, profile); err != nil {
		return err
	}
	fmt.Fprintln(out, "profile saved")
	return nil
}

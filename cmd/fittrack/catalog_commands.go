package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"example.com/fittrack/internal/app"
	"example.com/fittrack/internal/domain"
)

// setFlags reports which flags were given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	return nil
}

func cmdAddSupplement(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("add-supplement", out)
	name := fs.String("name", "", "display name")
	amount := fs.Float64("amount", 0, "dose amount")
	unit := fs.String("unit", "", "dose unit")
	tracking := fs.String("type", string(domain.TrackingDailyCheck), "daily_check or counter")
	if err := parse(fs, args); err != nil {
		return err
	}
	s, err := a.AddSupplement(ctx, domain.Supplement{
		Name:         strings.TrimSpace(*name),
		Dose:         domain.Dose{Amount: *amount, Unit: strings.TrimSpace(*unit)},
		TrackingType: domain.TrackingType(*tracking),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s\n", s.ID)
	return nil
}

func cmdEditSupplement(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("edit-supplement", out)
	id := fs.String("id", "", "supplement id")
	name := fs.String("name", "", "display name")
	amount := fs.Float64("amount", 0, "dose amount")
	unit := fs.String("unit", "", "dose unit")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("id", *id); err != nil {
		return err
	}

	supplements, err := a.Catalog.Supplements(ctx)
	if err != nil {
		return err
	}
	var (
		s     domain.Supplement
		found bool
	)
	for _, candidate := range supplements {
		if candidate.ID == *id {
			s, found = candidate, true
			break
		}
	}
	if !found {
		return fmt.Errorf("supplement %s not found", *id)
	}

	set := setFlags(fs)
	if set["name"] {
		s.Name = strings.TrimSpace(*name)
	}
	if set["amount"] {
		s.Dose.Amount = *amount
	}
	if set["unit"] {
		s.Dose.Unit = strings.TrimSpace(*unit)
	}

	err = a.UpdateSupplement(ctx, s)
	if err != nil && !errors.Is(err, app.ErrRearm) {
		return err
	}
	fmt.Fprintf(out, "updated %s (%s, %s)\n", s.ID, s.Name, s.Dose)
	return err
}

func cmdDeleteSupplement(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("delete-supplement", out)
	id := fs.String("id", "", "supplement id")
	if err := parse(fs, args); err != nil {
		return err
	}
	err := a.DeleteSupplement(ctx, *id)
	if err != nil && !errors.Is(err, app.ErrRearm) {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", *id)
	return err
}

func cmdCreatePlan(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("create-plan", out)
	name := fs.String("name", "", "display name")
	groups := fs.String("groups", "", "muscle groups label")
	if err := parse(fs, args); err != nil {
		return err
	}
	plan, err := a.Catalog.CreatePlan(ctx, *name, *groups)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created plan %s (%s)\n", plan.ID, plan.Name)
	return nil
}

func cmdRenamePlan(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("rename-plan", out)
	id := fs.String("plan", "", "plan id")
	name := fs.String("name", "", "display name")
	groups := fs.String("groups", "", "muscle groups label")
	if err := parse(fs, args); err != nil {
		return err
	}
	plan, err := a.Catalog.Plan(ctx, *id)
	if err != nil {
		return err
	}
	set := setFlags(fs)
	if set["name"] {
		plan.Name = *name
	}
	if set["groups"] {
		plan.MuscleGroups = *groups
	}
	if err := a.Catalog.RenamePlan(ctx, plan.ID, plan.Name, plan.MuscleGroups); err != nil {
		return err
	}
	fmt.Fprintf(out, "renamed plan %s\n", plan.ID)
	return nil
}

func cmdDeletePlan(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("delete-plan", out)
	id := fs.String("plan", "", "plan id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.Catalog.DeletePlan(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted plan %s\n", *id)
	return nil
}

func exerciseFlags(fs *flag.FlagSet) (name, muscle, reps, notes, media *string, sets *int) {
	name = fs.String("name", "", "exercise name")
	muscle = fs.String("muscle", "", "target muscle")
	sets = fs.Int("sets", 0, "number of sets")
	reps = fs.String("reps", "", "reps scheme, e.g. 12/10/8")
	notes = fs.String("notes", "", "free-form notes")
	media = fs.String("media", "", "demonstration URL")
	return name, muscle, reps, notes, media, sets
}

func cmdAddExercise(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("add-exercise", out)
	plan := fs.String("plan", "", "plan id")
	id := fs.String("id", "", "exercise id; generated when empty")
	name, muscle, reps, notes, media, sets := exerciseFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	ex, err := a.Catalog.AddExercise(ctx, *plan, domain.Exercise{
		ID:           strings.TrimSpace(*id),
		Name:         strings.TrimSpace(*name),
		TargetMuscle: strings.TrimSpace(*muscle),
		Sets:         *sets,
		Reps:         strings.TrimSpace(*reps),
		Notes:        *notes,
		MediaURL:     strings.TrimSpace(*media),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added exercise %s to plan %s\n", ex.ID, *plan)
	return nil
}

func cmdEditExercise(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("edit-exercise", out)
	planID := fs.String("plan", "", "plan id")
	id := fs.String("id", "", "exercise id")
	name, muscle, reps, notes, media, sets := exerciseFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	plan, err := a.Catalog.Plan(ctx, *planID)
	if err != nil {
		return err
	}
	ex, ok := plan.Exercise(*id)
	if !ok {
		return fmt.Errorf("exercise %s not found in plan %s", *id, plan.ID)
	}

	set := setFlags(fs)
	if set["name"] {
		ex.Name = strings.TrimSpace(*name)
	}
	if set["muscle"] {
		ex.TargetMuscle = strings.TrimSpace(*muscle)
	}
	if set["sets"] {
		ex.Sets = *sets
	}
	if set["reps"] {
		ex.Reps = strings.TrimSpace(*reps)
	}
	if set["notes"] {
		ex.Notes = *notes
	}
	if set["media"] {
		ex.MediaURL = strings.TrimSpace(*media)
	}
	if err := a.Catalog.UpdateExercise(ctx, plan.ID, ex); err != nil {
		return err
	}
	fmt.Fprintf(out, "updated exercise %s in plan %s\n", ex.ID, plan.ID)
	return nil
}

func cmdDeleteExercise(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("delete-exercise", out)
	plan := fs.String("plan", "", "plan id")
	id := fs.String("id", "", "exercise id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.Catalog.DeleteExercise(ctx, *plan, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted exercise %s from plan %s\n", *id, *plan)
	return nil
}

func cmdReorderExercises(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("reorder-exercises", out)
	plan := fs.String("plan", "", "plan id")
	order := fs.String("order", "", "every exercise id of the plan, comma separated, in the new order")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlag("order", *order); err != nil {
		return err
	}
	ids := strings.Split(*order, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	if err := a.Catalog.ReorderExercises(ctx, *plan, ids); err != nil {
		return err
	}
	fmt.Fprintf(out, "plan %s: %s\n", *plan, strings.Join(ids, ", "))
	return nil
}

func cmdDeleteSport(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("delete-sport", out)
	id := fs.String("sport", "", "sport id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.Catalog.DeleteSport(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted sport %s\n", *id)
	return nil
}

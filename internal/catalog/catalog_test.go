package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/repository"
	"example.com/fittrack/internal/store/memory"
)

func newTestCatalog() *Catalog {
	seq := 0
	return New(repository.New(memory.New()), func() string {
		seq++
		return fmt.Sprintf("%d", seq)
	})
}

func TestPlanLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	plan, err := c.CreatePlan(ctx, " Treino D ", "Full body")
	require.NoError(t, err)
	require.Equal(t, "Treino D", plan.Name)
	require.Equal(t, 3, plan.Position, "new plans join the end of the rotation")

	ordered, err := c.Plans(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", plan.ID}, planIDs(ordered))

	first, err := c.AddExercise(ctx, plan.ID, domain.Exercise{Name: "Terra", Sets: 4, Reps: "8"})
	require.NoError(t, err)
	second, err := c.AddExercise(ctx, plan.ID, domain.Exercise{Name: "Barra fixa", Sets: 3, Reps: "10"})
	require.NoError(t, err)

	require.NoError(t, c.ReorderExercises(ctx, plan.ID, []string{second.ID, first.ID}))
	got, err := c.Plan(ctx, plan.ID)
	require.NoError(t, err)
	require.Equal(t, "Barra fixa", got.Exercises[0].Name)

	require.ErrorIs(t, c.ReorderExercises(ctx, plan.ID, []string{second.ID, second.ID}), domain.ErrInvalidEntry)
	require.ErrorIs(t, c.ReorderExercises(ctx, plan.ID, []string{second.ID}), domain.ErrInvalidEntry)

	first.Sets = 5
	require.NoError(t, c.UpdateExercise(ctx, plan.ID, first))
	require.NoError(t, c.DeleteExercise(ctx, plan.ID, second.ID))
	require.ErrorIs(t, c.DeleteExercise(ctx, plan.ID, second.ID), ErrExerciseNotFound)

	got, err = c.Plan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	require.Equal(t, 5, got.Exercises[0].Sets)

	require.NoError(t, c.RenamePlan(ctx, plan.ID, "Treino E", "Costas"))
	require.ErrorIs(t, c.RenamePlan(ctx, plan.ID, " ", ""), domain.ErrInvalidEntry)

	require.NoError(t, c.DeletePlan(ctx, plan.ID))
	require.ErrorIs(t, c.DeletePlan(ctx, plan.ID), ErrPlanNotFound)
	_, err = c.Plan(ctx, plan.ID)
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGymSportIsReserved(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	require.ErrorIs(t, c.DeleteSport(ctx, domain.SportGym), ErrReservedSport)

	sport, err := c.AddSport(ctx, "Natação", domain.ParseIconRef("water-outline"))
	require.NoError(t, err)
	require.Equal(t, "sport_1", sport.ID)

	require.NoError(t, c.DeleteSport(ctx, sport.ID))
	require.ErrorIs(t, c.DeleteSport(ctx, sport.ID), ErrSportNotFound)

	sports, err := c.Sports(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.SportGym, sports[0].ID)
}

func TestDeleteSupplementDropsReminder(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	supp, err := c.AddSupplement(ctx, domain.Supplement{Name: "Ômega 3", Dose: domain.Dose{Amount: 1, Unit: "cápsula"}, TrackingType: domain.TrackingDailyCheck})
	require.NoError(t, err)

	tod, _ := domain.ParseTimeOfDay("21:00")
	require.NoError(t, c.SetReminder(ctx, supp.ID, domain.ReminderConfig{Enabled: true, TimeOfDay: tod}))
	require.ErrorIs(t, c.SetReminder(ctx, "supp_missing", domain.ReminderConfig{}), ErrSupplementNotFound)

	require.NoError(t, c.DeleteSupplement(ctx, supp.ID))
	configs, err := c.ReminderConfigs(ctx)
	require.NoError(t, err)
	require.NotContains(t, configs, supp.ID)

	require.ErrorIs(t, c.DeleteSupplement(ctx, supp.ID), ErrSupplementNotFound)
}

func TestUpdateSupplementValidates(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	supplements, err := c.Supplements(ctx)
	require.NoError(t, err)
	whey := supplements[1]
	whey.Dose.Amount = 40
	require.NoError(t, c.UpdateSupplement(ctx, whey))

	whey.TrackingType = "weekly"
	require.ErrorIs(t, c.UpdateSupplement(ctx, whey), domain.ErrInvalidEntry)
}

func TestUpdateSupplementKeepsTrackingType(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	supplements, err := c.Supplements(ctx)
	require.NoError(t, err)
	creatine := supplements[0]
	require.Equal(t, domain.TrackingDailyCheck, creatine.TrackingType)

	creatine.TrackingType = domain.TrackingCounter
	require.ErrorIs(t, c.UpdateSupplement(ctx, creatine), ErrTrackingTypeChange)

	stored, err := c.Supplements(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.TrackingDailyCheck, stored[0].TrackingType)
}

func TestSaveProfileOverwrites(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog()

	_, ok, err := c.Profile(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	profile := domain.UserProfile{
		WeightKG: 80, HeightCM: 180, BirthDate: domain.NewDate(1994, time.January, 1),
		Sex: domain.SexMale, ActivityLevel: domain.ActivityModerate,
		Goal: &domain.Goal{TargetWeightKG: 75, TargetDate: domain.NewDate(2025, time.January, 1)},
	}
	require.NoError(t, c.SaveProfile(ctx, profile))

	profile.Goal = nil
	require.NoError(t, c.SaveProfile(ctx, profile))
	got, ok, err := c.Profile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, got.Goal, "save replaces the whole profile")

	require.ErrorIs(t, c.SaveProfile(ctx, domain.UserProfile{}), domain.ErrInvalidEntry)
}

func planIDs(plans []domain.WorkoutPlan) []string {
	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return ids
}

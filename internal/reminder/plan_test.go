package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
)

var (
	creatine = domain.Supplement{ID: "supp_creatine", Name: "Creatina", Dose: domain.Dose{Amount: 6, Unit: "g"}, TrackingType: domain.TrackingDailyCheck}
	whey     = domain.Supplement{ID: "supp_whey", Name: "Whey Protein", Dose: domain.Dose{Amount: 30, Unit: "g"}, TrackingType: domain.TrackingCounter}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.May, day, hour, minute, 0, 0, time.UTC)
}

func enabledAt(hhmm string) domain.ReminderConfig {
	tod, err := domain.ParseTimeOfDay(hhmm)
	if err != nil {
		panic(err)
	}
	return domain.ReminderConfig{Enabled: true, TimeOfDay: tod}
}

func TestPlanFuturePrimaryToday(t *testing.T) {
	configs := map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")}

	triggers := Plan(at(6, 7, 0), []domain.Supplement{creatine}, configs, nil, DefaultPolicy)
	require.Len(t, triggers, 6)
	require.Equal(t, at(6, 8, 0), triggers[0].At)
	require.Equal(t, 0, triggers[0].Payload.Sequence)
	for i := 1; i < 6; i++ {
		require.Equal(t, at(6, 8+i, 0), triggers[i].At)
		require.Equal(t, i, triggers[i].Payload.Sequence)
	}
}

func TestPlanPastPrimaryMovesToTomorrow(t *testing.T) {
	configs := map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")}

	triggers := Plan(at(6, 9, 0), []domain.Supplement{creatine}, configs, nil, DefaultPolicy)
	require.Equal(t, at(7, 8, 0), triggers[0].At)

	triggers = Plan(at(6, 8, 0), []domain.Supplement{creatine}, configs, nil, DefaultPolicy)
	require.Equal(t, at(7, 8, 0), triggers[0].At, "a primary exactly at now is not in the future")
}

func TestPlanSuppressesSatisfiedSupplements(t *testing.T) {
	configs := map[string]domain.ReminderConfig{
		creatine.ID: enabledAt("08:00"),
		whey.ID:     enabledAt("10:00"),
	}
	today := map[string]domain.Intake{creatine.ID: {Taken: true}}

	triggers := Plan(at(6, 7, 0), []domain.Supplement{creatine, whey}, configs, today, DefaultPolicy)
	for _, tr := range triggers {
		require.Equal(t, whey.ID, tr.Payload.SupplementID)
	}

	today[whey.ID] = domain.Intake{Count: 1}
	require.Empty(t, Plan(at(6, 7, 0), []domain.Supplement{creatine, whey}, configs, today, DefaultPolicy))
}

func TestPlanSkipsDisabledAndOrphanedConfigs(t *testing.T) {
	configs := map[string]domain.ReminderConfig{
		creatine.ID:    {Enabled: false, TimeOfDay: domain.TimeOfDay{Hour: 8}},
		"supp_deleted": enabledAt("08:00"),
	}
	require.Empty(t, Plan(at(6, 7, 0), []domain.Supplement{creatine}, configs, nil, DefaultPolicy))
}

func TestPlanReinforcementsStopAtMidnight(t *testing.T) {
	configs := map[string]domain.ReminderConfig{creatine.ID: enabledAt("21:30")}

	triggers := Plan(at(6, 12, 0), []domain.Supplement{creatine}, configs, nil, DefaultPolicy)
	require.Len(t, triggers, 3)
	require.Equal(t, at(6, 23, 30), triggers[2].At)
}

func TestPlanOrdersAcrossSupplements(t *testing.T) {
	configs := map[string]domain.ReminderConfig{
		creatine.ID: enabledAt("09:00"),
		whey.ID:     enabledAt("08:30"),
	}
	triggers := Plan(at(6, 7, 0), []domain.Supplement{creatine, whey}, configs, nil, Policy{Reinforcements: 1, Interval: time.Hour})
	require.Len(t, triggers, 4)
	require.Equal(t, whey.ID, triggers[0].Payload.SupplementID)
	require.Equal(t, creatine.ID, triggers[1].Payload.SupplementID)
	for i := 1; i < len(triggers); i++ {
		require.False(t, triggers[i].At.Before(triggers[i-1].At))
	}
}

func TestPlanRespectsLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	configs := map[string]domain.ReminderConfig{creatine.ID: enabledAt("08:00")}

	// 09:00 UTC is 06:00 in BRT, so today's 08:00 BRT is still ahead.
	now := time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC).In(brt)
	triggers := Plan(now, []domain.Supplement{creatine}, configs, nil, Policy{})
	require.Len(t, triggers, 1)
	require.Equal(t, time.Date(2024, time.May, 6, 11, 0, 0, 0, time.UTC), triggers[0].At.UTC())
}

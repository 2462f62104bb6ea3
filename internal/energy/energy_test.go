package energy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
)

func TestBMRReferenceProfile(t *testing.T) {
	bmr := BMR(80, 180, 30, domain.SexMale)
	require.Equal(t, 1780.0, math.Round(bmr))
	require.InDelta(t, 2759, TDEE(bmr, domain.ActivityModerate), 0.5)

	require.Equal(t, 1614.0, math.Round(BMR(80, 180, 30, domain.SexFemale)))
}

func TestTDEEMonotonicInActivityLevel(t *testing.T) {
	levels := []domain.ActivityLevel{
		domain.ActivitySedentary,
		domain.ActivityLight,
		domain.ActivityModerate,
		domain.ActivityActive,
		domain.ActivityVeryActive,
	}
	bmr := BMR(72, 170, 41, domain.SexFemale)
	prev := 0.0
	for _, level := range levels {
		got := TDEE(bmr, level)
		require.Greater(t, got, prev, "level %s", level)
		prev = got
	}
}

func TestUnknownLevelIsModerate(t *testing.T) {
	require.Equal(t, 1.55, Multiplier("couch"))
}

func TestGoalAdjustment(t *testing.T) {
	today := domain.NewDate(2024, time.January, 1)

	tests := []struct {
		name string
		goal *domain.Goal
		want float64
	}{
		{name: "no goal", goal: nil, want: 0},
		{name: "past target", goal: &domain.Goal{TargetWeightKG: 75, TargetDate: today.AddDays(-1)}, want: 0},
		{name: "target today", goal: &domain.Goal{TargetWeightKG: 75, TargetDate: today}, want: 0},
		{name: "lose 5kg in 100 days", goal: &domain.Goal{TargetWeightKG: 75, TargetDate: today.AddDays(100)}, want: 385},
		{name: "gain 2kg in 70 days", goal: &domain.Goal{TargetWeightKG: 82, TargetDate: today.AddDays(70)}, want: -220},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, GoalAdjustment(80, tt.goal, today), 0.001)
		})
	}
}

func TestDailyAppliesGoal(t *testing.T) {
	today := domain.NewDate(2024, time.January, 1)
	profile := domain.UserProfile{
		WeightKG:      80,
		HeightCM:      180,
		BirthDate:     domain.NewDate(1993, time.June, 1),
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityModerate,
		Goal:          &domain.Goal{TargetWeightKG: 75, TargetDate: today.AddDays(100)},
	}

	est := Daily(profile, today)
	require.Equal(t, 1780.0, est.BMR)
	require.Equal(t, 2759.0, est.TDEE)
	require.Equal(t, 385.0, est.Adjustment)
	require.Equal(t, 2374.0, est.Target)
}

func TestCaloriesFormulas(t *testing.T) {
	// (8 × 80 × 3.5 / 200) × 60 = 672
	require.InDelta(t, 672, DefaultMETs.Calories("futebol", domain.IntensityModerate, 80, 60), 1e-9)
	// 9.8 × 80 × 0.5h = 392
	require.InDelta(t, 392, DefaultMETs.Calories("corrida", "", 80, 30), 1e-9)
}

func TestCaloriesFallBackToDefaultTable(t *testing.T) {
	// Unknown activity, vigorous: (7 × 70 × 3.5 / 200) × 60 = 514.5
	require.InDelta(t, 514.5, DefaultMETs.Calories("sport_123", domain.IntensityVigorous, 0, 60), 1e-9)

	met, continuous := DefaultMETs.MET("sport_123", "unknown")
	require.Equal(t, 4.5, met)
	require.False(t, continuous)

	require.Zero(t, DefaultMETs.Calories("boxe", domain.IntensityLight, 80, 0))
}

func TestBMIClassification(t *testing.T) {
	bmi := BMI(80, 180)
	require.InDelta(t, 24.69, bmi, 0.01)
	require.Equal(t, BMINormal, ClassifyBMI(bmi))
	require.Equal(t, BMIUnderweight, ClassifyBMI(18.4))
	require.Equal(t, BMIOverweight, ClassifyBMI(25))
	require.Equal(t, BMIObese, ClassifyBMI(30))
	require.Zero(t, BMI(80, 0))
}

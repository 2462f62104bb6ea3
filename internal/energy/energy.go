// Package energy estimates resting and daily energy expenditure and the
// caloric cost of activities. Every function is pure.
package energy

import (
	"math"

	"example.com/fittrack/internal/domain"
)

// KcalPerKG approximates the energy stored in one kilogram of body fat.
const KcalPerKG = 7700

// ActivityMultipliers scale BMR to TDEE per declared activity level.
var ActivityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKG, heightCM float64, age int, sex domain.Sex) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if sex == domain.SexFemale {
		return base - 161
	}
	return base + 5
}

// Multiplier returns the TDEE multiplier for level. Unknown levels are
// treated as moderate.
func Multiplier(level domain.ActivityLevel) float64 {
	if m, ok := ActivityMultipliers[level]; ok {
		return m
	}
	return ActivityMultipliers[domain.ActivityModerate]
}

// TDEE scales bmr by the activity multiplier.
func TDEE(bmr float64, level domain.ActivityLevel) float64 {
	return bmr * Multiplier(level)
}

// GoalAdjustment returns the daily kcal to subtract from TDEE to move from
// weightKG to the goal weight by its target date. Losing weight yields a
// positive value, gaining a negative one. Absent goals and target dates on
// or before today yield zero.
func GoalAdjustment(weightKG float64, goal *domain.Goal, today domain.Date) float64 {
	if goal == nil || goal.TargetWeightKG <= 0 || goal.TargetDate.IsZero() {
		return 0
	}
	if !goal.TargetDate.After(today) {
		return 0
	}
	days := math.Ceil(goal.TargetDate.Sub(today.Time).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return (weightKG - goal.TargetWeightKG) * KcalPerKG / days
}

// Estimate is the daily energy picture derived from a profile.
type Estimate struct {
	BMR        float64 `json:"bmr"`
	TDEE       float64 `json:"tdee"`
	Adjustment float64 `json:"adjustment"`
	Target     float64 `json:"target"`
}

// Daily derives BMR, maintenance TDEE and the goal-adjusted intake target
// for profile on today. Values are rounded to whole kcal.
func Daily(profile domain.UserProfile, today domain.Date) Estimate {
	bmr := BMR(profile.WeightKG, profile.HeightCM, profile.AgeOn(today), profile.Sex)
	tdee := TDEE(bmr, profile.ActivityLevel)
	adj := GoalAdjustment(profile.WeightKG, profile.Goal, today)
	return Estimate{
		BMR:        math.Round(bmr),
		TDEE:       math.Round(tdee),
		Adjustment: math.Round(adj),
		Target:     math.Round(tdee - adj),
	}
}

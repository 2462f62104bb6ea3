package domain

import "fmt"

// Sex selects the BMR equation variant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the self-reported baseline activity used for TDEE.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal is a target body weight to reach by a date.
type Goal struct {
	TargetWeightKG float64 `json:"target_weight_kg"`
	TargetDate     Date    `json:"target_date"`
}

// UserProfile is the single profile record. Saving replaces it entirely.
type UserProfile struct {
	WeightKG      float64       `json:"weight_kg"`
	HeightCM      float64       `json:"height_cm"`
	BirthDate     Date          `json:"birth_date"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          *Goal         `json:"goal,omitempty"`
}

// AgeOn returns the age in whole years on day.
func (p UserProfile) AgeOn(day Date) int {
	age := day.Year() - p.BirthDate.Year()
	if day.Month() < p.BirthDate.Month() ||
		(day.Month() == p.BirthDate.Month() && day.Day() < p.BirthDate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Validate checks the physical measurements.
func (p UserProfile) Validate() error {
	if p.WeightKG <= 0 || p.HeightCM <= 0 {
		return fmt.Errorf("%w: weight and height must be positive", ErrInvalidEntry)
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("%w: birth date is required", ErrInvalidEntry)
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("%w: unknown sex %q", ErrInvalidEntry, p.Sex)
	}
	if p.Goal != nil && p.Goal.TargetWeightKG <= 0 {
		return fmt.Errorf("%w: goal weight must be positive", ErrInvalidEntry)
	}
	return nil
}

package domain

import (
	"fmt"
	"strings"
)

// Meal names the slot a food entry was eaten in.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

// Meals lists the slots in display order.
var Meals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether m is a known meal slot.
func (m Meal) Valid() bool {
	for _, known := range Meals {
		if m == known {
			return true
		}
	}
	return false
}

// Nutrition is the energy and macronutrient content of a food entry.
type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add returns the element-wise sum.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories,
		ProteinG: n.ProteinG + other.ProteinG,
		CarbsG:   n.CarbsG + other.CarbsG,
		FatG:     n.FatG + other.FatG,
	}
}

// FoodEntry records something eaten on a day.
type FoodEntry struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Meal        Meal      `json:"meal"`
	Description string    `json:"description"`
	Nutrition   Nutrition `json:"nutrition"`
}

// Validate checks required fields and non-negative quantities.
func (f FoodEntry) Validate() error {
	if f.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	if !f.Meal.Valid() {
		return fmt.Errorf("%w: unknown meal %q", ErrInvalidEntry, f.Meal)
	}
	if strings.TrimSpace(f.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}
	n := f.Nutrition
	if n.Calories < 0 || n.ProteinG < 0 || n.CarbsG < 0 || n.FatG < 0 {
		return fmt.Errorf("%w: negative nutrition value", ErrInvalidEntry)
	}
	return nil
}

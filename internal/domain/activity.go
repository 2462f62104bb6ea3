// Package domain defines the records kept by the tracker and the rules that
// are shared by every component that reads them.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEntryNotFound is returned when a ledger entry cannot be located.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidEntry indicates the entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrDuplicateID is returned when a new entry reuses the id of a stored one.
	ErrDuplicateID = errors.New("entry id already in use")
)

// SportGym is the reserved sport identifier of the resistance-training category.
const SportGym = "gym"

// Intensity grades the effort of a sport session.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

// Valid reports whether i is one of the known intensities.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLight, IntensityModerate, IntensityVigorous:
		return true
	}
	return false
}

// ActivityDetails holds the category-specific payload of an entry.
// Resistance-training entries use PlanID and Performance; sport entries use
// DurationMin, Intensity and DistanceKM. Calories is set for both when known.
type ActivityDetails struct {
	PlanID      string             `json:"plan_id,omitempty"`
	Performance map[string]float64 `json:"performance,omitempty"`
	DurationMin float64            `json:"duration_min,omitempty"`
	Intensity   Intensity          `json:"intensity,omitempty"`
	DistanceKM  float64            `json:"distance_km,omitempty"`
	Calories    float64            `json:"calories"`
	Notes       string             `json:"notes,omitempty"`
}

// ActivityEntry is one training or sport session on a calendar day.
type ActivityEntry struct {
	ID       string          `json:"id"`
	Date     Date            `json:"date"`
	Category string          `json:"category"`
	Details  ActivityDetails `json:"details"`
}

// IsResistanceTraining reports whether the entry belongs to the reserved gym category.
func (e ActivityEntry) IsResistanceTraining() bool {
	return e.Category == SportGym
}

// Validate checks the fields every entry must carry.
func (e ActivityEntry) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidEntry)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	if e.IsResistanceTraining() && e.Details.PlanID == "" {
		return fmt.Errorf("%w: resistance training requires a plan", ErrInvalidEntry)
	}
	if !e.IsResistanceTraining() && len(e.Details.Performance) > 0 {
		return fmt.Errorf("%w: exercise loads belong to resistance training", ErrInvalidEntry)
	}
	if e.Details.Intensity != "" && !e.Details.Intensity.Valid() {
		return fmt.Errorf("%w: unknown intensity %q", ErrInvalidEntry, e.Details.Intensity)
	}
	if e.Details.DurationMin < 0 || e.Details.DistanceKM < 0 || e.Details.Calories < 0 {
		return fmt.Errorf("%w: negative measurement", ErrInvalidEntry)
	}
	for exerciseID, load := range e.Details.Performance {
		if load < 0 {
			return fmt.Errorf("%w: negative load for %s", ErrInvalidEntry, exerciseID)
		}
	}
	return nil
}

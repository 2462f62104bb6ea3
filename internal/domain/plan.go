package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Exercise is one movement inside a workout plan.
type Exercise struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TargetMuscle string `json:"target_muscle"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Notes        string `json:"notes,omitempty"`
	MediaURL     string `json:"media_url,omitempty"`
}

// WorkoutPlan is an ordered list of exercises performed as one session.
type WorkoutPlan struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	MuscleGroups string     `json:"muscle_groups"`
	Position     int        `json:"position"`
	Exercises    []Exercise `json:"exercises"`
}

// Validate checks the plan and its exercises.
func (p WorkoutPlan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: plan name is required", ErrInvalidEntry)
	}
	seen := make(map[string]struct{}, len(p.Exercises))
	for _, ex := range p.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Errorf("%w: exercise name is required", ErrInvalidEntry)
		}
		if ex.Sets < 0 {
			return fmt.Errorf("%w: negative sets for %s", ErrInvalidEntry, ex.Name)
		}
		if _, dup := seen[ex.ID]; dup {
			return fmt.Errorf("%w: duplicate exercise id %s", ErrInvalidEntry, ex.ID)
		}
		seen[ex.ID] = struct{}{}
	}
	return nil
}

// Exercise returns the exercise with id.
func (p WorkoutPlan) Exercise(id string) (Exercise, bool) {
	for _, ex := range p.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

// PlanSet is the stored collection of workout plans keyed by id.
type PlanSet map[string]WorkoutPlan

// Ordered returns the plans sorted by position, then id.
func (s PlanSet) Ordered() []WorkoutPlan {
	out := make([]WorkoutPlan, 0, len(s))
	for _, plan := range s {
		out = append(out, plan)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// NextPosition returns the position a newly created plan takes.
func (s PlanSet) NextPosition() int {
	next := 0
	for _, plan := range s {
		if plan.Position >= next {
			next = plan.Position + 1
		}
	}
	return next
}

// After returns the plan that follows planID in rotation order, wrapping
// around. An unknown planID yields the first plan.
func (s PlanSet) After(planID string) (WorkoutPlan, bool) {
	ordered := s.Ordered()
	if len(ordered) == 0 {
		return WorkoutPlan{}, false
	}
	for i, plan := range ordered {
		if plan.ID == planID {
			return ordered[(i+1)%len(ordered)], true
		}
	}
	return ordered[0], true
}

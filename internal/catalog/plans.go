package catalog

import (
	"context"
	"fmt"
	"strings"

	"example.com/fittrack/internal/domain"
)

// Plans returns the workout plans in rotation order.
func (c *Catalog) Plans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	plans, err := c.repo.Plans(ctx)
	if err != nil {
		return nil, err
	}
	return plans.Ordered(), nil
}

// Plan returns one workout plan.
func (c *Catalog) Plan(ctx context.Context, id string) (domain.WorkoutPlan, error) {
	plans, err := c.repo.Plans(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	plan, ok := plans[id]
	if !ok {
		return domain.WorkoutPlan{}, ErrPlanNotFound
	}
	return plan, nil
}

// CreatePlan adds an empty plan at the end of the rotation.
func (c *Catalog) CreatePlan(ctx context.Context, name, muscleGroups string) (domain.WorkoutPlan, error) {
	plans, err := c.repo.Plans(ctx)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	plan := domain.WorkoutPlan{
		ID:           c.newID(),
		Name:         strings.TrimSpace(name),
		MuscleGroups: strings.TrimSpace(muscleGroups),
		Position:     plans.NextPosition(),
		Exercises:    []domain.Exercise{},
	}
	if err := plan.Validate(); err != nil {
		return domain.WorkoutPlan{}, err
	}
	plans[plan.ID] = plan
	if err := c.repo.SavePlans(ctx, plans); err != nil {
		return domain.WorkoutPlan{}, err
	}
	return plan, nil
}

// RenamePlan changes the display name and muscle-group label of a plan.
func (c *Catalog) RenamePlan(ctx context.Context, id, name, muscleGroups string) error {
	return c.mutatePlan(ctx, id, func(plan *domain.WorkoutPlan) error {
		plan.Name = strings.TrimSpace(name)
		plan.MuscleGroups = strings.TrimSpace(muscleGroups)
		return nil
	})
}

// DeletePlan removes a plan. A rotation pointer naming it falls back to the
// first plan on the next suggestion.
func (c *Catalog) DeletePlan(ctx context.Context, id string) error {
	plans, err := c.repo.Plans(ctx)
	if err != nil {
		return err
	}
	if _, ok := plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(plans, id)
	return c.repo.SavePlans(ctx, plans)
}

// AddExercise appends an exercise to a plan.
func (c *Catalog) AddExercise(ctx context.Context, planID string, ex domain.Exercise) (domain.Exercise, error) {
	if ex.ID == "" {
		ex.ID = c.newID()
	}
	err := c.mutatePlan(ctx, planID, func(plan *domain.WorkoutPlan) error {
		plan.Exercises = append(plan.Exercises, ex)
		return nil
	})
	if err != nil {
		return domain.Exercise{}, err
	}
	return ex, nil
}

// UpdateExercise replaces the exercise with the same id.
func (c *Catalog) UpdateExercise(ctx context.Context, planID string, ex domain.Exercise) error {
	return c.mutatePlan(ctx, planID, func(plan *domain.WorkoutPlan) error {
		for i := range plan.Exercises {
			if plan.Exercises[i].ID == ex.ID {
				plan.Exercises[i] = ex
				return nil
			}
		}
		return ErrExerciseNotFound
	})
}

// DeleteExercise removes an exercise from a plan.
func (c *Catalog) DeleteExercise(ctx context.Context, planID, exerciseID string) error {
	return c.mutatePlan(ctx, planID, func(plan *domain.WorkoutPlan) error {
		for i := range plan.Exercises {
			if plan.Exercises[i].ID == exerciseID {
				plan.Exercises = append(plan.Exercises[:i], plan.Exercises[i+1:]...)
				return nil
			}
		}
		return ErrExerciseNotFound
	})
}

// ReorderExercises sets the exercise order. order must name every exercise
// of the plan exactly once.
func (c *Catalog) ReorderExercises(ctx context.Context, planID string, order []string) error {
	return c.mutatePlan(ctx, planID, func(plan *domain.WorkoutPlan) error {
		if len(order) != len(plan.Exercises) {
			return fmt.Errorf("%w: order lists %d exercises, plan has %d", domain.ErrInvalidEntry, len(order), len(plan.Exercises))
		}
		byID := make(map[string]domain.Exercise, len(plan.Exercises))
		for _, ex := range plan.Exercises {
			byID[ex.ID] = ex
		}
		reordered := make([]domain.Exercise, 0, len(order))
		for _, id := range order {
			ex, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: %s listed twice or not in plan", domain.ErrInvalidEntry, id)
			}
			reordered = append(reordered, ex)
			delete(byID, id)
		}
		plan.Exercises = reordered
		return nil
	})
}

func (c *Catalog) mutatePlan(ctx context.Context, id string, fn func(*domain.WorkoutPlan) error) error {
	plans, err := c.repo.Plans(ctx)
	if err != nil {
		return err
	}
	plan, ok := plans[id]
	if !ok {
		return ErrPlanNotFound
	}
	if err := fn(&plan); err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	plans[id] = plan
	return c.repo.SavePlans(ctx, plans)
}

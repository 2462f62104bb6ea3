package catalog

import (
	"context"
	"fmt"

	"example.com/fittrack/internal/domain"
)

// Supplements returns the supplement definitions.
func (c *Catalog) Supplements(ctx context.Context) ([]domain.Supplement, error) {
	return c.repo.Supplements(ctx)
}

// AddSupplement registers a supplement with a generated id.
func (c *Catalog) AddSupplement(ctx context.Context, s domain.Supplement) (domain.Supplement, error) {
	s.ID = "supp_" + c.newID()
	if err := s.Validate(); err != nil {
		return domain.Supplement{}, err
	}
	supplements, err := c.repo.Supplements(ctx)
	if err != nil {
		return domain.Supplement{}, err
	}
	supplements = append(supplements, s)
	if err := c.repo.SaveSupplements(ctx, supplements); err != nil {
		return domain.Supplement{}, err
	}
	return s, nil
}

// UpdateSupplement replaces the supplement with the same id. The tracking
// type must stay the same.
func (c *Catalog) UpdateSupplement(ctx context.Context, s domain.Supplement) error {
	if err := s.Validate(); err != nil {
		return err
	}
	supplements, err := c.repo.Supplements(ctx)
	if err != nil {
		return err
	}
	for i := range supplements {
		if supplements[i].ID == s.ID {
			if supplements[i].TrackingType != s.TrackingType {
				return fmt.Errorf("%w: %s is %s", ErrTrackingTypeChange, s.ID, supplements[i].TrackingType)
			}
			supplements[i] = s
			return c.repo.SaveSupplements(ctx, supplements)
		}
	}
	return ErrSupplementNotFound
}

// DeleteSupplement removes a supplement and its reminder setting. Intake
// history is kept.
func (c *Catalog) DeleteSupplement(ctx context.Context, id string) error {
	supplements, err := c.repo.Supplements(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range supplements {
		if supplements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSupplementNotFound
	}
	supplements = append(supplements[:idx], supplements[idx+1:]...)
	if err := c.repo.SaveSupplements(ctx, supplements); err != nil {
		return err
	}

	configs, err := c.repo.ReminderConfigs(ctx)
	if err != nil {
		return err
	}
	if _, ok := configs[id]; !ok {
		return nil
	}
	delete(configs, id)
	return c.repo.SaveReminderConfigs(ctx, configs)
}

// ReminderConfigs returns reminder settings keyed by supplement id.
func (c *Catalog) ReminderConfigs(ctx context.Context) (map[string]domain.ReminderConfig, error) {
	return c.repo.ReminderConfigs(ctx)
}

// SetReminder stores the reminder setting of a supplement.
func (c *Catalog) SetReminder(ctx context.Context, supplementID string, cfg domain.ReminderConfig) error {
	supplements, err := c.repo.Supplements(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, s := range supplements {
		if s.ID == supplementID {
			found = true
			break
		}
	}
	if !found {
		return ErrSupplementNotFound
	}
	configs, err := c.repo.ReminderConfigs(ctx)
	if err != nil {
		return err
	}
	configs[supplementID] = cfg
	return c.repo.SaveReminderConfigs(ctx, configs)
}

package catalog

import (
	"context"
	"strings"

	"example.com/fittrack/internal/domain"
)

// Sports returns the sport definitions. The reserved gym sport is always present.
func (c *Catalog) Sports(ctx context.Context) ([]domain.SportDefinition, error) {
	return c.repo.Sports(ctx)
}

// AddSport registers a new sport with a generated id.
func (c *Catalog) AddSport(ctx context.Context, name string, icon domain.IconRef) (domain.SportDefinition, error) {
	sport := domain.SportDefinition{ID: "sport_" + c.newID(), Name: strings.TrimSpace(name), Icon: icon}
	if err := sport.Validate(); err != nil {
		return domain.SportDefinition{}, err
	}
	sports, err := c.repo.Sports(ctx)
	if err != nil {
		return domain.SportDefinition{}, err
	}
	sports = append(sports, sport)
	if err := c.repo.SaveSports(ctx, sports); err != nil {
		return domain.SportDefinition{}, err
	}
	return sport, nil
}

// DeleteSport removes a sport. Logged sessions keep their category id.
// The gym sport cannot be removed.
func (c *Catalog) DeleteSport(ctx context.Context, id string) error {
	if id == domain.SportGym {
		return ErrReservedSport
	}
	sports, err := c.repo.Sports(ctx)
	if err != nil {
		return err
	}
	for i := range sports {
		if sports[i].ID == id {
			sports = append(sports[:i], sports[i+1:]...)
			return c.repo.SaveSports(ctx, sports)
		}
	}
	return ErrSportNotFound
}

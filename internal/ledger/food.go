package ledger

import (
	"context"
	"fmt"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/observability"
)

// Foods returns every food entry in stored order.
func (l *Ledger) Foods(ctx context.Context) ([]domain.FoodEntry, error) {
	return l.repo.Foods(ctx)
}

// LogFood appends a food entry. Any number of entries may share a day and meal.
func (l *Ledger) LogFood(ctx context.Context, entry domain.FoodEntry) (domain.FoodEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.FoodEntry{}, err
	}
	entries, err := l.repo.Foods(ctx)
	if err != nil {
		return domain.FoodEntry{}, err
	}
	if entry.ID == "" {
		entry.ID = l.newID()
	} else {
		for _, existing := range entries {
			if existing.ID == entry.ID {
				return domain.FoodEntry{}, fmt.Errorf("%w: %s", domain.ErrDuplicateID, entry.ID)
			}
		}
	}
	entries = append(entries, entry)
	if err := l.repo.SaveFoods(ctx, entries); err != nil {
		return domain.FoodEntry{}, err
	}
	l.recordWrite("food", OutcomeInserted)
	return entry, nil
}

// ReplaceFood overwrites the food entry with the same id.
func (l *Ledger) ReplaceFood(ctx context.Context, entry domain.FoodEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	entries, err := l.repo.Foods(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			if err := l.repo.SaveFoods(ctx, entries); err != nil {
				return err
			}
			observability.RecordLedgerWrite(l.now())
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// RemoveFood deletes the food entry with id.
func (l *Ledger) RemoveFood(ctx context.Context, id string) error {
	entries, err := l.repo.Foods(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			if err := l.repo.SaveFoods(ctx, entries); err != nil {
				return err
			}
			observability.RecordLedgerWrite(l.now())
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

package domain

import (
	"fmt"
	"strings"
)

// TrackingType selects how intake of a supplement is recorded.
type TrackingType string

const (
	// TrackingDailyCheck records a single taken/not-taken flag per day.
	TrackingDailyCheck TrackingType = "daily_check"
	// TrackingCounter records how many doses were taken per day.
	TrackingCounter TrackingType = "counter"
)

// Dose is the amount taken per intake.
type Dose struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (d Dose) String() string {
	return strings.TrimSpace(fmt.Sprintf("%g %s", d.Amount, d.Unit))
}

// Supplement is a user-defined supplement with its tracking mode.
type Supplement struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Dose         Dose         `json:"dose"`
	TrackingType TrackingType `json:"tracking_type"`
}

// Validate checks the supplement definition.
func (s Supplement) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: supplement name is required", ErrInvalidEntry)
	}
	if s.TrackingType != TrackingDailyCheck && s.TrackingType != TrackingCounter {
		return fmt.Errorf("%w: unknown tracking type %q", ErrInvalidEntry, s.TrackingType)
	}
	if s.Dose.Amount < 0 {
		return fmt.Errorf("%w: negative dose", ErrInvalidEntry)
	}
	return nil
}

// Intake is the state of one supplement on one day. Daily-check supplements
// use Taken; counter supplements use Count.
type Intake struct {
	Taken bool `json:"taken,omitempty"`
	Count int  `json:"count,omitempty"`
}

// Satisfied reports whether the day's dose has been logged.
func (i Intake) Satisfied() bool {
	return i.Taken || i.Count > 0
}

// IntakeLog maps a day ("YYYY-MM-DD") to per-supplement intake. A missing
// day or supplement means nothing was taken.
type IntakeLog map[string]map[string]Intake

// Day returns the intake for day. The returned map must not be mutated.
func (l IntakeLog) Day(day Date) map[string]Intake {
	if l == nil {
		return nil
	}
	return l[day.String()]
}

// Get returns the intake of supplementID on day, zero when absent.
func (l IntakeLog) Get(day Date, supplementID string) Intake {
	return l.Day(day)[supplementID]
}

// Put stores intake, removing the record when it holds nothing.
func (l IntakeLog) Put(day Date, supplementID string, intake Intake) {
	key := day.String()
	if !intake.Satisfied() {
		if records, ok := l[key]; ok {
			delete(records, supplementID)
			if len(records) == 0 {
				delete(l, key)
			}
		}
		return
	}
	if l[key] == nil {
		l[key] = make(map[string]Intake)
	}
	l[key][supplementID] = intake
}

// ReminderConfig is the reminder setting of one supplement.
type ReminderConfig struct {
	Enabled   bool      `json:"enabled"`
	TimeOfDay TimeOfDay `json:"time"`
}

// Package reminder turns supplement reminder settings into timed
// notifications and keeps them armed as intake and settings change.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"example.com/fittrack/internal/domain"
)

// Policy controls the reinforcement cascade after each primary trigger.
type Policy struct {
	Reinforcements int
	Interval       time.Duration
}

// DefaultPolicy follows a primary reminder with five hourly reinforcements.
var DefaultPolicy = Policy{Reinforcements: 5, Interval: time.Hour}

// Payload is what a delivered notification shows.
type Payload struct {
	SupplementID   string `json:"supplement_id"`
	SupplementName string `json:"supplement_name"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	// Sequence is 0 for the primary trigger and 1..n for reinforcements.
	Sequence int `json:"sequence"`
}

// Trigger is one notification to arm.
type Trigger struct {
	At      time.Time
	Payload Payload
}

// Plan computes the triggers to arm at now. For every enabled supplement
// not yet satisfied today it emits a primary trigger at the configured time
// today, or tomorrow if that moment has passed, followed by the policy's
// reinforcements. Reinforcements never cross into the next calendar day.
// now's location defines "today". Plan has no side effects.
func Plan(now time.Time, supplements []domain.Supplement, configs map[string]domain.ReminderConfig, today map[string]domain.Intake, policy Policy) []Trigger {
	loc := now.Location()
	day := domain.DateOf(now)

	var triggers []Trigger
	for _, supp := range supplements {
		cfg, ok := configs[supp.ID]
		if !ok || !cfg.Enabled {
			continue
		}
		if today[supp.ID].Satisfied() {
			continue
		}

		primary := cfg.TimeOfDay.On(day, loc)
		if !primary.After(now) {
			primary = cfg.TimeOfDay.On(day.AddDays(1), loc)
		}
		primaryDay := domain.DateOf(primary)

		triggers = append(triggers, Trigger{At: primary, Payload: payloadFor(supp, 0)})
		for i := 1; i <= policy.Reinforcements && policy.Interval > 0; i++ {
			at := primary.Add(time.Duration(i) * policy.Interval)
			if !domain.DateOf(at).Equal(primaryDay) {
				break
			}
			triggers = append(triggers, Trigger{At: at, Payload: payloadFor(supp, i)})
		}
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].At.Before(triggers[j].At)
	})
	return triggers
}

func payloadFor(supp domain.Supplement, sequence int) Payload {
	title := "Hora do suplemento"
	body := fmt.Sprintf("Não se esqueça de tomar %s (%s).", supp.Name, supp.Dose)
	if sequence > 0 {
		title = "Lembrete: " + supp.Name
		body = fmt.Sprintf("Você ainda não registrou %s hoje.", supp.Name)
	}
	return Payload{
		SupplementID:   supp.ID,
		SupplementName: supp.Name,
		Title:          title,
		Body:           body,
		Sequence:       sequence,
	}
}

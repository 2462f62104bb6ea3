// Package events defines the payloads exchanged between the fittrack daemons.
package events

import "time"

// Event type header values.
const (
	TypeReminderDue = "reminder.due"
)

// ReminderDue is published when an armed supplement reminder reaches its fire time.
type ReminderDue struct {
	Handle         string    `json:"handle"`
	SupplementID   string    `json:"supplement_id"`
	SupplementName string    `json:"supplement_name"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Sequence       int       `json:"sequence"`
	FireAt         time.Time `json:"fire_at"`
	PublishedAt    time.Time `json:"published_at"`
}

// Reinforcement reports whether the reminder follows an earlier one for the same dose.
func (r ReminderDue) Reinforcement() bool {
	return r.Sequence > 0
}

// Package notify provides notification hosts for the reminder scheduler
// and the dispatcher that delivers due reminders to Kafka.
package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/fittrack/internal/reminder"
)

// Pending is a notification armed on a host.
type Pending struct {
	Handle  string
	At      time.Time
	Payload reminder.Payload
}

// MemoryHost keeps armed notifications in process. It backs the in-memory
// store mode and tests; nothing survives a restart.
type MemoryHost struct {
	mu      sync.Mutex
	granted bool
	pending map[string]Pending
}

// NewMemoryHost constructs a MemoryHost that grants permission when granted is true.
func NewMemoryHost(granted bool) *MemoryHost {
	return &MemoryHost{granted: granted, pending: make(map[string]Pending)}
}

// RequestPermission implements reminder.Host.
func (h *MemoryHost) RequestPermission(context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.granted, nil
}

// ScheduleAt implements reminder.Host.
func (h *MemoryHost) ScheduleAt(_ context.Context, at time.Time, payload reminder.Payload) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle := uuid.NewString()
	h.pending[handle] = Pending{Handle: handle, At: at, Payload: payload}
	return handle, nil
}

// CancelAll implements reminder.Host.
func (h *MemoryHost) CancelAll(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = make(map[string]Pending)
	return nil
}

// Pending returns the armed notifications ordered by fire time.
func (h *MemoryHost) Pending() []Pending {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Pending, 0, len(h.pending))
	for _, p := range h.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].Payload.SupplementID < out[j].Payload.SupplementID
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

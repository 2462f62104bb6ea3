package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fittrack/internal/reminder"
)

// PostgresHost arms notifications as rows in scheduled_notifications so
// they survive restarts. The Dispatcher delivers them when due.
type PostgresHost struct {
	pool    *pgxpool.Pool
	enabled bool
}

// NewPostgresHost constructs a PostgresHost. When enabled is false,
// permission requests are refused and nothing is armed.
func NewPostgresHost(pool *pgxpool.Pool, enabled bool) *PostgresHost {
	return &PostgresHost{pool: pool, enabled: enabled}
}

// RequestPermission implements reminder.Host.
func (h *PostgresHost) RequestPermission(context.Context) (bool, error) {
	return h.enabled, nil
}

// ScheduleAt implements reminder.Host.
func (h *PostgresHost) ScheduleAt(ctx context.Context, at time.Time, payload reminder.Payload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	handle := uuid.NewString()
	const stmt = `INSERT INTO scheduled_notifications (handle, supplement_id, sequence, fire_at, payload)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := h.pool.Exec(ctx, stmt, handle, payload.SupplementID, payload.Sequence, at.UTC(), body); err != nil {
		return "", err
	}
	return handle, nil
}

// CancelAll implements reminder.Host. Delivered and abandoned rows are kept
// as history.
func (h *PostgresHost) CancelAll(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, `DELETE FROM scheduled_notifications WHERE delivered_at IS NULL AND abandoned_at IS NULL`)
	return err
}

// Pending lists undelivered notifications ordered by fire time.
func (h *PostgresHost) Pending(ctx context.Context) ([]Pending, error) {
	rows, err := h.pool.Query(ctx, `SELECT handle::text, fire_at, payload FROM scheduled_notifications
        WHERE delivered_at IS NULL AND abandoned_at IS NULL
        ORDER BY fire_at, supplement_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pending
	for rows.Next() {
		var (
			p   Pending
			raw []byte
		)
		if err := rows.Scan(&p.Handle, &p.At, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &p.Payload); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

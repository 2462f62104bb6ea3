package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Due is a scheduled_notifications row claimed for delivery.
type Due struct {
	Handle       string
	SupplementID string
	Sequence     int
	FireAt       time.Time
	Payload      json.RawMessage
	Attempts     int
}

type queue interface {
	claim(ctx context.Context, now time.Time, limit int) ([]Due, error)
	markDelivered(ctx context.Context, handles []string) error
	scheduleRetry(ctx context.Context, due Due, next time.Time, reason string) error
	abandon(ctx context.Context, due Due, reason string) error
}

// pgQueue is the queue over scheduled_notifications and notification_dlq.
type pgQueue struct {
	pool         *pgxpool.Pool
	claimTimeout time.Duration
}

func (q *pgQueue) claim(ctx context.Context, now time.Time, limit int) (due []Due, err error) {
	tx, err := q.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	query := `SELECT handle::text, supplement_id, sequence, fire_at, payload, attempts
        FROM scheduled_notifications
        WHERE delivered_at IS NULL
          AND abandoned_at IS NULL
          AND fire_at <= $1
          AND (next_attempt_at IS NULL OR next_attempt_at <= $1)
          AND (claimed_at IS NULL OR claimed_at < $2)
        ORDER BY fire_at, handle
        LIMIT $3
        FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, now, now.Add(-q.claimTimeout), limit)
	if err != nil {
		return nil, err
	}
	handles := make([]string, 0)
	for rows.Next() {
		var d Due
		if err = rows.Scan(&d.Handle, &d.SupplementID, &d.Sequence, &d.FireAt, &d.Payload, &d.Attempts); err != nil {
			rows.Close()
			return nil, err
		}
		due = append(due, d)
		handles = append(handles, d.Handle)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(handles) == 0 {
		tx.Rollback(ctx)
		return nil, nil
	}

	if _, err = tx.Exec(ctx, `UPDATE scheduled_notifications SET claimed_at = $1 WHERE handle = ANY($2::uuid[])`, now, handles); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return due, nil
}

func (q *pgQueue) markDelivered(ctx context.Context, handles []string) error {
	if len(handles) == 0 {
		return nil
	}
	_, err := q.pool.Exec(ctx, `UPDATE scheduled_notifications SET delivered_at = NOW(), last_error = NULL WHERE handle = ANY($1::uuid[])`, handles)
	return err
}

func (q *pgQueue) scheduleRetry(ctx context.Context, due Due, next time.Time, reason string) error {
	_, err := q.pool.Exec(ctx,
		`UPDATE scheduled_notifications
            SET attempts = attempts + 1,
                claimed_at = NULL,
                next_attempt_at = $1,
                last_error = $2
          WHERE handle = $3`,
		next, reason, due.Handle,
	)
	return err
}

func (q *pgQueue) abandon(ctx context.Context, due Due, reason string) error {
	conn, err := q.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO notification_dlq (handle, supplement_id, payload, reason, attempts)
         VALUES ($1, $2, $3, $4, $5)`,
		due.Handle, due.SupplementID, due.Payload, reason, due.Attempts+1,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE scheduled_notifications
            SET attempts = attempts + 1, abandoned_at = NOW(), last_error = $1
          WHERE handle = $2`,
		reason, due.Handle,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

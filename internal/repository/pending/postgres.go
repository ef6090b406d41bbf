package pending

import (
	"context"
	"fmt"
	"io"
	"log"

	"fundraiser-store/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Record(ctx context.Context, entry domain.PendingOrder) error {
	const q = `
INSERT INTO pending_orders (external_order_id, session_id, payload, state)
VALUES ($1, $2, $3::jsonb, $4)
ON CONFLICT (external_order_id) DO UPDATE SET
    payload = EXCLUDED.payload,
    state = EXCLUDED.state,
    updated_at = now()
`
	state := entry.State
	if state == "" {
		state = domain.PendingStateCaptured
	}
	_, err := r.pool.Exec(ctx, q, entry.ExternalOrderID, entry.SessionID, string(entry.Payload), string(state))
	if err != nil {
		return fmt.Errorf("record pending order %s: %w", entry.ExternalOrderID, err)
	}
	return nil
}

func (r *postgresRepo) MarkSaved(ctx context.Context, externalOrderID, orderID string) error {
	return r.mark(ctx, externalOrderID, domain.PendingStateSaved, orderID, "")
}

func (r *postgresRepo) MarkFailed(ctx context.Context, externalOrderID, reason string) error {
	return r.mark(ctx, externalOrderID, domain.PendingStateFailed, "", reason)
}

func (r *postgresRepo) mark(ctx context.Context, externalOrderID string, state domain.PendingState, orderID, reason string) error {
	const q = `
UPDATE pending_orders
SET state = $2,
    order_id = NULLIF($3, ''),
    last_error = NULLIF($4, ''),
    updated_at = now()
WHERE external_order_id = $1
`
	tag, err := r.pool.Exec(ctx, q, externalOrderID, string(state), orderID, reason)
	if err != nil {
		return fmt.Errorf("mark pending order %s %s: %w", externalOrderID, state, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListUnresolved(ctx context.Context) ([]domain.PendingOrder, error) {
	const q = `
SELECT external_order_id, session_id, payload::text, state, COALESCE(order_id, ''), COALESCE(last_error, ''), created_at, updated_at
FROM pending_orders
WHERE state <> 'saved'
ORDER BY created_at, external_order_id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PendingOrder
	for rows.Next() {
		var (
			p       domain.PendingOrder
			payload string
			state   string
		)
		if err := rows.Scan(&p.ExternalOrderID, &p.SessionID, &payload, &state, &p.OrderID, &p.LastError, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Payload = []byte(payload)
		p.State = domain.PendingState(state)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("pending orders unresolved=%d", len(out))
	return out, nil
}

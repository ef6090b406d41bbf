package cart

import (
	"context"
	"errors"

	"fundraiser-store/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Storage {
	return &postgresStorage{pool: pool}
}

func (r *postgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT payload
FROM cart_storage
WHERE key = $1
`
	var payload string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (r *postgresStorage) Put(ctx context.Context, key string, data []byte) error {
	const q = `
INSERT INTO cart_storage (key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	_, err := r.pool.Exec(ctx, q, key, string(data))
	return err
}

func (r *postgresStorage) Delete(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_storage WHERE key = $1`, key)
	return err
}

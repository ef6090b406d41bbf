package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundraiser-store/internal/domain"
	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores carts as plain string values. A zero ttl keeps them forever.
func NewRedis(client *redis.Client, ttl time.Duration) Storage {
	return &redisStorage{client: client, ttl: ttl}
}

func (r *redisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *redisStorage) Put(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

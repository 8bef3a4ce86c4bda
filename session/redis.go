package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps session slots in Redis, for admin shells where several
// processes on one workstation share a single operator profile (kiosk
// deployments). Slots are plain string keys under a prefix.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a [RedisStorage]. An empty prefix defaults to "gg".
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "gg"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

// Load implements [Storage].
func (r *RedisStorage) Load(ctx context.Context, slot string) (string, error) {
	value, err := r.client.Get(ctx, r.key(slot)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: redis load %s: %w", slot, err)
	}
	return value, nil
}

// Store implements [Storage]. Slots carry no TTL: session end is an explicit
// clear or a 401, never a client-side timer.
func (r *RedisStorage) Store(ctx context.Context, slot, value string) error {
	if err := r.client.Set(ctx, r.key(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("session: redis store %s: %w", slot, err)
	}
	return nil
}

// Delete implements [Storage]. Deleting an absent slot is a no-op.
func (r *RedisStorage) Delete(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, r.key(slot)).Err(); err != nil {
		return fmt.Errorf("session: redis delete %s: %w", slot, err)
	}
	return nil
}

func (r *RedisStorage) key(slot string) string {
	return r.prefix + ":" + slot
}

// Package clientstore is the durable per-session key/value tier: cart
// snapshots, the last submitted order id, and the timestamped read
// cache all live here. The backing store is Redis when configured and
// a no-op otherwise, so code paths that run without a durable store
// (local dev, tests without Redis) degrade to cache misses instead of
// failing.
package clientstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates the key holds no value.
var ErrNotFound = errors.New("clientstore: not found")

// Store is the capability interface over the durable session store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey is the fixed key holding a session's cart snapshot.
func CartKey(session string) string {
	return "shopping-cart:" + session
}

// LastOrderKey is the fixed key holding a session's last order id.
func LastOrderKey(session string) string {
	return "last_order_id:" + session
}

// RedisStore persists session state in Redis. Entries carry no TTL;
// staleness for cached reads is judged by the Cache envelope instead.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// NoopStore is the stand-in when no durable store is available: every
// read is absent and every write silently succeeds.
type NoopStore struct{}

func NewNoop() NoopStore { return NoopStore{} }

func (NoopStore) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }

func (NoopStore) Set(context.Context, string, []byte) error { return nil }

func (NoopStore) Delete(context.Context, string) error { return nil }

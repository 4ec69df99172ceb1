// internal/domain/cart/session_store.go
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no guest cart exists for a session
var ErrSessionNotFound = errors.New("session cart not found")

// SessionStore holds guest carts keyed by session id
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisSessionStore backs guest carts with Redis
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
	}
}

// Get retrieves a session cart payload
func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return value, err
}

// Set stores a session cart payload with expiration
func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Del removes a session cart
func (s *RedisSessionStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

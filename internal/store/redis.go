package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/reservehq/concierge/internal/model/reservation"
)

// RedisStore persists sessions as JSON values in Redis.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption customizes a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets an expiration on saved sessions. Zero means no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore connects a store to the given Redis instance.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient wraps an existing client, mainly for tests.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: "concierge:session:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get retrieves a session by identifier.
func (s *RedisStore) Get(ctx context.Context, id string) (reservation.Session, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return reservation.Session{}, ErrNotFound
		}
		return reservation.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess reservation.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return reservation.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}

// Save persists the session, refreshing the TTL when one is configured.
func (s *RedisStore) Save(ctx context.Context, sess reservation.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping verifies connectivity, used at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

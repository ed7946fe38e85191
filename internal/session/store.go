package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/student-approval/internal/domain"
)

// Store persists session identities between requests. Restore returns a nil
// identity (and nil error) when no session exists, which callers treat as
// logged out.
type Store interface {
	Save(ctx context.Context, sessionID string, identity *domain.Identity) error
	Restore(ctx context.Context, sessionID string) (*domain.Identity, error)
	Clear(ctx context.Context, sessionID string) error
}

type record struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RedisStore keeps sessions in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Save writes the identity under the session id.
func (s *RedisStore) Save(ctx context.Context, sessionID string, identity *domain.Identity) error {
	payload, err := json.Marshal(record{UID: identity.UID, Email: identity.Email, Role: identity.Role})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+sessionID, payload, s.ttl).Err()
}

// Restore loads the identity for the session id, or nil when absent.
func (s *RedisStore) Restore(ctx context.Context, sessionID string) (*domain.Identity, error) {
	payload, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return &domain.Identity{UID: rec.UID, Email: rec.Email, Role: rec.Role}, nil
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}

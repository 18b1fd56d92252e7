// File: services/orchestrator/session_store.go
package orchestrator

import (
	"context"
	"encoding/json"
	"time"

	"fieldassist/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "assist:session:"

// RedisSessionStore keeps conversation sessions in Redis. Teardown is the
// store's TTL; the orchestrator never deletes sessions itself.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the stored session, or nil when none exists.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.ConversationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.ConversationSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+session.SessionID, b, s.ttl).Err()
}

// SessionStore abstracts session persistence for the orchestrator.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationSession, error)
	Set(ctx context.Context, session *models.ConversationSession) error
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps each quiz session as a JSON document in Redis, so any
// instance sharing the Redis can serve a session.
// Layout: SET quiz:session:{id} <json> [EX ttl]
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a store. A zero ttl keeps sessions until deleted.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, session app.QuizSession) (string, error) {
	id := uuid.NewString()
	session.ID = id
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(id), data, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("session id collision: %s", id)
	}
	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (app.QuizSession, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return app.QuizSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return app.QuizSession{}, fmt.Errorf("redis get: %w", err)
	}
	var session app.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return app.QuizSession{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session, nil
}

// Replace overwrites an existing session and keeps its remaining TTL.
func (s *SessionStore) Replace(ctx context.Context, id string, session app.QuizSession) error {
	session.ID = id
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := s.client.SetXX(ctx, s.key(id), data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("redis setxx: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}

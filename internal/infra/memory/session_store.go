package memory

import (
	"context"
	"sync"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions never expire: an abandoned quiz stays here until the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]app.QuizSession
	newID    func() string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]app.QuizSession),
		newID:    uuid.NewString,
	}
}

func (s *SessionStore) Create(_ context.Context, session app.QuizSession) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	session = session.Clone()
	session.ID = id
	s.sessions[id] = session
	return id, nil
}

func (s *SessionStore) Get(_ context.Context, id string) (app.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return app.QuizSession{}, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *SessionStore) Replace(_ context.Context, id string, session app.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	session = session.Clone()
	session.ID = id
	s.sessions[id] = session
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"quiz-trainer/internal/domain"
)

// SessionStore is an in-memory store of login sessions (session id -> user name).
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]loginSession
}

type loginSession struct {
	username  string
	expiresAt time.Time
}

// NewSessionStore creates a store; a ttl of zero keeps sessions until logout.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]loginSession),
	}
}

func (s *SessionStore) Create(_ context.Context, username string) (string, error) {
	id := uuid.NewString()
	entry := loginSession{username: username}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = entry
	return id, nil
}

func (s *SessionStore) Get(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return "", domain.ErrSessionNotFound
	}
	return entry.username, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

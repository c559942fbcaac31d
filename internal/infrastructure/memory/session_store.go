package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

var _ cart.SessionStore = (*SessionStore)(nil)

// SessionStore sesiones de terminal en memoria del proceso (una sola instancia, sin REDIS_URL).
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]sessionEntry
}

type sessionEntry struct {
	session   *entity.Session
	expiresAt time.Time
}

// NewSessionStore crea el store; ttl <= 0 = sin expiración.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, sessions: make(map[string]sessionEntry)}
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	return e.session.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = sessionEntry{session: session.Clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

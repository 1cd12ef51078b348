package memory

import (
	"context"
	"sync"
	"time"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionRepository returns an in-memory implementation of
// SessionRepository. Expired sessions are evicted lazily on read.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *sessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired(time.Now()) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (r *sessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *session
	r.sessions[cp.ID] = &cp
	return nil
}

func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

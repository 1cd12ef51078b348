package memory

import (
	"context"
	"sync"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type userRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

// NewUserRepository returns an in-memory implementation of UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil || user.ID == "" || user.Email == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	cp := *user
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func (r *userRepository) Reset(_ context.Context, seed []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]*domain.User, len(seed))
	r.byEmail = make(map[string]*domain.User, len(seed))
	for i := range seed {
		cp := seed[i]
		r.byID[cp.ID] = &cp
		r.byEmail[cp.Email] = &cp
	}
	return nil
}

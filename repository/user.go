package repository

import (
	"context"

	"github.com/landgov/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Reset removes every non-seed user and restores the provided seed set.
	Reset(ctx context.Context, seed []domain.User) error
}

package repository

import (
	"context"

	"github.com/landgov/backend/domain"
)

// ApplicationFilter narrows application listings. An empty ApplicantEmail
// returns the full set.
type ApplicationFilter struct {
	ApplicantEmail string
	Status         string
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
	Create(ctx context.Context, app *domain.Application) error
	// Update replaces the stored application; the engine owns all field-level
	// mutation rules.
	Update(ctx context.Context, app *domain.Application) error
	DeleteAll(ctx context.Context) error
}

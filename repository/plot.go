package repository

import (
	"context"

	"github.com/landgov/backend/domain"
)

// PlotFilter narrows plot listings. Zero values mean "no constraint".
type PlotFilter struct {
	PlotID     string
	OwnerEmail string
}

type PlotRepository interface {
	GetByID(ctx context.Context, plotID string) (*domain.Plot, error)
	List(ctx context.Context, filter PlotFilter) ([]domain.Plot, error)
	Create(ctx context.Context, plot *domain.Plot) error
	Reset(ctx context.Context, seed []domain.Plot) error
}

package memory

import (
	"context"
	"sync"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type plotRepository struct {
	mu    sync.RWMutex
	plots map[string]*domain.Plot
	order []string
}

// NewPlotRepository returns an in-memory implementation of PlotRepository.
// Listings preserve insertion order.
func NewPlotRepository() repository.PlotRepository {
	return &plotRepository{plots: make(map[string]*domain.Plot)}
}

func (r *plotRepository) GetByID(_ context.Context, plotID string) (*domain.Plot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plot, ok := r.plots[plotID]
	if !ok {
		return nil, domain.ErrPlotNotFound
	}
	cp := *plot
	return &cp, nil
}

func (r *plotRepository) List(_ context.Context, filter repository.PlotFilter) ([]domain.Plot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Plot
	for _, id := range r.order {
		plot := r.plots[id]
		if filter.PlotID != "" && plot.PlotID != filter.PlotID {
			continue
		}
		if filter.OwnerEmail != "" && plot.CurrentOwnerEmail != filter.OwnerEmail {
			continue
		}
		out = append(out, *plot)
	}
	return out, nil
}

func (r *plotRepository) Create(_ context.Context, plot *domain.Plot) error {
	if plot == nil || plot.PlotID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plots[plot.PlotID]; exists {
		return domain.NewError(domain.ErrCodeConflict, "plot already registered")
	}
	cp := *plot
	r.plots[cp.PlotID] = &cp
	r.order = append(r.order, cp.PlotID)
	return nil
}

func (r *plotRepository) Reset(_ context.Context, seed []domain.Plot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plots = make(map[string]*domain.Plot, len(seed))
	r.order = r.order[:0]
	for i := range seed {
		cp := seed[i]
		r.plots[cp.PlotID] = &cp
		r.order = append(r.order, cp.PlotID)
	}
	return nil
}

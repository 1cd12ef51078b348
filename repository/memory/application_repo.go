package memory

import (
	"context"
	"sync"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type applicationRepository struct {
	mu    sync.RWMutex
	apps  map[string]*domain.Application
	order []string
}

// NewApplicationRepository returns an in-memory implementation of
// ApplicationRepository. Stored applications are deep-copied on the way in
// and out so callers can never alias the History slice.
func NewApplicationRepository() repository.ApplicationRepository {
	return &applicationRepository{apps: make(map[string]*domain.Application)}
}

func (r *applicationRepository) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return app.Clone(), nil
}

func (r *applicationRepository) List(_ context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Application
	for _, id := range r.order {
		app := r.apps[id]
		if filter.ApplicantEmail != "" && app.ApplicantEmail != filter.ApplicantEmail {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, *app.Clone())
	}
	return out, nil
}

func (r *applicationRepository) Create(_ context.Context, app *domain.Application) error {
	if app == nil || app.ID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; exists {
		return domain.NewError(domain.ErrCodeConflict, "application id already exists")
	}
	r.apps[app.ID] = app.Clone()
	r.order = append(r.order, app.ID)
	return nil
}

func (r *applicationRepository) Update(_ context.Context, app *domain.Application) error {
	if app == nil || app.ID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; !exists {
		return domain.ErrApplicationNotFound
	}
	r.apps[app.ID] = app.Clone()
	return nil
}

func (r *applicationRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apps = make(map[string]*domain.Application)
	r.order = nil
	return nil
}

package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

// UseCase exposes read-only plot registry queries. All authenticated roles
// may call them; there is no ownership filter on plots.
type UseCase struct {
	plots  repository.PlotRepository
	logger *zap.Logger
}

func New(plots repository.PlotRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{plots: plots, logger: logger}
}

func (uc *UseCase) ListPlots(ctx context.Context, filter repository.PlotFilter) ([]domain.Plot, error) {
	return uc.plots.List(ctx, filter)
}

func (uc *UseCase) GetPlot(ctx context.Context, plotID string) (*domain.Plot, error) {
	return uc.plots.GetByID(ctx, plotID)
}

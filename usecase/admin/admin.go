package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

// SeedData is the initial dataset restored by a reset.
type SeedData struct {
	Users []domain.User
	Plots []domain.Plot
}

// UseCase holds the administrative sample-data reset. The reset is a blunt
// instrument: it clears applications, payments and notifications and
// restores the seed users and plots. It assumes exclusive access for its
// duration.
type UseCase struct {
	applications  repository.ApplicationRepository
	payments      repository.PaymentRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
	plots         repository.PlotRepository
	seed          SeedData
	logger        *zap.Logger
}

func New(
	applications repository.ApplicationRepository,
	payments repository.PaymentRepository,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	plots repository.PlotRepository,
	seed SeedData,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications:  applications,
		payments:      payments,
		notifications: notifications,
		users:         users,
		plots:         plots,
		seed:          seed,
		logger:        logger,
	}
}

// Reset restores the initial sample state. Admin only.
func (uc *UseCase) Reset(ctx context.Context, caller domain.Identity) error {
	if caller.Role != domain.RoleAdmin {
		return domain.ErrRoleNotAllowed
	}

	if err := uc.applications.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.payments.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.notifications.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.users.Reset(ctx, uc.seed.Users); err != nil {
		return err
	}
	if err := uc.plots.Reset(ctx, uc.seed.Plots); err != nil {
		return err
	}

	uc.logger.Info("sample data reset",
		zap.Int("seed_users", len(uc.seed.Users)),
		zap.Int("seed_plots", len(uc.seed.Plots)))
	return nil
}

package inbox

import (
	"context"

	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

// UseCase reads the caller's notification inbox. Callers only ever see
// messages addressed to their own user ID.
type UseCase struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(notifications repository.NotificationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{notifications: notifications, logger: logger}
}

func (uc *UseCase) ListForCaller(ctx context.Context, caller domain.Identity) ([]domain.Notification, error) {
	return uc.notifications.ListForUser(ctx, caller.UserID)
}

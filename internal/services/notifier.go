package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/internal/infrastructure/outbox"
	"github.com/landgov/backend/repository"
	"github.com/landgov/backend/usecase"
)

// StoreNotifier delivers notifications to the notification store and
// journals any failed delivery to the outbox for redelivery. Without a
// journal, a failed delivery is logged by the caller and lost, which the
// workflow contract permits.
type StoreNotifier struct {
	notifications repository.NotificationRepository
	journal       *outbox.Journal
	logger        *zap.Logger
}

func NewStoreNotifier(notifications repository.NotificationRepository, journal *outbox.Journal, logger *zap.Logger) *StoreNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreNotifier{
		notifications: notifications,
		journal:       journal,
		logger:        logger,
	}
}

func (n *StoreNotifier) Notify(ctx context.Context, toUserID, message string) error {
	notification := &domain.Notification{
		ID:        uuid.NewString(),
		ToUserID:  toUserID,
		Message:   message,
		Timestamp: time.Now(),
	}

	err := n.notifications.Append(ctx, notification)
	if err == nil {
		return nil
	}

	if n.journal == nil {
		return err
	}

	n.logger.Warn("notification append failed, journaling for redelivery", zap.Error(err))
	return n.journal.Enqueue(outbox.Entry{
		ID:       notification.ID,
		ToUserID: toUserID,
		Message:  message,
	})
}

var _ usecase.Notifier = (*StoreNotifier)(nil)

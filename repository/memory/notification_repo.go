package memory

import (
	"context"
	"sync"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

// NewNotificationRepository returns an in-memory implementation of
// NotificationRepository. The log is append-only; entries are never mutated.
func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Append(_ context.Context, notification *domain.Notification) error {
	if notification == nil || notification.ID == "" || notification.ToUserID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *notificationRepository) ListForUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Notification
	for _, n := range r.notifications {
		if n.ToUserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *notificationRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = nil
	return nil
}

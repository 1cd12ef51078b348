package repository

import (
	"context"

	"github.com/landgov/backend/domain"
)

type NotificationRepository interface {
	Append(ctx context.Context, notification *domain.Notification) error
	ListForUser(ctx context.Context, userID string) ([]domain.Notification, error)
	DeleteAll(ctx context.Context) error
}

package repository

import (
	"context"

	"github.com/landgov/backend/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.Payment, error)
	DeleteAll(ctx context.Context) error
}

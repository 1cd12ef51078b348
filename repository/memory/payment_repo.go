package memory

import (
	"context"
	"sync"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type paymentRepository struct {
	mu       sync.RWMutex
	payments []domain.Payment
}

// NewPaymentRepository returns an in-memory implementation of
// PaymentRepository backed by an append-only slice.
func NewPaymentRepository() repository.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	if payment == nil || payment.ID == "" || payment.ApplicationID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = append(r.payments, *payment)
	return nil
}

func (r *paymentRepository) ListByApplication(_ context.Context, applicationID string) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Payment
	for _, p := range r.payments {
		if p.ApplicationID == applicationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *paymentRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = nil
	return nil
}

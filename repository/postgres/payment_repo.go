package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates a Postgres-backed payment ledger.
func NewPaymentRepository(pool *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO payments (id, application_id, amount, status, paid_by)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ts
	`
	return r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.ApplicationID,
		payment.Amount,
		payment.Status,
		payment.PaidBy,
	).Scan(&payment.Timestamp)
}

func (r *paymentRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.Payment, error) {
	const query = `
	SELECT id, application_id, amount, status, paid_by, ts
	FROM payments
	WHERE application_id = $1
	ORDER BY ts
	`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.ApplicationID, &p.Amount, &p.Status, &p.PaidBy, &p.Timestamp); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payments`)
	return err
}

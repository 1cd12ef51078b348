package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation of
// ApplicationRepository. Documents and the review history travel as JSONB.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `
	id, application_type, applicant_email, plot_id, application_status,
	payment_status, officer_assigned, documents, reason, history,
	created_at, updated_at
`

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	query := `
	SELECT ` + applicationColumns + `
	FROM applications
	WHERE ($1 = '' OR applicant_email = $1)
	  AND ($2 = '' OR application_status = $2)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, filter.ApplicantEmail, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO applications (
		id, application_type, applicant_email, plot_id, application_status,
		payment_status, officer_assigned, documents, reason, history
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	documents, history, err := marshalApplicationJSON(app)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, query,
		app.ID,
		string(app.Type),
		app.ApplicantEmail,
		app.PlotID,
		app.Status,
		string(app.PaymentStatus),
		app.OfficerAssigned,
		documents,
		app.Reason,
		history,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	if app == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE applications
	SET application_status = $2,
		payment_status = $3,
		officer_assigned = $4,
		history = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	_, history, err := marshalApplicationJSON(app)
	if err != nil {
		return err
	}

	if err := r.pool.QueryRow(ctx, query,
		app.ID,
		app.Status,
		string(app.PaymentStatus),
		app.OfficerAssigned,
		history,
	).Scan(&app.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrApplicationNotFound
		}
		return err
	}
	return nil
}

func (r *applicationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM applications`)
	return err
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app           domain.Application
		appType       string
		paymentStatus string
		documentsJSON []byte
		historyJSON   []byte
	)

	if err := row.Scan(
		&app.ID,
		&appType,
		&app.ApplicantEmail,
		&app.PlotID,
		&app.Status,
		&paymentStatus,
		&app.OfficerAssigned,
		&documentsJSON,
		&app.Reason,
		&historyJSON,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	app.Type = domain.ApplicationType(appType)
	app.PaymentStatus = domain.PaymentState(paymentStatus)
	if len(documentsJSON) > 0 {
		_ = json.Unmarshal(documentsJSON, &app.Documents)
	}
	if len(historyJSON) > 0 {
		_ = json.Unmarshal(historyJSON, &app.History)
	}

	return &app, nil
}

func marshalApplicationJSON(app *domain.Application) (documents, history []byte, err error) {
	documents, err = json.Marshal(app.Documents)
	if err != nil {
		return nil, nil, err
	}
	if app.History == nil {
		history = []byte(`[]`)
		return documents, history, nil
	}
	history, err = json.Marshal(app.History)
	if err != nil {
		return nil, nil, err
	}
	return documents, history, nil
}

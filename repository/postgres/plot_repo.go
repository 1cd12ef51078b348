package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type plotRepository struct {
	pool *pgxpool.Pool
}

// NewPlotRepository instantiates a Postgres-backed plot repository.
func NewPlotRepository(pool *pgxpool.Pool) repository.PlotRepository {
	return &plotRepository{pool: pool}
}

func (r *plotRepository) GetByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	const query = `
	SELECT plot_id, current_owner_email, area_sqm, plot_type, village, created_at
	FROM plots
	WHERE plot_id = $1
	`
	return scanPlot(r.pool.QueryRow(ctx, query, plotID))
}

func (r *plotRepository) List(ctx context.Context, filter repository.PlotFilter) ([]domain.Plot, error) {
	const query = `
	SELECT plot_id, current_owner_email, area_sqm, plot_type, village, created_at
	FROM plots
	WHERE ($1 = '' OR plot_id = $1)
	  AND ($2 = '' OR current_owner_email = $2)
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, filter.PlotID, filter.OwnerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, err
		}
		plots = append(plots, *plot)
	}
	return plots, rows.Err()
}

func (r *plotRepository) Create(ctx context.Context, plot *domain.Plot) error {
	if plot == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO plots (plot_id, current_owner_email, area_sqm, plot_type, village)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		plot.PlotID,
		plot.CurrentOwnerEmail,
		plot.AreaSqm,
		plot.PlotType,
		plot.Village,
	).Scan(&plot.CreatedAt)
}

func (r *plotRepository) Reset(ctx context.Context, seed []domain.Plot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM plots`); err != nil {
		return err
	}
	for i := range seed {
		p := seed[i]
		if _, err := tx.Exec(ctx,
			`INSERT INTO plots (plot_id, current_owner_email, area_sqm, plot_type, village) VALUES ($1, $2, $3, $4, $5)`,
			p.PlotID, p.CurrentOwnerEmail, p.AreaSqm, p.PlotType, p.Village,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var plot domain.Plot
	if err := row.Scan(
		&plot.PlotID,
		&plot.CurrentOwnerEmail,
		&plot.AreaSqm,
		&plot.PlotType,
		&plot.Village,
		&plot.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, err
	}
	return &plot, nil
}

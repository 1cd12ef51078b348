package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates a Postgres-backed notification log.
func NewNotificationRepository(pool *pgxpool.Pool) repository.NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Append(ctx context.Context, notification *domain.Notification) error {
	if notification == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO notifications (id, to_user_id, message)
	VALUES ($1, $2, $3)
	RETURNING ts
	`
	return r.pool.QueryRow(ctx, query,
		notification.ID,
		notification.ToUserID,
		notification.Message,
	).Scan(&notification.Timestamp)
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	const query = `
	SELECT id, to_user_id, message, ts
	FROM notifications
	WHERE to_user_id = $1
	ORDER BY ts
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.ToUserID, &n.Message, &n.Timestamp); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notifications`)
	return err
}

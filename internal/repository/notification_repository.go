package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educhain/educhain-server/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository handles institutional alert data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// ListByRecipient retrieves a recipient's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, recipient, title, message, type, read, created_at
		 FROM notifications WHERE recipient = $1
		 ORDER BY created_at DESC`, recipient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (recipient, title, message, type, read)
		 VALUES ($1, $2, $3, $4, false)
		 RETURNING id, created_at`,
		n.Recipient, n.Title, n.Message, n.Type,
	).Scan(&n.ID, &n.CreatedAt)
}

// MarkRead flags a notification as read. The recipient constraint stops
// a caller from acknowledging someone else's alerts.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int, recipient string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND recipient = $2`,
		id, recipient)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// ExistsRecentRiskAlert reports whether an academic risk alert for the
// student was already raised within the window, so the risk sweep does
// not duplicate alerts every pass.
func (r *NotificationRepository) ExistsRecentRiskAlert(ctx context.Context, recipient, studentID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE recipient = $1 AND type = $2
			  AND message LIKE '%' || $3 || '%'
			  AND created_at > NOW() - INTERVAL '7 days')`,
		recipient, model.NotificationAcademic, studentID,
	).Scan(&exists)
	return exists, err
}

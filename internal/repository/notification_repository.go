package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mabat-platform/support-service/internal/domain"
)

// NotificationFilter captures inbox listing parameters.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationRepository stores per-user notification records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID string, filter NotificationFilter) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64, userID string, at time.Time) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db DB
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (title, message, type, action_url, user_id, ticket_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.ActionURL,
		notification.UserID,
		notification.TicketID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, filter NotificationFilter) ([]domain.Notification, error) {
	clauses := []string{"user_id=$1"}
	args := []any{userID}
	if filter.UnreadOnly {
		clauses = append(clauses, "is_read=FALSE")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, title, message, type, is_read, action_url, user_id, ticket_id, created_at, read_at
        FROM notifications WHERE %s
        ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.IsRead,
			&notification.ActionURL,
			&notification.UserID,
			&notification.TicketID,
			&notification.CreatedAt,
			&notification.ReadAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}

// MarkRead flips the read flag for the recipient's own notification.
func (r *notificationRepository) MarkRead(ctx context.Context, id int64, userID string, at time.Time) error {
	const query = `UPDATE notifications SET is_read=TRUE, read_at=$1 WHERE id=$2 AND user_id=$3 AND is_read=FALSE`
	cmd, err := r.db.Exec(ctx, query, at, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE id=$1 AND user_id=$2)`, id, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND is_read=FALSE`, userID).Scan(&count)
	return count, err
}

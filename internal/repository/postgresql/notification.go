package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/notification"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// Create implements notification.Repository.
func (n *notificationRepository) Create(ctx context.Context, ntf *notification.Notification) error {
	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (employee_id, company_id, type, reference_id, is_read)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		ntf.EmployeeID,
		ntf.CompanyID,
		ntf.Type,
		ntf.ReferenceID,
	).Scan(&ntf.ID, &ntf.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByEmployeeID implements notification.Repository.
func (n *notificationRepository) ListByEmployeeID(ctx context.Context, employeeID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, n.db)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, employee_id, company_id, type, reference_id, is_read, created_at
		FROM notifications
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var ntf notification.Notification
		err := rows.Scan(
			&ntf.ID, &ntf.EmployeeID, &ntf.CompanyID, &ntf.Type,
			&ntf.ReferenceID, &ntf.IsRead, &ntf.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, ntf)
	}

	return notifications, nil
}

// MarkRead implements notification.Repository.
func (n *notificationRepository) MarkRead(ctx context.Context, id, employeeID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND employee_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

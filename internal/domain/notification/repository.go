package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByEmployeeID(ctx context.Context, employeeID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, employeeID string) error
}

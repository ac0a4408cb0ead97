package notification

import "context"

// Dispatcher accepts logical events from the workflows. Implementations
// persist the event and fan it out to live subscribers; Publish never
// blocks the caller on delivery.
type Dispatcher interface {
	Publish(ctx context.Context, event Event)
}

type Service interface {
	Dispatcher
	List(ctx context.Context, employeeID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, employeeID string) error
}

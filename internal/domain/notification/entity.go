package notification

import "time"

type EventType string

const (
	EventRegularizationApproved EventType = "regularization_approved"
	EventRegularizationRejected EventType = "regularization_rejected"
	EventLeaveApproved          EventType = "leave_approved"
	EventLeaveRejected          EventType = "leave_rejected"
	EventLeaveCancelled         EventType = "leave_cancelled"
)

// Event is a logical notification emitted by the workflows. Delivery
// transport is the dispatcher's concern.
type Event struct {
	EmployeeID  string    `json:"employee_id"`
	CompanyID   string    `json:"company_id"`
	Type        EventType `json:"type"`
	ReferenceID string    `json:"reference_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notification is a persisted event for an employee's inbox.
type Notification struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Type        EventType
	ReferenceID string
	IsRead      bool
	CreatedAt   time.Time
}

package leave

import (
	"time"
)

// Type is a company-scoped leave category. DefaultDays seeds a new
// employee's balance; EnforceBalance controls whether submission is
// rejected when the requested working days exceed the remaining
// balance.
type Type struct {
	ID               string
	CompanyID        string
	Code             string
	Name             string
	DefaultDays      float64
	Color            string
	IsPaid           bool
	RequiresDocument bool
	MaxDays          float64
	EnforceBalance   bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// Request is a leave application over a date range. WorkingDays is the
// number of balance-consuming days in the range, computed once at
// submission against the employee's shift and the company holiday
// calendar.
type Request struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	WorkingDays float64
	Reason      string
	DocumentURL *string
	Status      RequestStatus
	ResolvedBy  *string
	ResolvedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
}

// Approve moves the request out of PENDING. Only PENDING requests can
// be approved.
func (r *Request) Approve(actorID string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusApproved
	r.ResolvedBy = &actorID
	r.ResolvedAt = &at
	return nil
}

// Reject moves the request out of PENDING with no balance effect.
func (r *Request) Reject(actorID string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusRejected
	r.ResolvedBy = &actorID
	r.ResolvedAt = &at
	return nil
}

// Cancel withdraws an APPROVED request. PENDING requests are rejected
// instead; terminal requests stay terminal.
func (r *Request) Cancel(at time.Time) error {
	if r.Status != StatusApproved {
		return ErrInvalidTransition
	}
	r.Status = StatusCancelled
	r.CancelledAt = &at
	return nil
}

package regularization

import (
	"time"
)

// Status of a regularization request. PENDING is the only non-terminal
// state; APPROVED and REJECTED are final.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision is the admin's resolution. Only terminal statuses are legal
// decisions.
type Decision string

const (
	DecisionApprove Decision = "approved"
	DecisionReject  Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Request is an employee-initiated correction to one day's check-in/out,
// subject to admin approval. At most one PENDING request may exist per
// (employee, date).
type Request struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	Date             time.Time
	ProposedCheckIn  *time.Time
	ProposedCheckOut *time.Time
	Reason           string
	Status           Status
	ResolvedBy       *string
	ResolvedAt       *time.Time
	CreatedAt        time.Time

	// DTO
	EmployeeName *string
}

// Resolve transitions the request out of PENDING. It is the only legal
// state transition; calling it on a terminal request fails.
func (r *Request) Resolve(decision Decision, actorID string, at time.Time) error {
	if !decision.Valid() {
		return ErrInvalidDecision
	}
	if r.Status != StatusPending {
		return ErrAlreadyResolved
	}
	r.Status = Status(decision)
	r.ResolvedBy = &actorID
	r.ResolvedAt = &at
	return nil
}

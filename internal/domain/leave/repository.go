package leave

import (
	"context"
	"time"
)

type TypeRepository interface {
	Create(ctx context.Context, t *Type) error
	GetByID(ctx context.Context, id string) (Type, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Type, error)
	Update(ctx context.Context, t *Type) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	// GetByIDForUpdate locks the row for the duration of the ambient
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, req *Request) error
	List(ctx context.Context, companyID string, filter RequestFilter) ([]Request, int64, error)
	// HasOverlapping reports whether a PENDING or APPROVED request for
	// the employee intersects [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// HasApprovedOn reports whether an APPROVED request covers the date.
	HasApprovedOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

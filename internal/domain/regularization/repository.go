package regularization

import "context"

type Repository interface {
	// Create inserts a new PENDING request. Returns
	// ErrDuplicatePendingRequest when a PENDING request already exists
	// for the same employee and date.
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	// HasPending reports whether a PENDING request exists for the
	// employee on the given date (date formatted as YYYY-MM-DD).
	HasPending(ctx context.Context, employeeID, date string) (bool, error)
	// GetByIDForUpdate locks the row for the duration of the ambient
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, req *Request) error
	List(ctx context.Context, companyID string, filter Filter) ([]Request, int64, error)
}

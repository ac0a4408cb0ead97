package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for shift configuration.
// All methods include companyID to prevent cross-company data access.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	GetDefault(ctx context.Context, companyID string) (Shift, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Shift, error)

	// Update applies forward-dated edits only; historical attendance keeps
	// the values that were in force when it was computed.
	Update(ctx context.Context, shift Shift) error
}

// HolidayRepository defines data access for the company holiday calendar.
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error

	// GetByDateRange returns holidays with start <= date <= end.
	GetByDateRange(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)

	// Exists reports whether the company observes a holiday on date.
	Exists(ctx context.Context, companyID string, date time.Time) (bool, error)
}

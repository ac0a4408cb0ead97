package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records.
// All read/write methods include companyID to prevent cross-company access.
// One row exists per (employee, date); writers are expected to hold the row
// lock (GetByEmployeeAndDateForUpdate) for the duration of a mutation.
type RecordRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)

	// GetByEmployeeAndDateForUpdate locks the row inside the ambient
	// transaction. Returns nil (no error) when the day has no record yet.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)

	Update(ctx context.Context, rec Record) error

	List(ctx context.Context, filter RecordFilter, companyID string) ([]Record, int64, error)

	// SetStatusRange rewrites the status of existing records of an employee
	// between two dates inclusive. Used for ON_LEAVE marking and reversal.
	SetStatusRange(ctx context.Context, employeeID string, companyID string, from, to time.Time, status Status) error

	// MissingDates returns the dates in [from, to] for which the employee has
	// no record at all. The day-close sweep materializes those.
	MissingDates(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]time.Time, error)
}

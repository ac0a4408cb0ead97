package attendance

import (
	"context"
	"time"
)

// Service defines business logic for the attendance record engine.
type Service interface {
	// ClockIn records the employee's check-in and computes lateness against
	// the assigned shift.
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)

	// ClockOut records the check-out and computes early-leaving and total
	// worked minutes.
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error)

	// GetDailyStatus derives the record for one day without persisting it.
	GetDailyStatus(ctx context.Context, employeeID string, date time.Time) (RecordResponse, error)

	// MaterializeDailyStatus derives the day's record and persists it,
	// creating a synthetic row (e.g. ABSENT) when none exists. Invoked per
	// employee by the day-close sweep.
	MaterializeDailyStatus(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// Recompute re-derives every computed field of an existing record from
	// its stamps. Used by regularization approval after stamps change.
	Recompute(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// List retrieves attendance records with filters (admin/manager).
	List(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// GetMyRecords retrieves attendance records for the authenticated employee.
	GetMyRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}

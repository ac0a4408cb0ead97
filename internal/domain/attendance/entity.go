package attendance

import (
	"time"
)

// Status is the derived daily attendance status. It is never hand-set;
// every value is recomputed from the underlying stamps, shift, holidays
// and approved leave. The only override path is an approved
// regularization, which re-runs the same derivation.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
	StatusHoliday Status = "holiday"
	// StatusPending marks a working day that has not concluded yet.
	StatusPending Status = "pending"
)

type Record struct {
	ID                  string
	EmployeeID          string
	CompanyID           string
	Date                time.Time
	CheckInTime         *time.Time
	CheckOutTime        *time.Time
	CheckInLatitude     *float64
	CheckInLongitude    *float64
	CheckOutLatitude    *float64
	CheckOutLongitude   *float64
	LateMinutes         int
	EarlyLeavingMinutes int
	TotalWorkMinutes    int
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO
	EmployeeName *string
}

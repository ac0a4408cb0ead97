package balance

import "time"

// Balance is the running day count for one (employee, leave type) key.
// It is the fold of the leave type's default seed plus every adjustment
// delta; the stored total and the audit trail are written together.
type Balance struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	Days        float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Adjustment is one audit row. Delta is signed and never zero.
type Adjustment struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	LeaveTypeID  string
	Delta        float64
	BalanceAfter float64
	Reason       string
	ActorID      string
	CreatedAt    time.Time
}

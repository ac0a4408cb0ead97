package balance

import (
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
)

const minReasonLength = 3

type AdjustRequest struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Delta       float64 `json:"delta"`
	Reason      string  `json:"reason"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Delta == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "delta",
			Message: "delta must not be zero",
		})
	}

	if !validator.MinLength(r.Reason, minReasonLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least 3 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustResponse struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	NewBalance  float64 `json:"new_balance"`
}

// TypeBalance is one entry of an employee's balance snapshot.
type TypeBalance struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	LeaveTypeName string  `json:"leave_type_name"`
	Days          float64 `json:"days"`
}

type BalancesResponse struct {
	EmployeeID string        `json:"employee_id"`
	Balances   []TypeBalance `json:"balances"`
}

type AdjustmentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	LeaveTypeID  string  `json:"leave_type_id"`
	Delta        float64 `json:"delta"`
	BalanceAfter float64 `json:"balance_after"`
	Reason       string  `json:"reason"`
	ActorID      string  `json:"actor_id"`
	CreatedAt    string  `json:"created_at"`
}

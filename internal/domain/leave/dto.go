package leave

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	// EmployeeID is optional; an empty value submits for the caller.
	EmployeeID  string  `json:"employee_id,omitempty"`
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date"`   // YYYY-MM-DD
	Reason      string  `json:"reason"`
	DocumentURL *string `json:"document_url,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateTypeRequest struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	DefaultDays      float64 `json:"default_days"`
	Color            string  `json:"color"`
	IsPaid           bool    `json:"is_paid"`
	RequiresDocument bool    `json:"requires_document"`
	MaxDays          float64 `json:"max_days"`
	EnforceBalance   bool    `json:"enforce_balance"`
}

func (r *CreateTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.DefaultDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days",
			Message: "default_days must not be negative",
		})
	}

	if r.MaxDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days",
			Message: "max_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TypeResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	DefaultDays      float64 `json:"default_days"`
	Color            string  `json:"color"`
	IsPaid           bool    `json:"is_paid"`
	RequiresDocument bool    `json:"requires_document"`
	MaxDays          float64 `json:"max_days"`
	EnforceBalance   bool    `json:"enforce_balance"`
	IsActive         bool    `json:"is_active"`
}

func NewTypeResponse(t Type) TypeResponse {
	return TypeResponse{
		ID:               t.ID,
		Code:             t.Code,
		Name:             t.Name,
		DefaultDays:      t.DefaultDays,
		Color:            t.Color,
		IsPaid:           t.IsPaid,
		RequiresDocument: t.RequiresDocument,
		MaxDays:          t.MaxDays,
		EnforceBalance:   t.EnforceBalance,
		IsActive:         t.IsActive,
	}
}

type RequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	WorkingDays   float64 `json:"working_days"`
	Reason        string  `json:"reason"`
	DocumentURL   *string `json:"document_url,omitempty"`
	Status        string  `json:"status"`
	ResolvedBy    *string `json:"resolved_by,omitempty"`
	ResolvedAt    *string `json:"resolved_at,omitempty"`
	CancelledAt   *string `json:"cancelled_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewRequestResponse(req Request) RequestResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.UTC().Format(time.RFC3339)
		return &s
	}

	return RequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		LeaveTypeID:   req.LeaveTypeID,
		LeaveTypeName: req.LeaveTypeName,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		WorkingDays:   req.WorkingDays,
		Reason:        req.Reason,
		DocumentURL:   req.DocumentURL,
		Status:        string(req.Status),
		ResolvedBy:    req.ResolvedBy,
		ResolvedAt:    format(req.ResolvedAt),
		CancelledAt:   format(req.CancelledAt),
		CreatedAt:     req.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type RequestFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	Status      *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RequestFilter) Validate() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return nil
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}

package regularization

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	// EmployeeID is optional; an empty value submits for the caller.
	EmployeeID       string  `json:"employee_id,omitempty"`
	Date             string  `json:"date"` // YYYY-MM-DD
	ProposedCheckIn  *string `json:"proposed_check_in,omitempty"`
	ProposedCheckOut *string `json:"proposed_check_out,omitempty"`
	Reason           string  `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.ProposedCheckIn == nil && r.ProposedCheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_check_in",
			Message: "at least one of proposed_check_in or proposed_check_out is required",
		})
	}

	if r.ProposedCheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_check_in",
				Message: "proposed_check_in must be a valid ISO8601 datetime",
			})
		}
	}

	if r.ProposedCheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedCheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_check_out",
				Message: "proposed_check_out must be a valid ISO8601 datetime",
			})
		}
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

type ResolveRequest struct {
	RequestID string `json:"-"`
	Decision  string `json:"decision"` // approved | rejected
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if !Decision(r.Decision).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be either approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	ProposedCheckIn  *string `json:"proposed_check_in,omitempty"`
	ProposedCheckOut *string `json:"proposed_check_out,omitempty"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	ResolvedBy       *string `json:"resolved_by,omitempty"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// NewResponse converts a Request entity to its API shape.
func NewResponse(req Request) Response {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.UTC().Format(time.RFC3339)
		return &s
	}

	return Response{
		ID:               req.ID,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		Date:             req.Date.Format("2006-01-02"),
		ProposedCheckIn:  format(req.ProposedCheckIn),
		ProposedCheckOut: format(req.ProposedCheckOut),
		Reason:           req.Reason,
		Status:           string(req.Status),
		ResolvedBy:       req.ResolvedBy,
		ResolvedAt:       format(req.ResolvedAt),
		CreatedAt:        req.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
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

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Requests   []Response `json:"requests"`
}

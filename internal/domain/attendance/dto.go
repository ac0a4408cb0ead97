package attendance

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	// EmployeeID is optional; an empty value means the caller clocks
	// for themselves. Admins may set it to act on another employee.
	EmployeeID string   `json:"employee_id,omitempty"`
	Timestamp  *string  `json:"timestamp,omitempty"` // RFC3339; defaults to now
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid ISO8601 datetime",
			})
		}
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	EmployeeID string   `json:"employee_id"`
	Timestamp  *string  `json:"timestamp,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	in := ClockInRequest{
		EmployeeID: r.EmployeeID,
		Timestamp:  r.Timestamp,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
	}
	return in.Validate()
}

type RecordResponse struct {
	ID                  string   `json:"id"`
	EmployeeID          string   `json:"employee_id"`
	EmployeeName        *string  `json:"employee_name,omitempty"`
	Date                string   `json:"date"`
	CheckInTime         *string  `json:"check_in_time,omitempty"`
	CheckOutTime        *string  `json:"check_out_time,omitempty"`
	CheckInLatitude     *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude    *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude    *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude   *float64 `json:"check_out_longitude,omitempty"`
	LateMinutes         int      `json:"late_minutes"`
	EarlyLeavingMinutes int      `json:"early_leaving_minutes"`
	TotalWorkMinutes    int      `json:"total_work_minutes"`
	Status              string   `json:"status"`
}

// NewRecordResponse converts a Record entity to its API shape.
func NewRecordResponse(rec Record) RecordResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.UTC().Format(time.RFC3339)
		return &s
	}

	return RecordResponse{
		ID:                  rec.ID,
		EmployeeID:          rec.EmployeeID,
		EmployeeName:        rec.EmployeeName,
		Date:                rec.Date.Format("2006-01-02"),
		CheckInTime:         format(rec.CheckInTime),
		CheckOutTime:        format(rec.CheckOutTime),
		CheckInLatitude:     rec.CheckInLatitude,
		CheckInLongitude:    rec.CheckInLongitude,
		CheckOutLatitude:    rec.CheckOutLatitude,
		CheckOutLongitude:   rec.CheckOutLongitude,
		LateMinutes:         rec.LateMinutes,
		EarlyLeavingMinutes: rec.EarlyLeavingMinutes,
		TotalWorkMinutes:    rec.TotalWorkMinutes,
		Status:              string(rec.Status),
	}
}

type RecordFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}

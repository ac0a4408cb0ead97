package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/balance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/notification"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/regularization"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeDeactivated):
		Forbidden(w, "Employee is deactivated")

	// Shift/holiday domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, shift.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, shift.ErrDefaultShiftMissing):
		NotFound(w, "Company has no default shift")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in recorded for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNonWorkingDay):
		BadRequest(w, "No attendance is expected on this day", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Regularization domain errors
	case errors.Is(err, regularization.ErrDuplicatePendingRequest):
		Conflict(w, "A pending regularization request already exists for this date")
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrAlreadyResolved):
		Conflict(w, "Regularization request is already resolved")
	case errors.Is(err, regularization.ErrInvalidDecision):
		BadRequest(w, "Decision must be either approved or rejected", nil)
	case errors.Is(err, regularization.ErrUnauthorized):
		Forbidden(w, "Not allowed to act on this regularization request")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrExceedsMaxDays):
		BadRequest(w, "Requested days exceed the leave type cap", nil)
	case errors.Is(err, leave.ErrDocumentRequired):
		BadRequest(w, "Supporting document is required for this leave type", nil)
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request state transition not allowed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An active leave request already covers part of this range")
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "Not allowed to act on this leave request")

	// Balance domain errors
	case errors.Is(err, balance.ErrLeaveTypeInvalid):
		BadRequest(w, "Leave type does not belong to this company or is inactive", nil)
	case errors.Is(err, balance.ErrWriteConflict):
		Conflict(w, "Balance was modified concurrently, please retry")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

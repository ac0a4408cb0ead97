package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeInactive   = errors.New("leave type is inactive")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrNoWorkingDays       = errors.New("requested range contains no working days")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrExceedsMaxDays      = errors.New("requested days exceed the leave type cap")
	ErrDocumentRequired    = errors.New("supporting document is required for this leave type")
	ErrInvalidTransition   = errors.New("leave request state transition not allowed")
	ErrOverlappingRequest  = errors.New("an active leave request already covers part of this range")
	ErrUnauthorized        = errors.New("not allowed to act on this leave request")
)

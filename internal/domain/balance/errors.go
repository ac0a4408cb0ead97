package balance

import "errors"

var (
	ErrLeaveTypeInvalid = errors.New("leave type does not belong to the employee's company or is inactive")
	ErrWriteConflict    = errors.New("balance adjustment conflicted with a concurrent write")
)

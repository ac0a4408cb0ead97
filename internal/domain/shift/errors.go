package shift

import "errors"

var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrHolidayExists       = errors.New("a holiday already exists on this date")
	ErrDefaultShiftMissing = errors.New("company has no default shift")
)

package attendance

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
)

// Thresholds are the worked-minutes cutoffs for the daily status.
type Thresholds struct {
	// FullDayMinutes is the minimum worked time for PRESENT.
	FullDayMinutes int
	// HalfDayMinutes is the minimum worked time for HALF_DAY.
	HalfDayMinutes int
	// CheckoutCutoff is how long after shift end a missing clock-out
	// still counts the day as half attended instead of absent.
	CheckoutCutoff time.Duration
}

// DayInput is everything the status derivation reads. It is assembled
// once per (employee, date) so the derivation itself stays pure.
type DayInput struct {
	Shift           shift.Shift
	Date            time.Time
	Location        *time.Location
	IsHoliday       bool
	OnApprovedLeave bool
	CheckIn         *time.Time
	CheckOut        *time.Time
	Now             time.Time
}

// IsWorkingDay reports whether attendance is expected on the date at
// all. Holidays and weekdays outside the shift's working set carry no
// expectation, so the sweep skips them entirely.
func IsWorkingDay(sh shift.Shift, date time.Time, isHoliday bool) bool {
	if isHoliday {
		return false
	}
	return sh.WorkingDays.Contains(date.Weekday())
}

// ComputeMetrics derives lateMinutes, earlyLeavingMinutes and
// totalWorkMinutes from the stamps. Missing stamps contribute zero.
func ComputeMetrics(in DayInput) (late, early, total int) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	if in.CheckIn != nil {
		graceEnd := in.Shift.StartOn(in.Date, loc).Add(time.Duration(in.Shift.GraceMinutes) * time.Minute)
		if d := in.CheckIn.Sub(graceEnd); d > 0 {
			late = int(d.Minutes())
		}
	}

	if in.CheckOut != nil {
		shiftEnd := in.Shift.EndOn(in.Date, loc)
		if d := shiftEnd.Sub(*in.CheckOut); d > 0 {
			early = int(d.Minutes())
		}
	}

	if in.CheckIn != nil && in.CheckOut != nil {
		worked := int(in.CheckOut.Sub(*in.CheckIn).Minutes()) - in.Shift.BreakMinutes
		if worked < 0 {
			worked = 0
		}
		total = worked
	}

	return late, early, total
}

// DeriveStatus maps one day's facts to a status. The derivation is
// total and deterministic: holidays win over leave, leave wins over
// stamps, and a day that has not concluded yet stays PENDING.
//
// A full-duration day that started late is HALF_DAY, not PRESENT:
// PRESENT requires both zero lateness and the full-day worked
// threshold.
func DeriveStatus(in DayInput, th Thresholds) attendance.Status {
	if in.IsHoliday {
		return attendance.StatusHoliday
	}
	if in.OnApprovedLeave {
		return attendance.StatusOnLeave
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	shiftEnd := in.Shift.EndOn(in.Date, loc)

	if in.CheckIn == nil {
		if in.Now.Before(shiftEnd) {
			return attendance.StatusPending
		}
		return attendance.StatusAbsent
	}

	late, _, total := ComputeMetrics(in)

	if in.CheckOut == nil {
		if in.Now.Before(shiftEnd.Add(th.CheckoutCutoff)) {
			return attendance.StatusPending
		}
		// Showed up but never closed the day.
		return attendance.StatusHalfDay
	}

	if late == 0 && total >= th.FullDayMinutes {
		return attendance.StatusPresent
	}
	if total >= th.HalfDayMinutes {
		return attendance.StatusHalfDay
	}
	return attendance.StatusAbsent
}

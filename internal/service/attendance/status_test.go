package attendance

import (
	"testing"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

var testThresholds = Thresholds{
	FullDayMinutes: 420,
	HalfDayMinutes: 210,
	CheckoutCutoff: 4 * time.Hour,
}

func officeShift() shift.Shift {
	return shift.Shift{
		ID:           "shift-1",
		Name:         "Standard Office Hours",
		StartMinutes: 9 * 60,
		EndMinutes:   18 * 60,
		BreakMinutes: 60,
		GraceMinutes: 10,
		WorkingDays: shift.Weekdays{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

func datePtr(t time.Time) *time.Time { return &t }

// Monday.
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name      string
		checkIn   *time.Time
		checkOut  *time.Time
		wantLate  int
		wantEarly int
		wantTotal int
	}{
		{
			name:      "on time full day",
			checkIn:   datePtr(at(9, 0)),
			checkOut:  datePtr(at(18, 0)),
			wantLate:  0,
			wantEarly: 0,
			wantTotal: 480,
		},
		{
			name:      "within grace is not late",
			checkIn:   datePtr(at(9, 10)),
			checkOut:  datePtr(at(18, 0)),
			wantLate:  0,
			wantEarly: 0,
			wantTotal: 470,
		},
		{
			name:      "late past grace counts from grace end",
			checkIn:   datePtr(at(9, 25)),
			checkOut:  datePtr(at(17, 30)),
			wantLate:  15,
			wantEarly: 30,
			wantTotal: 425,
		},
		{
			name:      "no stamps",
			wantLate:  0,
			wantEarly: 0,
			wantTotal: 0,
		},
		{
			name:      "check-in only",
			checkIn:   datePtr(at(9, 40)),
			wantLate:  30,
			wantEarly: 0,
			wantTotal: 0,
		},
		{
			name:      "worked less than break floors at zero",
			checkIn:   datePtr(at(9, 0)),
			checkOut:  datePtr(at(9, 30)),
			wantLate:  0,
			wantEarly: 510,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			late, early, total := ComputeMetrics(DayInput{
				Shift:    officeShift(),
				Date:     testDate,
				CheckIn:  tt.checkIn,
				CheckOut: tt.checkOut,
			})
			assert.Equal(t, tt.wantLate, late)
			assert.Equal(t, tt.wantEarly, early)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		input DayInput
		want  attendance.Status
	}{
		{
			name:  "holiday wins over everything",
			input: DayInput{Shift: officeShift(), Date: testDate, IsHoliday: true, OnApprovedLeave: true, CheckIn: datePtr(at(9, 0))},
			want:  attendance.StatusHoliday,
		},
		{
			name:  "approved leave wins over stamps",
			input: DayInput{Shift: officeShift(), Date: testDate, OnApprovedLeave: true, CheckIn: datePtr(at(9, 0)), CheckOut: datePtr(at(18, 0))},
			want:  attendance.StatusOnLeave,
		},
		{
			name:  "no check-in before shift end is pending",
			input: DayInput{Shift: officeShift(), Date: testDate, Now: at(12, 0)},
			want:  attendance.StatusPending,
		},
		{
			name:  "no check-in after shift end is absent",
			input: DayInput{Shift: officeShift(), Date: testDate, Now: at(18, 1)},
			want:  attendance.StatusAbsent,
		},
		{
			name:  "open check-in within cutoff is pending",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 0)), Now: at(20, 0)},
			want:  attendance.StatusPending,
		},
		{
			name:  "open check-in past cutoff is half day",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 0)), Now: at(22, 30)},
			want:  attendance.StatusHalfDay,
		},
		{
			name:  "on time full day is present",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 0)), CheckOut: datePtr(at(18, 0)), Now: at(23, 0)},
			want:  attendance.StatusPresent,
		},
		{
			name:  "late full duration day is half day",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 25)), CheckOut: datePtr(at(17, 30)), Now: at(23, 0)},
			want:  attendance.StatusHalfDay,
		},
		{
			name:  "short day below half threshold is absent",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 0)), CheckOut: datePtr(at(12, 0)), Now: at(23, 0)},
			want:  attendance.StatusAbsent,
		},
		{
			name:  "half threshold met is half day",
			input: DayInput{Shift: officeShift(), Date: testDate, CheckIn: datePtr(at(9, 0)), CheckOut: datePtr(at(14, 0)), Now: at(23, 0)},
			want:  attendance.StatusHalfDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.input, testThresholds)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The derivation has to be a pure function of its input so the sweep
// and a manual recompute always agree.
func TestDeriveStatus_Deterministic(t *testing.T) {
	in := DayInput{
		Shift:    officeShift(),
		Date:     testDate,
		CheckIn:  datePtr(at(9, 25)),
		CheckOut: datePtr(at(17, 30)),
		Now:      at(23, 0),
	}

	first := DeriveStatus(in, testThresholds)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveStatus(in, testThresholds))
	}
}

func TestIsWorkingDay(t *testing.T) {
	sh := officeShift()

	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsWorkingDay(sh, testDate, false))
	assert.False(t, IsWorkingDay(sh, saturday, false))
	assert.False(t, IsWorkingDay(sh, testDate, true))
}

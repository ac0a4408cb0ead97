package leave

import (
	"testing"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func weekdayShift() shift.Shift {
	return shift.Shift{
		WorkingDays: shift.Weekdays{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	sh := weekdayShift()

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		holidays []shift.Holiday
		want     float64
	}{
		{
			name:  "full week minus weekend",
			start: day(2025, 6, 2), // Monday
			end:   day(2025, 6, 8), // Sunday
			want:  5,
		},
		{
			name:  "single working day",
			start: day(2025, 6, 4),
			end:   day(2025, 6, 4),
			want:  1,
		},
		{
			name:  "weekend only",
			start: day(2025, 6, 7),
			end:   day(2025, 6, 8),
			want:  0,
		},
		{
			name:  "holiday inside range is excluded",
			start: day(2025, 6, 2),
			end:   day(2025, 6, 6),
			holidays: []shift.Holiday{
				{Date: day(2025, 6, 4)},
			},
			want: 4,
		},
		{
			name:  "holiday on weekend changes nothing",
			start: day(2025, 6, 2),
			end:   day(2025, 6, 8),
			holidays: []shift.Holiday{
				{Date: day(2025, 6, 7)},
			},
			want: 5,
		},
		{
			name:  "two weeks",
			start: day(2025, 6, 2),
			end:   day(2025, 6, 15),
			want:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkingDays(sh, tt.holidays, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

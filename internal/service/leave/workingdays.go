package leave

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
)

// WorkingDays counts the balance-consuming days in [start, end]: days
// whose weekday is in the shift's working set and that are not company
// holidays. Holidays are keyed by their YYYY-MM-DD date.
func WorkingDays(sh shift.Shift, holidays []shift.Holiday, start, end time.Time) float64 {
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date.Format("2006-01-02")] = struct{}{}
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !sh.WorkingDays.Contains(d.Weekday()) {
			continue
		}
		if _, ok := holidaySet[d.Format("2006-01-02")]; ok {
			continue
		}
		days++
	}
	return days
}

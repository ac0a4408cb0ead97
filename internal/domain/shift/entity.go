package shift

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Shift defines the working pattern an employee is measured against:
// clock-in/out times as minutes since midnight, break duration, the grace
// period before a late mark, and the set of working weekdays.
type Shift struct {
	ID           string
	CompanyID    string
	Name         string
	StartMinutes int
	EndMinutes   int
	BreakMinutes int
	GraceMinutes int
	WorkingDays  Weekdays
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Weekdays is the JSONB set of active weekdays (0 = Sunday ... 6 = Saturday).
type Weekdays []time.Weekday

// Contains reports whether day is a working day of the shift.
func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for database storage
func (w Weekdays) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for database retrieval
func (w *Weekdays) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Weekdays: invalid type")
	}

	return json.Unmarshal(bytes, w)
}

// StartOn anchors the shift start time on the given calendar date in loc.
func (s Shift) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.StartMinutes/60, s.StartMinutes%60, 0, 0, loc)
}

// EndOn anchors the shift end time on the given calendar date in loc.
func (s Shift) EndOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.EndMinutes/60, s.EndMinutes%60, 0, 0, loc)
}

func (s Shift) Validate() error {
	if s.StartMinutes < 0 || s.StartMinutes >= 24*60 {
		return fmt.Errorf("shift start out of range: %d", s.StartMinutes)
	}
	if s.EndMinutes <= s.StartMinutes || s.EndMinutes >= 24*60 {
		return fmt.Errorf("shift end out of range: %d", s.EndMinutes)
	}
	if s.GraceMinutes < 0 || s.BreakMinutes < 0 {
		return fmt.Errorf("shift grace and break must not be negative")
	}
	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("shift needs at least one working day")
	}
	return nil
}

// HolidayType distinguishes company-wide from optional holidays.
type HolidayType string

const (
	HolidayNational HolidayType = "national"
	HolidayOptional HolidayType = "optional"
	HolidayCompany  HolidayType = "company"
)

// Holiday is company-scoped and unique per (company, date).
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	Type      HolidayType
	CreatedAt time.Time
}

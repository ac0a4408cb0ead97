package fixtures

import (
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
)

// GetDefaultShift returns the standard office-hours shift a new company
// starts with: 09:00-18:00, 60 minute break, 10 minute grace,
// Monday through Friday.
func GetDefaultShift(companyID string) shift.Shift {
	return shift.Shift{
		CompanyID:    companyID,
		Name:         "Standard Office Hours",
		StartMinutes: 9 * 60,
		EndMinutes:   18 * 60,
		BreakMinutes: 60,
		GraceMinutes: 10,
		WorkingDays: shift.Weekdays{
			time.Monday,
			time.Tuesday,
			time.Wednesday,
			time.Thursday,
			time.Friday,
		},
		IsDefault: true,
	}
}

// GetDefaultLeaveTypes returns the leave types seeded for a new company.
func GetDefaultLeaveTypes(companyID string) []leave.Type {
	return []leave.Type{
		{
			CompanyID:      companyID,
			Code:           "ANNUAL",
			Name:           "Annual Leave",
			DefaultDays:    12,
			Color:          "#4CAF50",
			IsPaid:         true,
			MaxDays:        12,
			EnforceBalance: true,
			IsActive:       true,
		},
		{
			CompanyID:        companyID,
			Code:             "SICK",
			Name:             "Sick Leave",
			DefaultDays:      10,
			Color:            "#F44336",
			IsPaid:           true,
			RequiresDocument: true,
			MaxDays:          10,
			EnforceBalance:   true,
			IsActive:         true,
		},
		{
			CompanyID:      companyID,
			Code:           "UNPAID",
			Name:           "Unpaid Leave",
			DefaultDays:    0,
			Color:          "#9E9E9E",
			IsPaid:         false,
			MaxDays:        30,
			EnforceBalance: false,
			IsActive:       true,
		},
		{
			CompanyID:      companyID,
			Code:           "MATERNITY",
			Name:           "Maternity Leave",
			DefaultDays:    90,
			Color:          "#E91E63",
			IsPaid:         true,
			MaxDays:        90,
			EnforceBalance: true,
			IsActive:       true,
		},
	}
}

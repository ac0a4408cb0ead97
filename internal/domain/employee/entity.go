package employee

import (
	"time"
)

type Employee struct {
	ID         string
	CompanyID  string
	UserID     *string
	ShiftID    string
	Department *string
	FullName   string
	IsActive   bool
	HireDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

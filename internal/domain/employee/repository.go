package employee

import (
	"context"
)

// EmployeeRepository defines data access for employees.
// Employees are never deleted, only deactivated.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
	Deactivate(ctx context.Context, id string, companyID string) error
}

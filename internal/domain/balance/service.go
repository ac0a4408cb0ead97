package balance

import "context"

type Service interface {
	// AdjustBalance applies one signed delta to the (employee, leave
	// type) key and writes exactly one audit row, atomically.
	AdjustBalance(ctx context.Context, req AdjustRequest) (AdjustResponse, error)
	// GetBalances returns one entry per active leave type the company
	// defines. Types the employee was never seeded with report the
	// type's default days.
	GetBalances(ctx context.Context, employeeID string) (BalancesResponse, error)
	ListAdjustments(ctx context.Context, employeeID, leaveTypeID string) ([]AdjustmentResponse, error)
}

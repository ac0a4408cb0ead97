package balance

import "context"

type Repository interface {
	// GetForUpdate locks the (employee, leave type) row for the
	// duration of the ambient transaction. Returns found=false when no
	// row has been seeded yet.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string) (Balance, bool, error)
	// SeedIfAbsent inserts the row with its starting total. Returns
	// false without writing when another transaction seeded it first.
	SeedIfAbsent(ctx context.Context, b *Balance) (bool, error)
	// Upsert writes the running total, inserting the row when absent.
	Upsert(ctx context.Context, b *Balance) error
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Balance, error)
	CreateAdjustment(ctx context.Context, adj *Adjustment) error
	ListAdjustments(ctx context.Context, employeeID, leaveTypeID string) ([]Adjustment, error)
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/balance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type balanceRepository struct {
	db *database.DB
}

// GetForUpdate implements balance.Repository.
func (b *balanceRepository) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string) (balance.Balance, bool, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, employee_id, company_id, leave_type_id, days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
		FOR UPDATE
	`

	var bal balance.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&bal.ID, &bal.EmployeeID, &bal.CompanyID, &bal.LeaveTypeID,
		&bal.Days, &bal.CreatedAt, &bal.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return balance.Balance{}, false, nil
		}
		return balance.Balance{}, false, fmt.Errorf("failed to lock leave balance: %w", err)
	}

	return bal, true, nil
}

// SeedIfAbsent implements balance.Repository.
func (b *balanceRepository) SeedIfAbsent(ctx context.Context, bal *balance.Balance) (bool, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO leave_balances (employee_id, company_id, leave_type_id, days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		bal.EmployeeID,
		bal.CompanyID,
		bal.LeaveTypeID,
		bal.Days,
	).Scan(&bal.ID, &bal.CreatedAt, &bal.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to seed leave balance: %w", err)
	}

	return true, nil
}

// Upsert implements balance.Repository.
func (b *balanceRepository) Upsert(ctx context.Context, bal *balance.Balance) error {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO leave_balances (employee_id, company_id, leave_type_id, days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id)
		DO UPDATE SET days = EXCLUDED.days, updated_at = $5
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		bal.EmployeeID,
		bal.CompanyID,
		bal.LeaveTypeID,
		bal.Days,
		time.Now(),
	).Scan(&bal.ID, &bal.CreatedAt, &bal.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	return nil
}

// ListByEmployeeID implements balance.Repository.
func (b *balanceRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]balance.Balance, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, employee_id, company_id, leave_type_id, days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	var balances []balance.Balance
	for rows.Next() {
		var bal balance.Balance
		err := rows.Scan(
			&bal.ID, &bal.EmployeeID, &bal.CompanyID, &bal.LeaveTypeID,
			&bal.Days, &bal.CreatedAt, &bal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, bal)
	}

	return balances, nil
}

// CreateAdjustment implements balance.Repository.
func (b *balanceRepository) CreateAdjustment(ctx context.Context, adj *balance.Adjustment) error {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO leave_balance_adjustments (
			employee_id, company_id, leave_type_id, delta, balance_after, reason, actor_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		adj.EmployeeID,
		adj.CompanyID,
		adj.LeaveTypeID,
		adj.Delta,
		adj.BalanceAfter,
		adj.Reason,
		adj.ActorID,
	).Scan(&adj.ID, &adj.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create balance adjustment: %w", err)
	}

	return nil
}

// ListAdjustments implements balance.Repository.
func (b *balanceRepository) ListAdjustments(ctx context.Context, employeeID, leaveTypeID string) ([]balance.Adjustment, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, employee_id, company_id, leave_type_id, delta, balance_after,
			   reason, actor_id, created_at
		FROM leave_balance_adjustments
		WHERE employee_id = $1 AND leave_type_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []balance.Adjustment
	for rows.Next() {
		var adj balance.Adjustment
		err := rows.Scan(
			&adj.ID, &adj.EmployeeID, &adj.CompanyID, &adj.LeaveTypeID,
			&adj.Delta, &adj.BalanceAfter, &adj.Reason, &adj.ActorID, &adj.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	return adjustments, nil
}

func NewBalanceRepository(db *database.DB) balance.Repository {
	return &balanceRepository{db: db}
}

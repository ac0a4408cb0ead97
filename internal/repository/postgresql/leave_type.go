package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepository struct {
	db *database.DB
}

// Create implements leave.TypeRepository.
func (l *leaveTypeRepository) Create(ctx context.Context, t *leave.Type) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (
			company_id, code, name, default_days, color,
			is_paid, requires_document, max_days, enforce_balance, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.CompanyID,
		t.Code,
		t.Name,
		t.DefaultDays,
		t.Color,
		t.IsPaid,
		t.RequiresDocument,
		t.MaxDays,
		t.EnforceBalance,
		t.IsActive,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leave type: %w", err)
	}

	return nil
}

// GetByID implements leave.TypeRepository.
func (l *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, code, name, default_days, color,
			   is_paid, requires_document, max_days, enforce_balance, is_active,
			   created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var t leave.Type
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.DefaultDays, &t.Color,
		&t.IsPaid, &t.RequiresDocument, &t.MaxDays, &t.EnforceBalance, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Type{}, leave.ErrLeaveTypeNotFound
		}
		return leave.Type{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}

	return t, nil
}

// ListByCompanyID implements leave.TypeRepository.
func (l *leaveTypeRepository) ListByCompanyID(ctx context.Context, companyID string) ([]leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, code, name, default_days, color,
			   is_paid, requires_document, max_days, enforce_balance, is_active,
			   created_at, updated_at
		FROM leave_types
		WHERE company_id = $1
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.Type
	for rows.Next() {
		var t leave.Type
		err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.DefaultDays, &t.Color,
			&t.IsPaid, &t.RequiresDocument, &t.MaxDays, &t.EnforceBalance, &t.IsActive,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

// Update implements leave.TypeRepository.
func (l *leaveTypeRepository) Update(ctx context.Context, t *leave.Type) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types SET
			code = $1,
			name = $2,
			default_days = $3,
			color = $4,
			is_paid = $5,
			requires_document = $6,
			max_days = $7,
			enforce_balance = $8,
			is_active = $9,
			updated_at = $10
		WHERE id = $11 AND company_id = $12
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		t.Code,
		t.Name,
		t.DefaultDays,
		t.Color,
		t.IsPaid,
		t.RequiresDocument,
		t.MaxDays,
		t.EnforceBalance,
		t.IsActive,
		time.Now(),
		t.ID,
		t.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to update leave type: %w", err)
	}

	return nil
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepository{db: db}
}

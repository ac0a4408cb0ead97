package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

// Create implements shift.ShiftRepository.
func (s *shiftRepository) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shifts (
			company_id, name, start_minutes, end_minutes, break_minutes,
			grace_minutes, working_days, is_default
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.CompanyID,
		sh.Name,
		sh.StartMinutes,
		sh.EndMinutes,
		sh.BreakMinutes,
		sh.GraceMinutes,
		sh.WorkingDays,
		sh.IsDefault,
	).Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, start_minutes, end_minutes, break_minutes,
			   grace_minutes, working_days, is_default, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND company_id = $2
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartMinutes, &sh.EndMinutes,
		&sh.BreakMinutes, &sh.GraceMinutes, &sh.WorkingDays, &sh.IsDefault,
		&sh.CreatedAt, &sh.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return sh, nil
}

// GetDefault implements shift.ShiftRepository.
func (s *shiftRepository) GetDefault(ctx context.Context, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, start_minutes, end_minutes, break_minutes,
			   grace_minutes, working_days, is_default, created_at, updated_at
		FROM shifts
		WHERE company_id = $1 AND is_default = true
		LIMIT 1
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartMinutes, &sh.EndMinutes,
		&sh.BreakMinutes, &sh.GraceMinutes, &sh.WorkingDays, &sh.IsDefault,
		&sh.CreatedAt, &sh.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrDefaultShiftMissing
		}
		return shift.Shift{}, fmt.Errorf("failed to get default shift: %w", err)
	}

	return sh, nil
}

// ListByCompanyID implements shift.ShiftRepository.
func (s *shiftRepository) ListByCompanyID(ctx context.Context, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, start_minutes, end_minutes, break_minutes,
			   grace_minutes, working_days, is_default, created_at, updated_at
		FROM shifts
		WHERE company_id = $1
		ORDER BY is_default DESC, name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		err := rows.Scan(
			&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartMinutes, &sh.EndMinutes,
			&sh.BreakMinutes, &sh.GraceMinutes, &sh.WorkingDays, &sh.IsDefault,
			&sh.CreatedAt, &sh.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (s *shiftRepository) Update(ctx context.Context, sh shift.Shift) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shifts SET
			name = $1,
			start_minutes = $2,
			end_minutes = $3,
			break_minutes = $4,
			grace_minutes = $5,
			working_days = $6,
			is_default = $7,
			updated_at = $8
		WHERE id = $9 AND company_id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		sh.Name,
		sh.StartMinutes,
		sh.EndMinutes,
		sh.BreakMinutes,
		sh.GraceMinutes,
		sh.WorkingDays,
		sh.IsDefault,
		time.Now(),
		sh.ID,
		sh.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}

	return nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

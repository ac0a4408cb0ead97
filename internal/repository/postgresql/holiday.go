package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements shift.HolidayRepository.
func (h *holidayRepository) Create(ctx context.Context, holiday shift.Holiday) (shift.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (company_id, date, name, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		holiday.CompanyID,
		holiday.Date,
		holiday.Name,
		holiday.Type,
	).Scan(&holiday.ID, &holiday.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err, "") {
			return shift.Holiday{}, shift.ErrHolidayExists
		}
		return shift.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday, nil
}

// Delete implements shift.HolidayRepository.
func (h *holidayRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, h.db)

	query := `DELETE FROM holidays WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return shift.ErrHolidayNotFound
	}

	return nil
}

// GetByDateRange implements shift.HolidayRepository.
func (h *holidayRepository) GetByDateRange(ctx context.Context, companyID string, start, end time.Time) ([]shift.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, date, name, type, created_at
		FROM holidays
		WHERE company_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []shift.Holiday
	for rows.Next() {
		var holiday shift.Holiday
		err := rows.Scan(
			&holiday.ID, &holiday.CompanyID, &holiday.Date,
			&holiday.Name, &holiday.Type, &holiday.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, holiday)
	}

	return holidays, nil
}

// Exists implements shift.HolidayRepository.
func (h *holidayRepository) Exists(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays WHERE company_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday existence: %w", err)
	}

	return exists, nil
}

func NewHolidayRepository(db *database.DB) shift.HolidayRepository {
	return &holidayRepository{db: db}
}

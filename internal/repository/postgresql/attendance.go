package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, employee_id, company_id, date,
	check_in_time, check_out_time,
	check_in_latitude, check_in_longitude,
	check_out_latitude, check_out_longitude,
	late_minutes, early_leaving_minutes, total_work_minutes,
	status, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime,
		&rec.CheckInLatitude, &rec.CheckInLongitude,
		&rec.CheckOutLatitude, &rec.CheckOutLongitude,
		&rec.LateMinutes, &rec.EarlyLeavingMinutes, &rec.TotalWorkMinutes,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date,
			check_in_time, check_out_time,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			late_minutes, early_leaving_minutes, total_work_minutes,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.CompanyID,
		rec.Date,
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.CheckInLatitude,
		rec.CheckInLongitude,
		rec.CheckOutLatitude,
		rec.CheckOutLongitude,
		rec.LateMinutes,
		rec.EarlyLeavingMinutes,
		rec.TotalWorkMinutes,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			r.id, r.employee_id, r.company_id, r.date,
			r.check_in_time, r.check_out_time,
			r.check_in_latitude, r.check_in_longitude,
			r.check_out_latitude, r.check_out_longitude,
			r.late_minutes, r.early_leaving_minutes, r.total_work_minutes,
			r.status, r.created_at, r.updated_at,
			e.full_name AS employee_name
		FROM attendance_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1 AND r.company_id = $2
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime,
		&rec.CheckInLatitude, &rec.CheckInLongitude,
		&rec.CheckOutLatitude, &rec.CheckOutLongitude,
		&rec.LateMinutes, &rec.EarlyLeavingMinutes, &rec.TotalWorkMinutes,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for the day
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// GetByEmployeeAndDateForUpdate implements attendance.RecordRepository.
func (a *attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
		FOR UPDATE
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock attendance record: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.RecordRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in_time = $1,
			check_out_time = $2,
			check_in_latitude = $3,
			check_in_longitude = $4,
			check_out_latitude = $5,
			check_out_longitude = $6,
			late_minutes = $7,
			early_leaving_minutes = $8,
			total_work_minutes = $9,
			status = $10,
			updated_at = $11
		WHERE id = $12 AND company_id = $13
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.CheckInLatitude,
		rec.CheckInLongitude,
		rec.CheckOutLatitude,
		rec.CheckOutLongitude,
		rec.LateMinutes,
		rec.EarlyLeavingMinutes,
		rec.TotalWorkMinutes,
		rec.Status,
		time.Now(),
		rec.ID,
		rec.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// List implements attendance.RecordRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter, companyID string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "r.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND r.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND r.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			r.id, r.employee_id, r.company_id, r.date,
			r.check_in_time, r.check_out_time,
			r.check_in_latitude, r.check_in_longitude,
			r.check_out_latitude, r.check_out_longitude,
			r.late_minutes, r.early_leaving_minutes, r.total_work_minutes,
			r.status, r.created_at, r.updated_at,
			e.full_name AS employee_name
		FROM attendance_records r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
			&rec.CheckInTime, &rec.CheckOutTime,
			&rec.CheckInLatitude, &rec.CheckInLongitude,
			&rec.CheckOutLatitude, &rec.CheckOutLongitude,
			&rec.LateMinutes, &rec.EarlyLeavingMinutes, &rec.TotalWorkMinutes,
			&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// SetStatusRange implements attendance.RecordRepository.
func (a *attendanceRepository) SetStatusRange(ctx context.Context, employeeID string, companyID string, from, to time.Time, status attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET status = $1, updated_at = $2
		WHERE employee_id = $3
		  AND company_id = $4
		  AND date >= $5
		  AND date <= $6
	`

	if _, err := q.Exec(ctx, query, status, time.Now(), employeeID, companyID, from, to); err != nil {
		return fmt.Errorf("failed to set attendance status range: %w", err)
	}

	return nil
}

// MissingDates implements attendance.RecordRepository.
func (a *attendanceRepository) MissingDates(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT d::date
		FROM generate_series($1::date, $2::date, interval '1 day') AS d
		WHERE NOT EXISTS (
			SELECT 1
			FROM attendance_records
			WHERE employee_id = $3
			  AND company_id = $4
			  AND date = d::date
		)
		ORDER BY d
	`

	rows, err := q.Query(ctx, query, from, to, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query missing attendance dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan missing attendance date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

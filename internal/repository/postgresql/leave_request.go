package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	id, employee_id, company_id, leave_type_id,
	start_date, end_date, working_days, reason, document_url,
	status, resolved_by, resolved_at, cancelled_at,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.WorkingDays, &req.Reason, &req.DocumentURL,
		&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CancelledAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req *leave.Request) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, company_id, leave_type_id,
			start_date, end_date, working_days, reason, document_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.CompanyID,
		req.LeaveTypeID,
		req.StartDate,
		req.EndDate,
		req.WorkingDays,
		req.Reason,
		req.DocumentURL,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT
			lr.id, lr.employee_id, lr.company_id, lr.leave_type_id,
			lr.start_date, lr.end_date, lr.working_days, lr.reason, lr.document_url,
			lr.status, lr.resolved_by, lr.resolved_at, lr.cancelled_at,
			lr.created_at, lr.updated_at,
			e.full_name AS employee_name,
			lt.name AS leave_type_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.id = $1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.WorkingDays, &req.Reason, &req.DocumentURL,
		&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CancelledAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.LeaveTypeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// GetByIDForUpdate implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
		FOR UPDATE
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to lock leave request: %w", err)
	}

	return req, nil
}

// Update implements leave.RequestRepository.
func (l *leaveRequestRepository) Update(ctx context.Context, req *leave.Request) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests SET
			status = $1,
			resolved_by = $2,
			resolved_at = $3,
			cancelled_at = $4,
			updated_at = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status,
		req.ResolvedBy,
		req.ResolvedAt,
		req.CancelledAt,
		time.Now(),
		req.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

// HasOverlapping implements leave.RequestRepository.
func (l *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var overlapping bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&overlapping); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return overlapping, nil
}

// HasApprovedOn implements leave.RequestRepository.
func (l *leaveRequestRepository) HasApprovedOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var covered bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&covered); err != nil {
		return false, fmt.Errorf("failed to check approved leave coverage: %w", err)
	}

	return covered, nil
}

// List implements leave.RequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, companyID string, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "lr.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.leave_type_id = $%d", argIdx)
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			lr.id, lr.employee_id, lr.company_id, lr.leave_type_id,
			lr.start_date, lr.end_date, lr.working_days, lr.reason, lr.document_url,
			lr.status, lr.resolved_by, lr.resolved_at, lr.cancelled_at,
			lr.created_at, lr.updated_at,
			e.full_name AS employee_name,
			lt.name AS leave_type_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE %s
		ORDER BY lr.created_at DESC
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
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.CompanyID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.WorkingDays, &req.Reason, &req.DocumentURL,
			&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CancelledAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.LeaveTypeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

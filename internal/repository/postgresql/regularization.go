package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/regularization"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type regularizationRepository struct {
	db *database.DB
}

const regularizationColumns = `
	id, employee_id, company_id, date,
	proposed_check_in, proposed_check_out, reason,
	status, resolved_by, resolved_at, created_at
`

func scanRegularization(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.Date,
		&req.ProposedCheckIn, &req.ProposedCheckOut, &req.Reason,
		&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt,
	)
	return req, err
}

// Create implements regularization.Repository.
// A partial unique index on (employee_id, date) WHERE status = 'pending'
// guarantees the single-pending invariant even under concurrent submits.
func (r *regularizationRepository) Create(ctx context.Context, req *regularization.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularization_requests (
			employee_id, company_id, date,
			proposed_check_in, proposed_check_out, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.CompanyID,
		req.Date,
		req.ProposedCheckIn,
		req.ProposedCheckOut,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err, "regularization_requests_one_pending") {
			return regularization.ErrDuplicatePendingRequest
		}
		return fmt.Errorf("failed to create regularization request: %w", err)
	}

	return nil
}

// GetByID implements regularization.Repository.
func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			rr.id, rr.employee_id, rr.company_id, rr.date,
			rr.proposed_check_in, rr.proposed_check_out, rr.reason,
			rr.status, rr.resolved_by, rr.resolved_at, rr.created_at,
			e.full_name AS employee_name
		FROM regularization_requests rr
		LEFT JOIN employees e ON e.id = rr.employee_id
		WHERE rr.id = $1
	`

	var req regularization.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.Date,
		&req.ProposedCheckIn, &req.ProposedCheckOut, &req.Reason,
		&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt,
		&req.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to get regularization request by ID: %w", err)
	}

	return req, nil
}

// GetByIDForUpdate implements regularization.Repository.
func (r *regularizationRepository) GetByIDForUpdate(ctx context.Context, id string) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularization_requests
		WHERE id = $1
		FOR UPDATE
	`

	req, err := scanRegularization(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to lock regularization request: %w", err)
	}

	return req, nil
}

// HasPending implements regularization.Repository.
func (r *regularizationRepository) HasPending(ctx context.Context, employeeID, date string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM regularization_requests
			WHERE employee_id = $1
			  AND date = $2
			  AND status = 'pending'
		)
	`

	var hasPending bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&hasPending); err != nil {
		return false, fmt.Errorf("failed to check pending regularization request: %w", err)
	}

	return hasPending, nil
}

// Update implements regularization.Repository.
func (r *regularizationRepository) Update(ctx context.Context, req *regularization.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularization_requests SET
			status = $1,
			resolved_by = $2,
			resolved_at = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status,
		req.ResolvedBy,
		req.ResolvedAt,
		req.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return regularization.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update regularization request: %w", err)
	}

	return nil
}

// List implements regularization.Repository.
func (r *regularizationRepository) List(ctx context.Context, companyID string, filter regularization.Filter) ([]regularization.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "rr.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND rr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND rr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM regularization_requests rr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regularization requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			rr.id, rr.employee_id, rr.company_id, rr.date,
			rr.proposed_check_in, rr.proposed_check_out, rr.reason,
			rr.status, rr.resolved_by, rr.resolved_at, rr.created_at,
			e.full_name AS employee_name
		FROM regularization_requests rr
		LEFT JOIN employees e ON e.id = rr.employee_id
		WHERE %s
		ORDER BY rr.created_at DESC
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
		return nil, 0, fmt.Errorf("failed to query regularization requests: %w", err)
	}
	defer rows.Close()

	var requests []regularization.Request
	for rows.Next() {
		var req regularization.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.CompanyID, &req.Date,
			&req.ProposedCheckIn, &req.ProposedCheckOut, &req.Reason,
			&req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan regularization request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

func NewRegularizationRepository(db *database.DB) regularization.Repository {
	return &regularizationRepository{db: db}
}

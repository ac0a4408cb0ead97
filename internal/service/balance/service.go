package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/balance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/metrics"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/validator"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// adjustRetries bounds how often a serialization failure or deadlock is
// retried before the caller sees a conflict error.
const adjustRetries = 3

type BalanceServiceImpl struct {
	db *database.DB
	balance.Repository
	employee.EmployeeRepository
	leaveTypes leave.TypeRepository
}

func NewBalanceService(
	db *database.DB,
	balanceRepo balance.Repository,
	employeeRepo employee.EmployeeRepository,
	leaveTypeRepo leave.TypeRepository,
) balance.Service {
	return &BalanceServiceImpl{
		db:                 db,
		Repository:         balanceRepo,
		EmployeeRepository: employeeRepo,
		leaveTypes:         leaveTypeRepo,
	}
}

// AdjustBalance implements balance.Service. The read-modify-write and
// the audit row share one transaction; the row lock serializes
// concurrent adjustments of the same (employee, leave type) key while
// different keys proceed in parallel. Negative results are allowed;
// callers wanting a floor enforce it before calling.
func (b *BalanceServiceImpl) AdjustBalance(ctx context.Context, req balance.AdjustRequest) (balance.AdjustResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.AdjustResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return balance.AdjustResponse{}, err
	}

	emp, err := b.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return balance.AdjustResponse{}, err
	}
	if emp.CompanyID != claims.CompanyID {
		return balance.AdjustResponse{}, employee.ErrEmployeeNotFound
	}

	lt, err := b.leaveTypes.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return balance.AdjustResponse{}, err
	}
	if lt.CompanyID != emp.CompanyID || !lt.IsActive {
		return balance.AdjustResponse{}, balance.ErrLeaveTypeInvalid
	}

	// Joining an ambient transaction keeps a caller's own writes and
	// the balance mutation atomic as one unit. The caller then owns
	// retry semantics.
	if _, ok := ctx.Value("tx").(pgx.Tx); ok {
		newBalance, err := b.applyAdjustment(ctx, req, emp.CompanyID, lt.DefaultDays, claims.UserID)
		if err != nil {
			return balance.AdjustResponse{}, err
		}
		return balance.AdjustResponse{
			EmployeeID:  req.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			NewBalance:  newBalance,
		}, nil
	}

	var newBalance float64
	for attempt := 0; ; attempt++ {
		err = postgresql.WithTransaction(ctx, b.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			var err error
			newBalance, err = b.applyAdjustment(txCtx, req, emp.CompanyID, lt.DefaultDays, claims.UserID)
			return err
		})
		if err == nil {
			break
		}
		if postgresql.IsRetryableTxError(err) && attempt < adjustRetries {
			continue
		}
		if postgresql.IsRetryableTxError(err) {
			return balance.AdjustResponse{}, balance.ErrWriteConflict
		}
		return balance.AdjustResponse{}, fmt.Errorf("failed to adjust leave balance: %w", err)
	}

	return balance.AdjustResponse{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		NewBalance:  newBalance,
	}, nil
}

// applyAdjustment performs the locked read-modify-write plus exactly
// one audit row. txCtx must carry an open transaction.
func (b *BalanceServiceImpl) applyAdjustment(txCtx context.Context, req balance.AdjustRequest, companyID string, defaultDays float64, actorID string) (float64, error) {
	current, found, err := b.Repository.GetForUpdate(txCtx, req.EmployeeID, req.LeaveTypeID)
	if err != nil {
		return 0, err
	}
	if !found {
		// Lazily seed the key from the type's default. A concurrent
		// first adjustment can win the insert between our select and
		// seed; in that case re-read the now-committed row under lock.
		seeded := balance.Balance{
			EmployeeID:  req.EmployeeID,
			CompanyID:   companyID,
			LeaveTypeID: req.LeaveTypeID,
			Days:        defaultDays,
		}
		inserted, err := b.Repository.SeedIfAbsent(txCtx, &seeded)
		if err != nil {
			return 0, err
		}
		if inserted {
			current = seeded
		} else {
			current, _, err = b.Repository.GetForUpdate(txCtx, req.EmployeeID, req.LeaveTypeID)
			if err != nil {
				return 0, err
			}
		}
	}

	current.Days += req.Delta
	if err := b.Repository.Upsert(txCtx, &current); err != nil {
		return 0, err
	}

	adj := balance.Adjustment{
		EmployeeID:   req.EmployeeID,
		CompanyID:    companyID,
		LeaveTypeID:  req.LeaveTypeID,
		Delta:        req.Delta,
		BalanceAfter: current.Days,
		Reason:       req.Reason,
		ActorID:      actorID,
	}
	if err := b.Repository.CreateAdjustment(txCtx, &adj); err != nil {
		return 0, err
	}

	metrics.BalanceAdjustments.Inc()
	return current.Days, nil
}

// GetBalances implements balance.Service. The snapshot covers every
// active leave type of the company; a type the employee was never
// seeded with reports the type's default days, a stored row always
// wins.
func (b *BalanceServiceImpl) GetBalances(ctx context.Context, employeeID string) (balance.BalancesResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return balance.BalancesResponse{}, err
	}
	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID != claims.EmployeeID && !claims.IsAdmin {
		return balance.BalancesResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := b.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return balance.BalancesResponse{}, err
	}
	if emp.CompanyID != claims.CompanyID {
		return balance.BalancesResponse{}, employee.ErrEmployeeNotFound
	}

	types, err := b.leaveTypes.ListByCompanyID(ctx, emp.CompanyID)
	if err != nil {
		return balance.BalancesResponse{}, err
	}

	stored, err := b.Repository.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return balance.BalancesResponse{}, err
	}
	byType := make(map[string]float64, len(stored))
	for _, bal := range stored {
		byType[bal.LeaveTypeID] = bal.Days
	}

	resp := balance.BalancesResponse{EmployeeID: employeeID}
	for _, lt := range types {
		if !lt.IsActive {
			continue
		}
		days, ok := byType[lt.ID]
		if !ok {
			days = lt.DefaultDays
		}
		resp.Balances = append(resp.Balances, balance.TypeBalance{
			LeaveTypeID:   lt.ID,
			LeaveTypeCode: lt.Code,
			LeaveTypeName: lt.Name,
			Days:          days,
		})
	}

	return resp, nil
}

// ListAdjustments implements balance.Service.
func (b *BalanceServiceImpl) ListAdjustments(ctx context.Context, employeeID, leaveTypeID string) ([]balance.AdjustmentResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID != claims.EmployeeID && !claims.IsAdmin {
		return nil, employee.ErrEmployeeNotFound
	}
	if validator.IsEmpty(employeeID) || validator.IsEmpty(leaveTypeID) {
		return nil, fmt.Errorf("employee_id and leave_type_id are required")
	}

	adjustments, err := b.Repository.ListAdjustments(ctx, employeeID, leaveTypeID)
	if err != nil {
		return nil, err
	}

	responses := make([]balance.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, balance.AdjustmentResponse{
			ID:           adj.ID,
			EmployeeID:   adj.EmployeeID,
			LeaveTypeID:  adj.LeaveTypeID,
			Delta:        adj.Delta,
			BalanceAfter: adj.BalanceAfter,
			Reason:       adj.Reason,
			ActorID:      adj.ActorID,
			CreatedAt:    adj.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return responses, nil
}

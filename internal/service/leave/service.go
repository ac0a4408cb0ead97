package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/balance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/notification"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.RequestRepository
	leave.TypeRepository
	employee.EmployeeRepository
	shift.ShiftRepository
	shift.HolidayRepository
	balances   balance.Service
	records    attendance.RecordRepository
	dispatcher notification.Dispatcher
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	typeRepo leave.TypeRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	holidayRepo shift.HolidayRepository,
	balanceService balance.Service,
	recordRepo attendance.RecordRepository,
	dispatcher notification.Dispatcher,
) leave.Service {
	return &LeaveServiceImpl{
		db:                 db,
		RequestRepository:  requestRepo,
		TypeRepository:     typeRepo,
		EmployeeRepository: employeeRepo,
		ShiftRepository:    shiftRepo,
		HolidayRepository:  holidayRepo,
		balances:           balanceService,
		records:            recordRepo,
		dispatcher:         dispatcher,
	}
}

// CreateType implements leave.Service.
func (l *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateTypeRequest) (leave.TypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.TypeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.TypeResponse{}, err
	}
	if !claims.IsAdmin {
		return leave.TypeResponse{}, leave.ErrUnauthorized
	}

	t := leave.Type{
		CompanyID:        claims.CompanyID,
		Code:             req.Code,
		Name:             req.Name,
		DefaultDays:      req.DefaultDays,
		Color:            req.Color,
		IsPaid:           req.IsPaid,
		RequiresDocument: req.RequiresDocument,
		MaxDays:          req.MaxDays,
		EnforceBalance:   req.EnforceBalance,
		IsActive:         true,
	}
	if err := l.TypeRepository.Create(ctx, &t); err != nil {
		return leave.TypeResponse{}, err
	}

	return leave.NewTypeResponse(t), nil
}

// ListTypes implements leave.Service.
func (l *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.TypeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := l.TypeRepository.ListByCompanyID(ctx, claims.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.TypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, leave.NewTypeResponse(t))
	}
	return responses, nil
}

// Submit implements leave.Service.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID == "" {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}
	if employeeID != claims.EmployeeID && !claims.IsAdmin {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if emp.CompanyID != claims.CompanyID {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}
	if !emp.IsActive {
		return leave.RequestResponse{}, employee.ErrEmployeeDeactivated
	}

	lt, err := l.TypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if lt.CompanyID != emp.CompanyID {
		return leave.RequestResponse{}, leave.ErrLeaveTypeNotFound
	}
	if !lt.IsActive {
		return leave.RequestResponse{}, leave.ErrLeaveTypeInactive
	}
	if lt.RequiresDocument && (req.DocumentURL == nil || *req.DocumentURL == "") {
		return leave.RequestResponse{}, leave.ErrDocumentRequired
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	sh, err := l.ShiftRepository.GetByID(ctx, emp.ShiftID, emp.CompanyID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	holidays, err := l.HolidayRepository.GetByDateRange(ctx, emp.CompanyID, start, end)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	days := WorkingDays(sh, holidays, start, end)
	if days == 0 {
		return leave.RequestResponse{}, leave.ErrNoWorkingDays
	}
	if lt.MaxDays > 0 && days > lt.MaxDays {
		return leave.RequestResponse{}, leave.ErrExceedsMaxDays
	}

	overlapping, err := l.RequestRepository.HasOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if overlapping {
		return leave.RequestResponse{}, leave.ErrOverlappingRequest
	}

	if lt.EnforceBalance {
		remaining, err := l.remainingBalance(ctx, employeeID, lt)
		if err != nil {
			return leave.RequestResponse{}, err
		}
		if days > remaining {
			return leave.RequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	request := leave.Request{
		EmployeeID:  employeeID,
		CompanyID:   emp.CompanyID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		WorkingDays: days,
		Reason:      req.Reason,
		DocumentURL: req.DocumentURL,
		Status:      leave.StatusPending,
	}
	if err := l.RequestRepository.Create(ctx, &request); err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.NewRequestResponse(request), nil
}

// remainingBalance reads the employee's effective balance for the type:
// the stored running total when seeded, the type's default otherwise.
func (l *LeaveServiceImpl) remainingBalance(ctx context.Context, employeeID string, lt leave.Type) (float64, error) {
	snapshot, err := l.balances.GetBalances(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	for _, entry := range snapshot.Balances {
		if entry.LeaveTypeID == lt.ID {
			return entry.Days, nil
		}
	}
	return lt.DefaultDays, nil
}

// Approve implements leave.Service. The status flip, the balance debit
// with its audit row, and the ON_LEAVE marking of covered dates commit
// as one transaction.
func (l *LeaveServiceImpl) Approve(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !claims.IsAdmin {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}

	now := time.Now().UTC()
	var request leave.Request
	err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err = l.RequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.CompanyID != claims.CompanyID {
			return leave.ErrRequestNotFound
		}
		if err := request.Approve(claims.UserID, now); err != nil {
			return err
		}
		if err := l.RequestRepository.Update(txCtx, &request); err != nil {
			return err
		}

		_, err = l.balances.AdjustBalance(txCtx, balance.AdjustRequest{
			EmployeeID:  request.EmployeeID,
			LeaveTypeID: request.LeaveTypeID,
			Delta:       -request.WorkingDays,
			Reason:      fmt.Sprintf("Leave approved: %s", request.ID),
		})
		if err != nil {
			return err
		}

		return l.records.SetStatusRange(txCtx, request.EmployeeID, request.CompanyID,
			request.StartDate, request.EndDate, attendance.StatusOnLeave)
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.dispatcher.Publish(ctx, notification.Event{
		EmployeeID:  request.EmployeeID,
		CompanyID:   request.CompanyID,
		Type:        notification.EventLeaveApproved,
		ReferenceID: request.ID,
		Timestamp:   now,
	})

	return leave.NewRequestResponse(request), nil
}

// Reject implements leave.Service. A rejected request never touched the
// balance, so there is nothing to restore.
func (l *LeaveServiceImpl) Reject(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !claims.IsAdmin {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}

	now := time.Now().UTC()
	var request leave.Request
	err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err = l.RequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.CompanyID != claims.CompanyID {
			return leave.ErrRequestNotFound
		}
		if err := request.Reject(claims.UserID, now); err != nil {
			return err
		}
		return l.RequestRepository.Update(txCtx, &request)
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.dispatcher.Publish(ctx, notification.Event{
		EmployeeID:  request.EmployeeID,
		CompanyID:   request.CompanyID,
		Type:        notification.EventLeaveRejected,
		ReferenceID: request.ID,
		Timestamp:   now,
	})

	return leave.NewRequestResponse(request), nil
}

// Cancel implements leave.Service. It credits back exactly what the
// approval debited and reverses the ON_LEAVE marking for future dates
// only; elapsed leave days stay as they were.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var request leave.Request
	err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err = l.RequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.CompanyID != claims.CompanyID {
			return leave.ErrRequestNotFound
		}
		if request.EmployeeID != claims.EmployeeID && !claims.IsAdmin {
			return leave.ErrUnauthorized
		}
		if err := request.Cancel(now); err != nil {
			return err
		}
		if err := l.RequestRepository.Update(txCtx, &request); err != nil {
			return err
		}

		_, err = l.balances.AdjustBalance(txCtx, balance.AdjustRequest{
			EmployeeID:  request.EmployeeID,
			LeaveTypeID: request.LeaveTypeID,
			Delta:       request.WorkingDays,
			Reason:      fmt.Sprintf("Leave cancelled: %s", request.ID),
		})
		if err != nil {
			return err
		}

		reverseFrom := request.StartDate
		if reverseFrom.Before(today.AddDate(0, 0, 1)) {
			reverseFrom = today.AddDate(0, 0, 1)
		}
		if reverseFrom.After(request.EndDate) {
			return nil
		}
		return l.records.SetStatusRange(txCtx, request.EmployeeID, request.CompanyID,
			reverseFrom, request.EndDate, attendance.StatusPending)
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	l.dispatcher.Publish(ctx, notification.Event{
		EmployeeID:  request.EmployeeID,
		CompanyID:   request.CompanyID,
		Type:        notification.EventLeaveCancelled,
		ReferenceID: request.ID,
		Timestamp:   now,
	})

	return leave.NewRequestResponse(request), nil
}

// GetByID implements leave.Service.
func (l *LeaveServiceImpl) GetByID(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := l.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.CompanyID != claims.CompanyID {
		return leave.RequestResponse{}, leave.ErrRequestNotFound
	}
	if request.EmployeeID != claims.EmployeeID && !claims.IsAdmin {
		return leave.RequestResponse{}, leave.ErrUnauthorized
	}

	return leave.NewRequestResponse(request), nil
}

// List implements leave.Service.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.RequestFilter) (leave.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListRequestsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListRequestsResponse{}, err
	}
	if !claims.IsAdmin {
		// Self-service listing is scoped to the caller's own requests.
		filter.EmployeeID = &claims.EmployeeID
	}

	requests, total, err := l.RequestRepository.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.NewRequestResponse(request))
	}

	return leave.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

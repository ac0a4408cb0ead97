package regularization

import (
	"context"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/notification"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/regularization"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type RegularizationServiceImpl struct {
	db *database.DB
	regularization.Repository
	employee.EmployeeRepository
	records    attendance.RecordRepository
	engine     attendance.Service
	dispatcher notification.Dispatcher
}

func NewRegularizationService(
	db *database.DB,
	repo regularization.Repository,
	employeeRepo employee.EmployeeRepository,
	recordRepo attendance.RecordRepository,
	attendanceService attendance.Service,
	dispatcher notification.Dispatcher,
) regularization.Service {
	return &RegularizationServiceImpl{
		db:                 db,
		Repository:         repo,
		EmployeeRepository: employeeRepo,
		records:            recordRepo,
		engine:             attendanceService,
		dispatcher:         dispatcher,
	}
}

// Submit implements regularization.Service. The partial unique index on
// pending requests makes the duplicate check race-free; the pre-check
// only exists to return the domain error without a round trip through a
// constraint violation in the common case.
func (r *RegularizationServiceImpl) Submit(ctx context.Context, req regularization.SubmitRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return regularization.Response{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID == "" {
		return regularization.Response{}, regularization.ErrUnauthorized
	}
	if employeeID != claims.EmployeeID && !claims.IsAdmin {
		return regularization.Response{}, regularization.ErrUnauthorized
	}

	emp, err := r.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return regularization.Response{}, err
	}
	if emp.CompanyID != claims.CompanyID {
		return regularization.Response{}, regularization.ErrUnauthorized
	}
	if !emp.IsActive {
		return regularization.Response{}, employee.ErrEmployeeDeactivated
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	pending, err := r.Repository.HasPending(ctx, employeeID, req.Date)
	if err != nil {
		return regularization.Response{}, err
	}
	if pending {
		return regularization.Response{}, regularization.ErrDuplicatePendingRequest
	}

	var checkIn, checkOut *time.Time
	if req.ProposedCheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedCheckIn)
		t = t.UTC()
		checkIn = &t
	}
	if req.ProposedCheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedCheckOut)
		t = t.UTC()
		checkOut = &t
	}

	request := regularization.Request{
		EmployeeID:       employeeID,
		CompanyID:        emp.CompanyID,
		Date:             date,
		ProposedCheckIn:  checkIn,
		ProposedCheckOut: checkOut,
		Reason:           req.Reason,
		Status:           regularization.StatusPending,
	}
	if err := r.Repository.Create(ctx, &request); err != nil {
		return regularization.Response{}, err
	}

	return regularization.NewResponse(request), nil
}

// Resolve implements regularization.Service. Approval applies the
// proposed stamps to the day's record and re-derives every computed
// field; rejection leaves the record untouched. Both paths commit the
// state transition and the record effect as one transaction.
func (r *RegularizationServiceImpl) Resolve(ctx context.Context, req regularization.ResolveRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return regularization.Response{}, err
	}
	if !claims.IsAdmin {
		return regularization.Response{}, regularization.ErrUnauthorized
	}

	now := time.Now().UTC()
	decision := regularization.Decision(req.Decision)

	var request regularization.Request
	err = postgresql.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err = r.Repository.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.CompanyID != claims.CompanyID {
			return regularization.ErrRequestNotFound
		}
		if err := request.Resolve(decision, claims.UserID, now); err != nil {
			return err
		}
		if err := r.Repository.Update(txCtx, &request); err != nil {
			return err
		}

		if decision != regularization.DecisionApprove {
			return nil
		}
		if err := r.applyProposal(txCtx, request); err != nil {
			return err
		}

		// Recompute joins this transaction, so the state transition,
		// the stamps and the re-derived status commit as one unit.
		_, err = r.engine.Recompute(txCtx, request.EmployeeID, request.Date)
		return err
	})
	if err != nil {
		return regularization.Response{}, err
	}

	eventType := notification.EventRegularizationRejected
	if decision == regularization.DecisionApprove {
		eventType = notification.EventRegularizationApproved
	}

	r.dispatcher.Publish(ctx, notification.Event{
		EmployeeID:  request.EmployeeID,
		CompanyID:   request.CompanyID,
		Type:        eventType,
		ReferenceID: request.ID,
		Timestamp:   now,
	})

	return regularization.NewResponse(request), nil
}

// applyProposal writes the proposed stamps onto the day's attendance
// record, creating the row when the day had none (e.g. a missed
// check-in on a day already swept ABSENT).
func (r *RegularizationServiceImpl) applyProposal(txCtx context.Context, request regularization.Request) error {
	existing, err := r.records.GetByEmployeeAndDateForUpdate(txCtx, request.EmployeeID, request.Date, request.CompanyID)
	if err != nil {
		return err
	}

	if existing == nil {
		rec := attendance.Record{
			EmployeeID:   request.EmployeeID,
			CompanyID:    request.CompanyID,
			Date:         request.Date,
			CheckInTime:  request.ProposedCheckIn,
			CheckOutTime: request.ProposedCheckOut,
			Status:       attendance.StatusPending,
		}
		_, err := r.records.Create(txCtx, rec)
		return err
	}

	rec := *existing
	if request.ProposedCheckIn != nil {
		rec.CheckInTime = request.ProposedCheckIn
	}
	if request.ProposedCheckOut != nil {
		rec.CheckOutTime = request.ProposedCheckOut
	}
	return r.records.Update(txCtx, rec)
}

// GetByID implements regularization.Service.
func (r *RegularizationServiceImpl) GetByID(ctx context.Context, id string) (regularization.Response, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return regularization.Response{}, err
	}

	request, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return regularization.Response{}, err
	}
	if request.CompanyID != claims.CompanyID {
		return regularization.Response{}, regularization.ErrRequestNotFound
	}
	if request.EmployeeID != claims.EmployeeID && !claims.IsAdmin {
		return regularization.Response{}, regularization.ErrUnauthorized
	}

	return regularization.NewResponse(request), nil
}

// List implements regularization.Service.
func (r *RegularizationServiceImpl) List(ctx context.Context, filter regularization.Filter) (regularization.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return regularization.ListResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return regularization.ListResponse{}, err
	}
	if !claims.IsAdmin {
		filter.EmployeeID = &claims.EmployeeID
	}

	requests, total, err := r.Repository.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return regularization.ListResponse{}, err
	}

	responses := make([]regularization.Response, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, regularization.NewResponse(request))
	}

	return regularization.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

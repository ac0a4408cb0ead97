package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/config"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/leave"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/shift"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db         *database.DB
	thresholds Thresholds
	attendance.RecordRepository
	employee.EmployeeRepository
	shift.ShiftRepository
	shift.HolidayRepository
	leaveRequests leave.RequestRepository
}

func NewAttendanceService(
	db *database.DB,
	cfg config.AttendanceConfig,
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	holidayRepo shift.HolidayRepository,
	leaveRequestRepo leave.RequestRepository,
) attendance.Service {
	return &AttendanceServiceImpl{
		db: db,
		thresholds: Thresholds{
			FullDayMinutes: cfg.FullDayMinutes,
			HalfDayMinutes: cfg.HalfDayMinutes,
			CheckoutCutoff: cfg.CheckoutCutoff,
		},
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
		ShiftRepository:    shiftRepo,
		HolidayRepository:  holidayRepo,
		leaveRequests:      leaveRequestRepo,
	}
}

// dayFacts is the per-(employee, date) context the derivation needs.
type dayFacts struct {
	employee  employee.Employee
	shift     shift.Shift
	isHoliday bool
	onLeave   bool
}

func (a *AttendanceServiceImpl) loadDayFacts(ctx context.Context, employeeID, companyID string, date time.Time) (dayFacts, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return dayFacts{}, err
	}
	if emp.CompanyID != companyID {
		return dayFacts{}, attendance.ErrUnauthorized
	}
	if !emp.IsActive {
		return dayFacts{}, employee.ErrEmployeeDeactivated
	}

	sh, err := a.ShiftRepository.GetByID(ctx, emp.ShiftID, companyID)
	if err != nil {
		return dayFacts{}, err
	}

	isHoliday, err := a.HolidayRepository.Exists(ctx, companyID, date)
	if err != nil {
		return dayFacts{}, err
	}

	onLeave, err := a.leaveRequests.HasApprovedOn(ctx, employeeID, date)
	if err != nil {
		return dayFacts{}, err
	}

	return dayFacts{employee: emp, shift: sh, isHoliday: isHoliday, onLeave: onLeave}, nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (a *AttendanceServiceImpl) resolveActor(ctx context.Context, requested string) (jwt.Claims, string, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return jwt.Claims{}, "", err
	}

	employeeID := requested
	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID == "" {
		return jwt.Claims{}, "", attendance.ErrUnauthorized
	}
	if employeeID != claims.EmployeeID && !claims.IsAdmin {
		return jwt.Claims{}, "", attendance.ErrUnauthorized
	}

	return claims, employeeID, nil
}

// ClockIn implements attendance.Service.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	claims, employeeID, err := a.resolveActor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := time.Now().UTC()
	stamp := now
	if req.Timestamp != nil {
		stamp, _ = time.Parse(time.RFC3339, *req.Timestamp)
		stamp = stamp.UTC()
	}
	date := dateOf(stamp)

	facts, err := a.loadDayFacts(ctx, employeeID, claims.CompanyID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !IsWorkingDay(facts.shift, date, facts.isHoliday) {
		return attendance.RecordResponse{}, attendance.ErrNonWorkingDay
	}

	var result attendance.Record
	err = withRecordLock(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.RecordRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, date, claims.CompanyID)
		if err != nil {
			return err
		}
		if existing != nil && existing.CheckInTime != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		in := DayInput{
			Shift:           facts.shift,
			Date:            date,
			IsHoliday:       facts.isHoliday,
			OnApprovedLeave: facts.onLeave,
			CheckIn:         &stamp,
			Now:             now,
		}
		late, early, total := ComputeMetrics(in)

		rec := attendance.Record{
			EmployeeID:          employeeID,
			CompanyID:           claims.CompanyID,
			Date:                date,
			CheckInTime:         &stamp,
			CheckInLatitude:     req.Latitude,
			CheckInLongitude:    req.Longitude,
			LateMinutes:         late,
			EarlyLeavingMinutes: early,
			TotalWorkMinutes:    total,
			Status:              DeriveStatus(in, a.thresholds),
		}

		if existing == nil {
			created, err := a.RecordRepository.Create(txCtx, rec)
			if err != nil {
				return err
			}
			result = created
			return nil
		}

		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if err := a.RecordRepository.Update(txCtx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.NewRecordResponse(result), nil
}

// ClockOut implements attendance.Service.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	claims, employeeID, err := a.resolveActor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := time.Now().UTC()
	stamp := now
	if req.Timestamp != nil {
		stamp, _ = time.Parse(time.RFC3339, *req.Timestamp)
		stamp = stamp.UTC()
	}
	date := dateOf(stamp)

	facts, err := a.loadDayFacts(ctx, employeeID, claims.CompanyID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var result attendance.Record
	err = withRecordLock(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.RecordRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, date, claims.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil || existing.CheckInTime == nil {
			return attendance.ErrNotCheckedIn
		}
		if existing.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		rec := *existing
		rec.CheckOutTime = &stamp
		rec.CheckOutLatitude = req.Latitude
		rec.CheckOutLongitude = req.Longitude

		in := DayInput{
			Shift:           facts.shift,
			Date:            date,
			IsHoliday:       facts.isHoliday,
			OnApprovedLeave: facts.onLeave,
			CheckIn:         rec.CheckInTime,
			CheckOut:        rec.CheckOutTime,
			Now:             now,
		}
		rec.LateMinutes, rec.EarlyLeavingMinutes, rec.TotalWorkMinutes = ComputeMetrics(in)
		rec.Status = DeriveStatus(in, a.thresholds)

		if err := a.RecordRepository.Update(txCtx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.NewRecordResponse(result), nil
}

// GetDailyStatus implements attendance.Service.
func (a *AttendanceServiceImpl) GetDailyStatus(ctx context.Context, employeeID string, date time.Time) (attendance.RecordResponse, error) {
	claims, employeeID, err := a.resolveActor(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date = dateOf(date)
	facts, err := a.loadDayFacts(ctx, employeeID, claims.CompanyID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := a.RecordRepository.GetByEmployeeAndDate(ctx, employeeID, date, claims.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// A day with no expectation and no record has no status to report;
	// deriving one would turn a free Saturday into ABSENT.
	if rec == nil && !IsWorkingDay(facts.shift, date, facts.isHoliday) && !facts.onLeave {
		return attendance.RecordResponse{}, attendance.ErrNonWorkingDay
	}

	derived := a.derive(rec, facts, employeeID, claims.CompanyID, date, time.Now().UTC())
	return attendance.NewRecordResponse(derived), nil
}

// derive rebuilds every computed field of the day's record from its
// stamps. rec may be nil; the result is then a synthetic, unpersisted
// record.
func (a *AttendanceServiceImpl) derive(rec *attendance.Record, facts dayFacts, employeeID, companyID string, date, now time.Time) attendance.Record {
	out := attendance.Record{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       date,
	}
	if rec != nil {
		out = *rec
	}

	in := DayInput{
		Shift:           facts.shift,
		Date:            date,
		IsHoliday:       facts.isHoliday,
		OnApprovedLeave: facts.onLeave,
		CheckIn:         out.CheckInTime,
		CheckOut:        out.CheckOutTime,
		Now:             now,
	}
	out.LateMinutes, out.EarlyLeavingMinutes, out.TotalWorkMinutes = ComputeMetrics(in)
	out.Status = DeriveStatus(in, a.thresholds)
	return out
}

// MaterializeDailyStatus implements attendance.Service. Unlike
// GetDailyStatus it persists the derived record, creating a synthetic
// row (typically ABSENT) when the day has none. The day-close sweep
// feeds it one (employee, date) command at a time.
func (a *AttendanceServiceImpl) MaterializeDailyStatus(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date = dateOf(date)
	facts, err := a.loadDayFacts(ctx, employeeID, emp.CompanyID, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if !IsWorkingDay(facts.shift, date, facts.isHoliday) && !facts.onLeave {
		return attendance.Record{}, attendance.ErrNonWorkingDay
	}

	now := time.Now().UTC()
	var result attendance.Record
	err = withRecordLock(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.RecordRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, date, emp.CompanyID)
		if err != nil {
			return err
		}

		rec := a.derive(existing, facts, employeeID, emp.CompanyID, date, now)

		if existing == nil {
			created, err := a.RecordRepository.Create(txCtx, rec)
			if err != nil {
				return err
			}
			result = created
			return nil
		}

		if err := a.RecordRepository.Update(txCtx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return result, nil
}

// Recompute implements attendance.Service. It re-derives an existing
// record after its stamps changed, e.g. when a regularization is
// approved.
func (a *AttendanceServiceImpl) Recompute(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date = dateOf(date)
	facts, err := a.loadDayFacts(ctx, employeeID, emp.CompanyID, date)
	if err != nil {
		return attendance.Record{}, err
	}

	now := time.Now().UTC()
	var result attendance.Record
	err = withRecordLock(ctx, a.db, func(txCtx context.Context) error {
		existing, err := a.RecordRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, date, emp.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil {
			return attendance.ErrRecordNotFound
		}

		rec := a.derive(existing, facts, employeeID, emp.CompanyID, date, now)
		if err := a.RecordRepository.Update(txCtx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return result, nil
}

// List implements attendance.Service.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if !claims.IsAdmin {
		return attendance.ListRecordsResponse{}, attendance.ErrUnauthorized
	}

	records, total, err := a.RecordRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return newListResponse(records, total, filter), nil
}

// GetMyRecords implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.ListRecordsResponse{}, attendance.ErrUnauthorized
	}

	filter.EmployeeID = &claims.EmployeeID
	records, total, err := a.RecordRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return newListResponse(records, total, filter), nil
}

func newListResponse(records []attendance.Record, total int64, filter attendance.RecordFilter) attendance.ListRecordsResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewRecordResponse(rec))
	}
	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}
}

// withRecordLock runs fn inside a transaction whose context carries the
// tx, so repository calls join it and row locks hold until commit.
func withRecordLock(ctx context.Context, db *database.DB, fn func(txCtx context.Context) error) error {
	return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}

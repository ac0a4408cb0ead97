package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/config"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// sweepLookbackDays bounds how far back the sweep looks for days that
// were never materialized, e.g. after downtime.
const sweepLookbackDays = 7

// SweepJobs runs the day-close sweep: for every active employee it
// feeds one (employee, date) materialization command per unconcluded
// past working day into the attendance engine, fanned out with bounded
// concurrency. The engine owns all status logic; the sweep only
// schedules.
type SweepJobs struct {
	employeeRepo employee.EmployeeRepository
	recordRepo   attendance.RecordRepository
	engine       attendance.Service
	cfg          config.SweepConfig
}

func NewSweepJobs(
	employeeRepo employee.EmployeeRepository,
	recordRepo attendance.RecordRepository,
	engine attendance.Service,
	cfg config.SweepConfig,
) *SweepJobs {
	return &SweepJobs{
		employeeRepo: employeeRepo,
		recordRepo:   recordRepo,
		engine:       engine,
		cfg:          cfg,
	}
}

func (j *SweepJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("day_close_sweep", j.cfg.Interval, j.Run)
}

// Run sweeps every tenant once.
func (j *SweepJobs) Run(ctx context.Context) error {
	metrics.SweepRuns.Inc()

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for sweep: %w", err)
	}

	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	from := yesterday.AddDate(0, 0, -(sweepLookbackDays - 1))

	for _, companyID := range companyIDs {
		if err := j.sweepCompany(ctx, companyID, from, yesterday); err != nil {
			slog.Error("Day-close sweep failed for company", "company_id", companyID, "error", err)
			metrics.SweepErrors.Inc()
		}
	}

	return nil
}

func (j *SweepJobs) sweepCompany(ctx context.Context, companyID string, from, to time.Time) error {
	employees, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Concurrency)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			if err := j.sweepEmployee(gctx, emp, companyID, from, to); err != nil {
				// One employee failing must not starve the rest.
				slog.Error("Day-close sweep failed for employee",
					"employee_id", emp.ID,
					"company_id", companyID,
					"error", err,
				)
				metrics.SweepErrors.Inc()
			}
			return nil
		})
	}

	return g.Wait()
}

func (j *SweepJobs) sweepEmployee(ctx context.Context, emp employee.Employee, companyID string, from, to time.Time) error {
	missing, err := j.recordRepo.MissingDates(ctx, emp.ID, companyID, from, to)
	if err != nil {
		return err
	}

	for _, date := range missing {
		if date.Before(emp.HireDate) {
			continue
		}
		_, err := j.engine.MaterializeDailyStatus(ctx, emp.ID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrNonWorkingDay) {
				continue
			}
			return err
		}
		metrics.SweepMaterialized.Inc()
	}

	// Past days that still sit in PENDING (e.g. a check-in with no
	// check-out) get re-derived now that the day has concluded.
	status := string(attendance.StatusPending)
	endDate := to.Format("2006-01-02")
	startDate := from.Format("2006-01-02")
	pending, _, err := j.recordRepo.List(ctx, attendance.RecordFilter{
		EmployeeID: &emp.ID,
		StartDate:  &startDate,
		EndDate:    &endDate,
		Status:     &status,
		Page:       1,
		Limit:      100,
	}, companyID)
	if err != nil {
		return err
	}

	for _, rec := range pending {
		if _, err := j.engine.Recompute(ctx, emp.ID, rec.Date); err != nil {
			return err
		}
		metrics.SweepMaterialized.Inc()
	}

	return nil
}

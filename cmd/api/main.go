package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/clockwise-backend-go/internal/handler/http"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/sse"
	"github.com/clockwise-hr/clockwise-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clockwise-hr/clockwise-backend-go/internal/service/attendance"
	balanceService "github.com/clockwise-hr/clockwise-backend-go/internal/service/balance"
	leaveService "github.com/clockwise-hr/clockwise-backend-go/internal/service/leave"
	notificationService "github.com/clockwise-hr/clockwise-backend-go/internal/service/notification"
	regularizationService "github.com/clockwise-hr/clockwise-backend-go/internal/service/regularization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifService.Stop()

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		cfg.Attendance,
		attendanceRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		leaveRequestRepo,
	)
	balanceSvc := balanceService.NewBalanceService(db, balanceRepo, employeeRepo, leaveTypeRepo)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveRequestRepo,
		leaveTypeRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		balanceSvc,
		attendanceRepo,
		notifService,
	)
	regularizationSvc := regularizationService.NewRegularizationService(
		db,
		regularizationRepo,
		employeeRepo,
		attendanceRepo,
		attendanceSvc,
		notifService,
	)

	scheduler := cron.NewScheduler()
	sweepJobs := cron.NewSweepJobs(employeeRepo, attendanceRepo, attendanceSvc, cfg.Sweep)
	sweepJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	regularizationHandler := appHTTP.NewRegularizationHandler(regularizationSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	balanceHandler := appHTTP.NewBalanceHandler(balanceSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, hub)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		regularizationHandler,
		leaveHandler,
		balanceHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}

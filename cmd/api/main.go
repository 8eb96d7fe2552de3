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

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(slog.String("app", "hris-attendance"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessionRepo := postgresql.NewSessionRepository(db, cfg.Attendance.Location)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	policy := attendanceService.DefaultPolicy()
	policy.LateThreshold = cfg.Attendance.LateThreshold
	if cfg.Attendance.OptionalHolidays == config.OptionalHolidaysIgnore {
		policy.OptionalHolidays = attendanceService.IgnoreOptionalHolidays
	}
	engine := attendanceService.NewEngine(policy)

	timesheetService := attendanceService.NewTimesheetService(sessionRepo, leaveRequestRepo, holidayRepo, employeeRepo, engine)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetService)
	router := appHTTP.NewRouter(cfg.App, JWTService, timesheetHandler)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(timesheetService, employeeRepo, cfg.Attendance.Location)
	attendanceJobs.RegisterJobs(scheduler, cfg.Attendance.DigestInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr,
		"late_threshold", cfg.Attendance.LateThreshold.String(),
		"optional_holidays", cfg.Attendance.OptionalHolidays,
		"timezone", cfg.Attendance.Location.String(),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}

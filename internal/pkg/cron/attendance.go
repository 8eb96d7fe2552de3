package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

// digestConcurrency bounds parallel employee resolutions within one company.
const digestConcurrency = 4

// RangeResolver resolves day statuses for one employee outside of a request.
type RangeResolver interface {
	ResolveRange(ctx context.Context, employeeID, companyID string, start, end time.Time) (attendanceService.Result, error)
}

// CompanyDigest counts yesterday's statuses across a company's active employees.
type CompanyDigest struct {
	CompanyID    string
	Employees    int
	Failed       int
	StatusCounts map[attendance.DayStatus]int
}

type AttendanceJobs struct {
	resolver     RangeResolver
	employeeRepo employee.EmployeeRepository
	location     *time.Location
	now          func() time.Time

	mu         sync.Mutex
	lastDigest string
}

func NewAttendanceJobs(resolver RangeResolver, employeeRepo employee.EmployeeRepository, location *time.Location) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		resolver:     resolver,
		employeeRepo: employeeRepo,
		location:     location,
		now:          time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("daily_attendance_digest", interval, j.DailyDigest)
}

// DailyDigest logs per-company status counts for the previous local day.
// It runs at most once per day no matter how often it is scheduled.
func (j *AttendanceJobs) DailyDigest(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	local := j.now().In(j.location)
	yesterday := worktime.DateOf(local).AddDate(0, 0, -1)
	key := worktime.DateKey(yesterday)
	if key == j.lastDigest {
		return nil
	}

	slog.Info("Cron: Starting daily attendance digest", "date", key)

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	for _, companyID := range companyIDs {
		digest, err := j.BuildCompanyDigest(ctx, companyID, yesterday)
		if err != nil {
			return err
		}

		attrs := []any{
			"company_id", digest.CompanyID,
			"date", key,
			"employees", digest.Employees,
			"failed", digest.Failed,
		}
		for _, status := range attendance.AllDayStatuses {
			attrs = append(attrs, string(status), digest.StatusCounts[status])
		}
		slog.Info("Cron: Attendance digest", attrs...)
	}

	j.lastDigest = key
	slog.Info("Cron: Daily attendance digest completed", "date", key, "companies", len(companyIDs))
	return nil
}

// BuildCompanyDigest resolves day for every active employee of the company.
// Employees not yet hired or already resigned on day are left out.
// A failed resolution is logged and counted, it does not abort the digest.
func (j *AttendanceJobs) BuildCompanyDigest(ctx context.Context, companyID string, day time.Time) (CompanyDigest, error) {
	employees, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return CompanyDigest{}, fmt.Errorf("failed to list employees of company %s: %w", companyID, err)
	}

	digest := CompanyDigest{
		CompanyID:    companyID,
		StatusCounts: make(map[attendance.DayStatus]int),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(digestConcurrency)

	for _, emp := range employees {
		emp := emp
		if !employedOn(emp, day) {
			continue
		}
		digest.Employees++

		g.Go(func() error {
			result, err := j.resolver.ResolveRange(gctx, emp.ID, companyID, day, day)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("Cron: Failed to resolve attendance", "employee_id", emp.ID, "company_id", companyID, "error", err)
				digest.Failed++
				return nil
			}
			for _, record := range result.Days {
				digest.StatusCounts[record.Status]++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return CompanyDigest{}, err
	}
	return digest, ctx.Err()
}

func employedOn(emp employee.Employee, day time.Time) bool {
	if !emp.HireDate.IsZero() && worktime.DateOf(emp.HireDate).After(day) {
		return false
	}
	if emp.ResignationDate != nil && worktime.DateOf(*emp.ResignationDate).Before(day) {
		return false
	}
	return true
}

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

// MaxRangeDays bounds a single timesheet query.
const MaxRangeDays = 366

type TimesheetServiceImpl struct {
	sessionRepo  attendance.SessionRepository
	leaveRepo    leave.LeaveRequestRepository
	holidayRepo  holiday.HolidayRepository
	employeeRepo employee.EmployeeRepository
	engine       *Engine
	now          func() time.Time
}

func NewTimesheetService(
	sessionRepo attendance.SessionRepository,
	leaveRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	engine *Engine,
) *TimesheetServiceImpl {
	return &TimesheetServiceImpl{
		sessionRepo:  sessionRepo,
		leaveRepo:    leaveRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		engine:       engine,
		now:          time.Now,
	}
}

var _ attendance.TimesheetService = (*TimesheetServiceImpl)(nil)

// getCompanyIDFromContext extracts company_id from JWT claims
func getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyIDRequired
	}

	return companyID, nil
}

// getEmployeeIDFromContext extracts employee_id from JWT claims; owners without an employee profile have none
func getEmployeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", attendance.ErrEmployeeProfileRequired
	}

	return employeeID, nil
}

// GetTimesheet implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, req attendance.TimesheetRequest) (attendance.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return attendance.TimesheetResponse{}, err
	}

	return s.buildTimesheet(ctx, req.EmployeeID, companyID, start, end)
}

// GetMyTimesheet implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) GetMyTimesheet(ctx context.Context, req attendance.MyTimesheetRequest) (attendance.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	employeeID, err := getEmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	return s.buildTimesheet(ctx, employeeID, companyID, start, end)
}

// GetSummary implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) GetSummary(ctx context.Context, req attendance.TimesheetRequest) (attendance.RangeSummaryResponse, error) {
	timesheet, err := s.GetTimesheet(ctx, req)
	if err != nil {
		return attendance.RangeSummaryResponse{}, err
	}
	return timesheet.Summary, nil
}

// ResolveRange runs the engine for one employee without touching JWT claims.
// Background jobs use it; request handlers go through GetTimesheet.
func (s *TimesheetServiceImpl) ResolveRange(ctx context.Context, employeeID, companyID string, start, end time.Time) (Result, error) {
	input := Input{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessions, err := s.sessionRepo.ListByEmployeeAndRange(gctx, employeeID, companyID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list attendance sessions: %w", err)
		}
		input.Sessions = sessions
		return nil
	})
	g.Go(func() error {
		leaves, err := s.leaveRepo.ListOverlapping(gctx, employeeID, companyID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		input.Leaves = leaves
		return nil
	})
	g.Go(func() error {
		holidays, err := s.holidayRepo.ListByRange(gctx, companyID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		input.Holidays = holidays
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result, err := s.engine.Compute(input)
	if err != nil {
		return Result{}, err
	}

	for _, skipped := range result.Skipped {
		slog.Warn("Skipping malformed attendance session",
			"session_id", skipped.Session.ID,
			"employee_id", employeeID,
			"date", worktime.DateKey(skipped.Session.Date),
			"error", skipped.Err,
		)
	}

	return result, nil
}

func (s *TimesheetServiceImpl) buildTimesheet(ctx context.Context, employeeID, companyID string, start, end time.Time) (attendance.TimesheetResponse, error) {
	result, err := s.ResolveRange(ctx, employeeID, companyID, start, end)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	days := make([]attendance.DayRecordResponse, 0, len(result.Days))
	for _, rec := range result.Days {
		days = append(days, toDayRecordResponse(rec))
	}

	return attendance.TimesheetResponse{
		EmployeeID:      employeeID,
		StartDate:       worktime.DateKey(start),
		EndDate:         worktime.DateKey(end),
		GeneratedAt:     s.now().Format(time.RFC3339),
		LateThreshold:   s.engine.Policy().LateThreshold.String(),
		SkippedSessions: len(result.Skipped),
		Days:            days,
		Summary:         toRangeSummaryResponse(employeeID, start, end, result.Summary),
	}, nil
}

// parseRange expects already validated dates and enforces ordering and length.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := worktime.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := worktime.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidRange
	}
	if worktime.DaysInRange(start, end) > MaxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: at most %d days", attendance.ErrRangeTooLong, MaxRangeDays)
	}
	return start, end, nil
}

func toDayRecordResponse(rec attendance.DayRecord) attendance.DayRecordResponse {
	resp := attendance.DayRecordResponse{
		Date:        worktime.DateKey(rec.Date),
		DayOfWeek:   rec.Date.Weekday().String(),
		Status:      string(rec.Status),
		TotalWorked: worktime.FormatMinutes(0),
	}

	if agg := rec.Aggregate; agg != nil {
		firstIn := agg.FirstClockIn.String()
		resp.FirstClockIn = &firstIn
		if agg.LastClockOut != nil {
			lastOut := agg.LastClockOut.String()
			resp.LastClockOut = &lastOut
		}
		resp.HasOpenSession = agg.HasOpenSession
		resp.TotalWorkedMinutes = agg.TotalWorkedMinutes
		resp.TotalWorked = worktime.FormatMinutes(agg.TotalWorkedMinutes)
		resp.SessionCount = agg.SessionCount

		resp.Sessions = make([]attendance.SessionResponse, 0, len(agg.Sessions))
		for _, ds := range agg.Sessions {
			sr := attendance.SessionResponse{
				ID:              ds.ID,
				ClockIn:         ds.ClockInAt.String(),
				WorkedMinutes:   ds.WorkedMinutes,
				WorkingDuration: worktime.FormatMinutes(ds.WorkedMinutes),
				Notes:           ds.Notes,
			}
			if ds.ClockOutAt != nil {
				out := ds.ClockOutAt.String()
				sr.ClockOut = &out
			}
			resp.Sessions = append(resp.Sessions, sr)
		}
	}

	if rec.Leave != nil {
		leaveType := rec.Leave.LeaveType
		leaveStatus := string(rec.Leave.Status)
		resp.LeaveType = &leaveType
		resp.LeaveStatus = &leaveStatus
	}

	if rec.Holiday != nil {
		name := rec.Holiday.Name
		resp.HolidayName = &name
	}

	return resp
}

func toRangeSummaryResponse(employeeID string, start, end time.Time, summary attendance.RangeSummary) attendance.RangeSummaryResponse {
	counts := make(map[string]int, len(summary.StatusCounts))
	for status, n := range summary.StatusCounts {
		counts[string(status)] = n
	}

	return attendance.RangeSummaryResponse{
		EmployeeID:           employeeID,
		StartDate:            worktime.DateKey(start),
		EndDate:              worktime.DateKey(end),
		CalendarDays:         summary.CalendarDays,
		TotalDays:            summary.TotalDays,
		TotalWorkedMinutes:   summary.TotalWorkedMinutes,
		TotalWorked:          worktime.FormatMinutes(summary.TotalWorkedMinutes),
		AverageMinutesPerDay: summary.AverageMinutesPerDay,
		AverageWorked:        worktime.FormatMinutes(summary.AverageMinutesPerDay),
		LateCount:            summary.LateCount,
		AbsentCount:          summary.AbsentCount,
		CalendarAbsentCount:  summary.CalendarAbsentCount,
		StatusCounts:         counts,
	}
}

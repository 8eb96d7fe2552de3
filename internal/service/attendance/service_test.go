package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "0190a1b2-7c3d-7e4f-8a5b-000000000001"

type fakeSessionRepo struct {
	sessions []attendance.Session
	err      error
}

func (f *fakeSessionRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]attendance.Session, error) {
	return f.sessions, f.err
}

type fakeLeaveRepo struct {
	leaves []leave.LeaveRequest
	err    error
}

func (f *fakeLeaveRepo) ListOverlapping(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	return f.leaves, f.err
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
	err      error
}

func (f *fakeHolidayRepo) ListByRange(ctx context.Context, companyID string, start, end time.Time) ([]holiday.Holiday, error) {
	return f.holidays, f.err
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range f.employees {
		if !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			out = append(out, e.CompanyID)
		}
	}
	return out, nil
}

type serviceFixture struct {
	sessions  *fakeSessionRepo
	leaves    *fakeLeaveRepo
	holidays  *fakeHolidayRepo
	employees *fakeEmployeeRepo
	svc       *TimesheetServiceImpl
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		sessions: &fakeSessionRepo{},
		leaves:   &fakeLeaveRepo{},
		holidays: &fakeHolidayRepo{},
		employees: &fakeEmployeeRepo{employees: []employee.Employee{{
			ID:               testEmployeeID,
			CompanyID:        testCompanyID,
			FullName:         "Budi Santoso",
			EmploymentStatus: employee.EmploymentStatusActive,
		}}},
	}
	f.svc = NewTimesheetService(f.sessions, f.leaves, f.holidays, f.employees, NewEngine(DefaultPolicy()))
	f.svc.now = func() time.Time { return time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC) }
	return f
}

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func managerContext(t *testing.T) context.Context {
	return contextWithClaims(t, map[string]interface{}{
		"user_id":    "user-1",
		"company_id": testCompanyID,
		"role":       "manager",
		"type":       "access",
	})
}

func TestTimesheetService_GetTimesheet(t *testing.T) {
	f := newServiceFixture()
	f.sessions.sessions = []attendance.Session{
		session(t, "2024-01-15", "09:30", strPtr("13:00")),
		session(t, "2024-01-15", "14:00", strPtr("18:00")),
		session(t, "2024-01-16", "bogus", strPtr("18:00")),
	}
	f.leaves.leaves = []leave.LeaveRequest{leaveRequest(t, "2024-01-17", "2024-01-17", leave.LeaveRequestStatusPending)}
	f.holidays.holidays = []holiday.Holiday{{Date: mustDate(t, "2024-01-18"), Name: "Isra Miraj"}}

	resp, err := f.svc.GetTimesheet(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-01-15",
		EndDate:    "2024-01-21",
	})

	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Equal(t, "09:15", resp.LateThreshold)
	assert.Equal(t, "2024-02-01T08:00:00Z", resp.GeneratedAt)
	assert.Equal(t, 1, resp.SkippedSessions)
	require.Len(t, resp.Days, 7)

	monday := resp.Days[0]
	assert.Equal(t, "Monday", monday.DayOfWeek)
	assert.Equal(t, "late", monday.Status)
	require.NotNil(t, monday.FirstClockIn)
	assert.Equal(t, "09:30", *monday.FirstClockIn)
	require.NotNil(t, monday.LastClockOut)
	assert.Equal(t, "18:00", *monday.LastClockOut)
	assert.Equal(t, "7h 30m", monday.TotalWorked)
	assert.Len(t, monday.Sessions, 2)

	assert.Equal(t, "absent", resp.Days[1].Status)
	assert.Equal(t, "leave", resp.Days[2].Status)
	require.NotNil(t, resp.Days[2].LeaveStatus)
	assert.Equal(t, "pending", *resp.Days[2].LeaveStatus)
	assert.Equal(t, "holiday", resp.Days[3].Status)
	require.NotNil(t, resp.Days[3].HolidayName)
	assert.Equal(t, "Isra Miraj", *resp.Days[3].HolidayName)
	assert.Equal(t, "weekly-off", resp.Days[5].Status)

	assert.Equal(t, 1, resp.Summary.TotalDays)
	assert.Equal(t, "7h 30m", resp.Summary.TotalWorked)
	assert.Equal(t, "7h 30m", resp.Summary.AverageWorked)
	assert.Equal(t, 2, resp.Summary.AbsentCount)
	assert.Equal(t, 6, resp.Summary.CalendarAbsentCount)
	assert.Equal(t, 1, resp.Summary.LateCount)
	assert.Equal(t, 2, resp.Summary.StatusCounts["weekly-off"])
}

func TestTimesheetService_GetTimesheet_ValidationErrors(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GetTimesheet(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: "not-a-uuid",
		StartDate:  "15-01-2024",
	})

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "end_date")
}

func TestTimesheetService_GetTimesheet_InvalidRange(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GetTimesheet(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-01-20",
		EndDate:    "2024-01-15",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)

	_, err = f.svc.GetTimesheet(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2023-01-01",
		EndDate:    "2024-12-31",
	})
	assert.ErrorIs(t, err, attendance.ErrRangeTooLong)
}

func TestTimesheetService_GetTimesheet_EmployeeFromOtherCompany(t *testing.T) {
	f := newServiceFixture()
	ctx := contextWithClaims(t, map[string]interface{}{
		"company_id": "0190a1b2-7c3d-7e4f-8a5b-000000000002",
		"role":       "manager",
		"type":       "access",
	})

	_, err := f.svc.GetTimesheet(ctx, attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-01-15",
		EndDate:    "2024-01-16",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTimesheetService_GetTimesheet_RepositoryError(t *testing.T) {
	f := newServiceFixture()
	boom := errors.New("connection refused")
	f.holidays.err = boom

	_, err := f.svc.GetTimesheet(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-01-15",
		EndDate:    "2024-01-16",
	})

	assert.ErrorIs(t, err, boom)
}

func TestTimesheetService_GetMyTimesheet(t *testing.T) {
	f := newServiceFixture()
	f.sessions.sessions = []attendance.Session{session(t, "2024-01-15", "08:00", strPtr("17:00"))}

	ctx := contextWithClaims(t, map[string]interface{}{
		"company_id":  testCompanyID,
		"employee_id": testEmployeeID,
		"role":        "employee",
		"type":        "access",
	})
	resp, err := f.svc.GetMyTimesheet(ctx, attendance.MyTimesheetRequest{StartDate: "2024-01-15", EndDate: "2024-01-15"})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "present", resp.Days[0].Status)
	assert.Equal(t, 540, resp.Summary.TotalWorkedMinutes)
}

func TestTimesheetService_GetMyTimesheet_RequiresEmployeeProfile(t *testing.T) {
	f := newServiceFixture()
	ctx := contextWithClaims(t, map[string]interface{}{
		"company_id": testCompanyID,
		"role":       "owner",
		"type":       "access",
	})

	_, err := f.svc.GetMyTimesheet(ctx, attendance.MyTimesheetRequest{StartDate: "2024-01-15", EndDate: "2024-01-15"})

	assert.ErrorIs(t, err, attendance.ErrEmployeeProfileRequired)
}

func TestTimesheetService_RequiresCompanyClaim(t *testing.T) {
	f := newServiceFixture()
	ctx := contextWithClaims(t, map[string]interface{}{
		"employee_id": testEmployeeID,
		"role":        "pending",
		"type":        "access",
	})

	_, err := f.svc.GetMyTimesheet(ctx, attendance.MyTimesheetRequest{StartDate: "2024-01-15", EndDate: "2024-01-15"})
	assert.ErrorIs(t, err, user.ErrCompanyIDRequired)

	_, err = f.svc.GetTimesheet(ctx, attendance.TimesheetRequest{EmployeeID: testEmployeeID, StartDate: "2024-01-15", EndDate: "2024-01-15"})
	assert.ErrorIs(t, err, user.ErrCompanyIDRequired)
}

func TestClaimsFromContext(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"company_id":  testCompanyID,
		"employee_id": testEmployeeID,
		"type":        "access",
	})

	companyID, err := getCompanyIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, testCompanyID, companyID)

	employeeID, err := getEmployeeIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, employeeID)

	_, err = getEmployeeIDFromContext(managerContext(t))
	assert.ErrorIs(t, err, attendance.ErrEmployeeProfileRequired)

	_, err = getCompanyIDFromContext(context.Background())
	assert.Error(t, err)
}

func TestTimesheetService_GetSummary(t *testing.T) {
	f := newServiceFixture()

	summary, err := f.svc.GetSummary(managerContext(t), attendance.TimesheetRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-01-15",
		EndDate:    "2024-01-21",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, summary.CalendarDays)
	assert.Equal(t, 0, summary.AverageMinutesPerDay)
	assert.Equal(t, "0h 0m", summary.AverageWorked)
	assert.Equal(t, 5, summary.AbsentCount)
}

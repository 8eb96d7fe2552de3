package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type TimesheetRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r *TimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if err := uuid.Validate(r.EmployeeID); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyTimesheetRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *MyTimesheetRequest) Validate() error {
	errs := validateDateRange(r.StartDate, r.EndDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateDateRange checks presence and format only; ordering is reported as ErrInvalidRange.
func validateDateRange(startDate, endDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, valid := validator.IsValidDate(startDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, valid := validator.IsValidDate(endDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	return errs
}

type SessionResponse struct {
	ID              string  `json:"id,omitempty"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        *string `json:"clock_out,omitempty"`
	WorkedMinutes   int     `json:"worked_minutes"`
	WorkingDuration string  `json:"working_duration"`
	Notes           *string `json:"notes,omitempty"`
}

type DayRecordResponse struct {
	Date               string            `json:"date"`
	DayOfWeek          string            `json:"day_of_week"`
	Status             string            `json:"status"`
	FirstClockIn       *string           `json:"first_clock_in,omitempty"`
	LastClockOut       *string           `json:"last_clock_out,omitempty"`
	HasOpenSession     bool              `json:"has_open_session"`
	TotalWorkedMinutes int               `json:"total_worked_minutes"`
	TotalWorked        string            `json:"total_worked"`
	SessionCount       int               `json:"session_count"`
	Sessions           []SessionResponse `json:"sessions,omitempty"`
	LeaveType          *string           `json:"leave_type,omitempty"`
	LeaveStatus        *string           `json:"leave_status,omitempty"`
	HolidayName        *string           `json:"holiday_name,omitempty"`
}

type RangeSummaryResponse struct {
	EmployeeID           string         `json:"employee_id"`
	StartDate            string         `json:"start_date"`
	EndDate              string         `json:"end_date"`
	CalendarDays         int            `json:"calendar_days"`
	TotalDays            int            `json:"total_days"`
	TotalWorkedMinutes   int            `json:"total_worked_minutes"`
	TotalWorked          string         `json:"total_worked"`
	AverageMinutesPerDay int            `json:"average_minutes_per_day"`
	AverageWorked        string         `json:"average_worked"`
	LateCount            int            `json:"late_count"`
	AbsentCount          int            `json:"absent_count"`
	CalendarAbsentCount  int            `json:"calendar_absent_count"`
	StatusCounts         map[string]int `json:"status_counts"`
}

type TimesheetResponse struct {
	EmployeeID      string               `json:"employee_id"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	GeneratedAt     string               `json:"generated_at"`
	LateThreshold   string               `json:"late_threshold"`
	SkippedSessions int                  `json:"skipped_sessions"`
	Days            []DayRecordResponse  `json:"days"`
	Summary         RangeSummaryResponse `json:"summary"`
}

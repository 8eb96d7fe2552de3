package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// Session is one raw clock-in/clock-out row as read from storage.
// Times of day are kept as text so malformed rows can be skipped during aggregation.
type Session struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ClockIn         string
	ClockOut        *string // nil while the session is still open
	WorkingDuration *string // "<hours>h <minutes>m", overrides clock subtraction
	Notes           *string
	Status          *string
}

// DaySession is a session that survived parsing.
type DaySession struct {
	Session
	ClockInAt     worktime.TimeOfDay
	ClockOutAt    *worktime.TimeOfDay
	WorkedMinutes int
}

// DayAggregate merges every session of one employee on one calendar day.
type DayAggregate struct {
	Date               time.Time
	Sessions           []DaySession
	FirstClockIn       worktime.TimeOfDay
	LastClockOut       *worktime.TimeOfDay // nil when no session is closed
	HasOpenSession     bool
	TotalWorkedMinutes int
	SessionCount       int
	HalfDay            bool
}

// SkippedSession records a session dropped from aggregation and why.
type SkippedSession struct {
	Session Session
	Err     error
}

type DayStatus string

const (
	DayStatusHoliday   DayStatus = "holiday"
	DayStatusLeave     DayStatus = "leave"
	DayStatusWeeklyOff DayStatus = "weekly-off"
	DayStatusPresent   DayStatus = "present"
	DayStatusLate      DayStatus = "late"
	DayStatusHalfDay   DayStatus = "half-day"
	DayStatusAbsent    DayStatus = "absent"
)

// AllDayStatuses lists statuses in resolution precedence order.
var AllDayStatuses = []DayStatus{
	DayStatusLeave,
	DayStatusHoliday,
	DayStatusWeeklyOff,
	DayStatusHalfDay,
	DayStatusLate,
	DayStatusPresent,
	DayStatusAbsent,
}

// Stored session statuses that tag a day as half-day.
const (
	SessionStatusHalfDay    = "half_day"
	SessionStatusHalfDayAlt = "half-day"
)

// DayRecord is the resolved view of one calendar day.
type DayRecord struct {
	Date      time.Time
	Status    DayStatus
	Aggregate *DayAggregate
	Leave     *leave.LeaveRequest
	Holiday   *holiday.Holiday
}

// RangeSummary holds statistics over a queried date range.
type RangeSummary struct {
	CalendarDays         int
	TotalDays            int
	TotalWorkedMinutes   int
	AverageMinutesPerDay int
	LateCount            int

	// AbsentCount counts days resolved as absent.
	AbsentCount int
	// CalendarAbsentCount is CalendarDays - TotalDays, counting non-working days as absences.
	CalendarAbsentCount int

	StatusCounts map[DayStatus]int
}

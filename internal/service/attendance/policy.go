package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// DefaultLateThreshold is the clock-in time after which an employee counts as late.
var DefaultLateThreshold = worktime.Clock(9, 15)

// OptionalHolidayFilter reports whether an employee observes an optional holiday.
type OptionalHolidayFilter func(employeeID string, h holiday.Holiday) bool

// Policy carries the organisation-specific knobs of status resolution.
type Policy struct {
	LateThreshold worktime.TimeOfDay

	// OptionalHolidays decides per-employee opt-in. Nil observes every optional holiday.
	OptionalHolidays OptionalHolidayFilter
}

func DefaultPolicy() Policy {
	return Policy{LateThreshold: DefaultLateThreshold}
}

// IgnoreOptionalHolidays treats optional holidays as ordinary days for everyone.
func IgnoreOptionalHolidays(string, holiday.Holiday) bool {
	return false
}

// IsLate reports whether a first clock-in is strictly after the threshold.
func (p Policy) IsLate(firstClockIn worktime.TimeOfDay) bool {
	return firstClockIn > p.LateThreshold
}

func (p Policy) observes(employeeID string, h holiday.Holiday) bool {
	if !h.IsOptional || p.OptionalHolidays == nil {
		return true
	}
	return p.OptionalHolidays(employeeID, h)
}

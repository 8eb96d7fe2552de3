package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// dayFacts is everything known about one employee-day.
type dayFacts struct {
	employeeID string
	date       time.Time
	aggregate  *attendance.DayAggregate
	leaves     []leave.LeaveRequest
	holidays   []holiday.Holiday
}

// rule labels a day when its condition holds.
type rule struct {
	name  string
	apply func(p Policy, f dayFacts, rec *attendance.DayRecord) bool
}

// statusRules run in order and the first match wins.
// absent always matches, so every day receives exactly one status.
var statusRules = []rule{
	{name: "leave", apply: leaveRule},
	{name: "holiday", apply: holidayRule},
	{name: "weekly-off", apply: weeklyOffRule},
	{name: "attendance", apply: attendanceRule},
	{name: "absent", apply: absentRule},
}

// Resolver assigns one DayStatus per employee-day.
type Resolver struct {
	policy Policy
	rules  []rule
}

func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy, rules: statusRules}
}

// Resolve labels a single calendar day. aggregate may be nil when the employee has no
// session that day; leaves and holidays may cover any dates, only those touching date apply.
func (r *Resolver) Resolve(employeeID string, date time.Time, aggregate *attendance.DayAggregate, leaves []leave.LeaveRequest, holidays []holiday.Holiday) attendance.DayRecord {
	f := dayFacts{
		employeeID: employeeID,
		date:       worktime.DateOf(date),
		aggregate:  aggregate,
		leaves:     leaves,
		holidays:   holidays,
	}

	rec := attendance.DayRecord{Date: f.date, Aggregate: aggregate}
	for _, rl := range r.rules {
		if rl.apply(r.policy, f, &rec) {
			return rec
		}
	}

	// unreachable while absentRule closes the list
	rec.Status = attendance.DayStatusAbsent
	return rec
}

func leaveRule(_ Policy, f dayFacts, rec *attendance.DayRecord) bool {
	var match *leave.LeaveRequest
	for i := range f.leaves {
		lr := f.leaves[i]
		if !lr.Blocks() {
			continue
		}
		if lr.EmployeeID != "" && f.employeeID != "" && lr.EmployeeID != f.employeeID {
			continue
		}
		lr.StartDate, lr.EndDate = worktime.DateOf(lr.StartDate), worktime.DateOf(lr.EndDate)
		if !lr.Covers(f.date) {
			continue
		}
		if match == nil || (match.Status != leave.LeaveRequestStatusApproved && lr.Status == leave.LeaveRequestStatusApproved) {
			found := f.leaves[i]
			match = &found
		}
	}
	if match == nil {
		return false
	}
	rec.Status = attendance.DayStatusLeave
	rec.Leave = match
	return true
}

func holidayRule(p Policy, f dayFacts, rec *attendance.DayRecord) bool {
	var match *holiday.Holiday
	for i := range f.holidays {
		h := f.holidays[i]
		if !worktime.DateOf(h.Date).Equal(f.date) || !p.observes(f.employeeID, h) {
			continue
		}
		if match == nil || (match.IsOptional && !h.IsOptional) {
			match = &h
		}
	}
	if match == nil {
		return false
	}
	rec.Status = attendance.DayStatusHoliday
	rec.Holiday = match
	return true
}

func weeklyOffRule(_ Policy, f dayFacts, rec *attendance.DayRecord) bool {
	if !worktime.IsWeekend(f.date) {
		return false
	}
	rec.Status = attendance.DayStatusWeeklyOff
	return true
}

func attendanceRule(p Policy, f dayFacts, rec *attendance.DayRecord) bool {
	if f.aggregate == nil {
		return false
	}
	switch {
	case f.aggregate.HalfDay:
		rec.Status = attendance.DayStatusHalfDay
	case p.IsLate(f.aggregate.FirstClockIn):
		rec.Status = attendance.DayStatusLate
	default:
		rec.Status = attendance.DayStatusPresent
	}
	return true
}

func absentRule(_ Policy, _ dayFacts, rec *attendance.DayRecord) bool {
	rec.Status = attendance.DayStatusAbsent
	return true
}

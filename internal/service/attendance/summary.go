package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// BuildSummary computes range statistics from the day aggregates and resolved records of [start, end].
// Aggregates outside the range are ignored.
func BuildSummary(policy Policy, start, end time.Time, aggregates []attendance.DayAggregate, records []attendance.DayRecord) attendance.RangeSummary {
	start, end = worktime.DateOf(start), worktime.DateOf(end)

	summary := attendance.RangeSummary{
		CalendarDays: worktime.DaysInRange(start, end),
		StatusCounts: make(map[attendance.DayStatus]int, len(attendance.AllDayStatuses)),
	}
	for _, status := range attendance.AllDayStatuses {
		summary.StatusCounts[status] = 0
	}

	for _, agg := range aggregates {
		if agg.Date.Before(start) || agg.Date.After(end) {
			continue
		}
		summary.TotalDays++
		summary.TotalWorkedMinutes += agg.TotalWorkedMinutes
		if policy.IsLate(agg.FirstClockIn) {
			summary.LateCount++
		}
	}

	if summary.TotalDays > 0 {
		summary.AverageMinutesPerDay = summary.TotalWorkedMinutes / summary.TotalDays
	}

	for _, rec := range records {
		summary.StatusCounts[rec.Status]++
	}
	summary.AbsentCount = summary.StatusCounts[attendance.DayStatusAbsent]

	summary.CalendarAbsentCount = summary.CalendarDays - summary.TotalDays
	if summary.CalendarAbsentCount < 0 {
		summary.CalendarAbsentCount = 0
	}

	return summary
}

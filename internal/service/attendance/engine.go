package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// Input is one consistent snapshot for a single employee and an inclusive date range.
type Input struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Sessions   []attendance.Session
	Leaves     []leave.LeaveRequest
	Holidays   []holiday.Holiday
}

type Result struct {
	// Days holds one record per calendar day of the range, in date order.
	Days []attendance.DayRecord
	// Aggregates holds the days inside the range that have at least one session.
	Aggregates []attendance.DayAggregate
	Skipped    []attendance.SkippedSession
	Summary    attendance.RangeSummary
}

// Engine runs aggregation, status resolution and summarising over one snapshot.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	policy   Policy
	resolver *Resolver
}

func NewEngine(policy Policy) *Engine {
	return &Engine{
		policy:   policy,
		resolver: NewResolver(policy),
	}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Compute(in Input) (Result, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Result{}, attendance.ErrInvalidRange
	}
	start, end := worktime.DateOf(in.StartDate), worktime.DateOf(in.EndDate)
	if end.Before(start) {
		return Result{}, attendance.ErrInvalidRange
	}

	all, skipped := Aggregate(in.Sessions)

	byDate := make(map[string]*attendance.DayAggregate, len(all))
	inRange := make([]attendance.DayAggregate, 0, len(all))
	for _, agg := range all {
		if agg.Date.Before(start) || agg.Date.After(end) {
			continue
		}
		inRange = append(inRange, agg)
	}
	for i := range inRange {
		byDate[worktime.DateKey(inRange[i].Date)] = &inRange[i]
	}

	days := worktime.Days(start, end)
	records := make([]attendance.DayRecord, 0, len(days))
	for _, day := range days {
		records = append(records, e.resolver.Resolve(in.EmployeeID, day, byDate[worktime.DateKey(day)], in.Leaves, in.Holidays))
	}

	return Result{
		Days:       records,
		Aggregates: inRange,
		Skipped:    skipped,
		Summary:    BuildSummary(e.policy, start, end, inRange, records),
	}, nil
}

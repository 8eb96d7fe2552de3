package attendance

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

// Aggregate groups sessions by calendar day and merges each day into a DayAggregate.
// Input order does not matter. Sessions that cannot be parsed are returned as skipped
// and never abort the remaining days.
func Aggregate(sessions []attendance.Session) ([]attendance.DayAggregate, []attendance.SkippedSession) {
	byDate := make(map[string][]attendance.DaySession)
	var skipped []attendance.SkippedSession

	for _, s := range sessions {
		ds, err := parseSession(s)
		if err != nil {
			skipped = append(skipped, attendance.SkippedSession{Session: s, Err: err})
			continue
		}
		key := worktime.DateKey(ds.Date)
		byDate[key] = append(byDate[key], ds)
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	aggregates := make([]attendance.DayAggregate, 0, len(keys))
	for _, key := range keys {
		aggregates = append(aggregates, mergeDay(byDate[key]))
	}

	return aggregates, skipped
}

func parseSession(s attendance.Session) (attendance.DaySession, error) {
	if s.Date.IsZero() {
		return attendance.DaySession{}, fmt.Errorf("%w: date is missing", attendance.ErrMalformedSession)
	}
	s.Date = worktime.DateOf(s.Date)

	clockIn, err := worktime.ParseTimeOfDay(s.ClockIn)
	if err != nil {
		return attendance.DaySession{}, fmt.Errorf("%w: clock_in: %v", attendance.ErrMalformedSession, err)
	}

	ds := attendance.DaySession{Session: s, ClockInAt: clockIn}

	if s.ClockOut != nil && strings.TrimSpace(*s.ClockOut) != "" {
		clockOut, err := worktime.ParseTimeOfDay(*s.ClockOut)
		if err != nil {
			return attendance.DaySession{}, fmt.Errorf("%w: clock_out: %v", attendance.ErrMalformedSession, err)
		}
		if clockOut < clockIn {
			return attendance.DaySession{}, fmt.Errorf("%w: clock_out %s is earlier than clock_in %s",
				attendance.ErrMalformedSession, clockOut, clockIn)
		}
		ds.ClockOutAt = &clockOut
	}

	var manual *int
	if s.WorkingDuration != nil && strings.TrimSpace(*s.WorkingDuration) != "" {
		minutes, err := worktime.ParseDuration(*s.WorkingDuration)
		if err != nil {
			return attendance.DaySession{}, fmt.Errorf("%w: working_duration: %v", attendance.ErrMalformedSession, err)
		}
		manual = &minutes
	}

	// An open session contributes no minutes until it is closed.
	if ds.ClockOutAt != nil {
		if manual != nil {
			ds.WorkedMinutes = *manual
		} else {
			ds.WorkedMinutes = worktime.MinutesBetween(clockIn, *ds.ClockOutAt)
		}
	}

	return ds, nil
}

func mergeDay(sessions []attendance.DaySession) attendance.DayAggregate {
	slices.SortFunc(sessions, compareSessions)

	agg := attendance.DayAggregate{
		Date:         sessions[0].Date,
		Sessions:     sessions,
		FirstClockIn: sessions[0].ClockInAt,
		SessionCount: len(sessions),
	}

	for _, s := range sessions {
		if s.ClockInAt < agg.FirstClockIn {
			agg.FirstClockIn = s.ClockInAt
		}

		if s.ClockOutAt == nil {
			agg.HasOpenSession = true
		} else if agg.LastClockOut == nil || *s.ClockOutAt > *agg.LastClockOut {
			out := *s.ClockOutAt
			agg.LastClockOut = &out
		}

		agg.TotalWorkedMinutes += s.WorkedMinutes

		if isHalfDayTag(s.Status) {
			agg.HalfDay = true
		}
	}

	return agg
}

func isHalfDayTag(status *string) bool {
	if status == nil {
		return false
	}
	s := strings.ToLower(strings.TrimSpace(*status))
	return s == attendance.SessionStatusHalfDay || s == attendance.SessionStatusHalfDayAlt
}

// compareSessions is a total order so that any permutation of a day's sessions
// merges into the same aggregate.
func compareSessions(a, b attendance.DaySession) int {
	if c := cmp.Compare(a.ClockInAt, b.ClockInAt); c != 0 {
		return c
	}
	if c := compareOptionalTime(a.ClockOutAt, b.ClockOutAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.WorkedMinutes, b.WorkedMinutes); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	if c := compareOptionalString(a.WorkingDuration, b.WorkingDuration); c != 0 {
		return c
	}
	if c := compareOptionalString(a.Status, b.Status); c != 0 {
		return c
	}
	if c := compareOptionalString(a.Notes, b.Notes); c != 0 {
		return c
	}
	return cmp.Compare(a.EmployeeID, b.EmployeeID)
}

// Open sessions sort after closed ones.
func compareOptionalTime(a, b *worktime.TimeOfDay) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

func compareOptionalString(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

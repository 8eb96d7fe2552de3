package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/worktime"
)

const testEmployeeID = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b"

func strPtr(s string) *string {
	return &s
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := worktime.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func session(t *testing.T, date, clockIn string, clockOut *string) attendance.Session {
	t.Helper()
	return attendance.Session{
		EmployeeID: testEmployeeID,
		Date:       mustDate(t, date),
		ClockIn:    clockIn,
		ClockOut:   clockOut,
	}
}

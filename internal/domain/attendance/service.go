package attendance

import (
	"context"
)

// TimesheetService resolves per-day attendance status and range statistics
type TimesheetService interface {
	// GetTimesheet builds the timesheet of any employee in the caller's company (manager/owner)
	GetTimesheet(ctx context.Context, req TimesheetRequest) (TimesheetResponse, error)

	// GetMyTimesheet builds the timesheet of the authenticated employee
	GetMyTimesheet(ctx context.Context, req MyTimesheetRequest) (TimesheetResponse, error)

	// GetSummary returns only the range summary
	GetSummary(ctx context.Context, req TimesheetRequest) (RangeSummaryResponse, error)
}

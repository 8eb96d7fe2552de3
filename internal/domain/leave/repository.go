package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository reads leave requests for status resolution.
type LeaveRequestRepository interface {
	// ListOverlapping returns requests of the employee in any status whose range intersects [start, end].
	ListOverlapping(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]LeaveRequest, error)
}

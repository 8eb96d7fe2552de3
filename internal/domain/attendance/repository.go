package attendance

import (
	"context"
	"time"
)

// SessionRepository reads clock sessions.
// All methods include companyID parameter to prevent cross-company data access attacks.
type SessionRepository interface {
	// ListByEmployeeAndRange returns every session of the employee whose date falls in [start, end],
	// ordered by date then clock-in.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]Session, error)
}

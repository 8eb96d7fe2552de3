package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// ListOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lt.name,
			   lr.start_date, lr.end_date, lr.status, COALESCE(lr.reason, '')
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		  AND e.company_id = $2
		  AND lr.start_date <= $4
		  AND lr.end_date >= $3
		ORDER BY lr.start_date ASC, lr.id ASC
	`

	rows, err := r.db.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var (
			lr     leave.LeaveRequest
			status string
		)
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.LeaveType,
			&lr.StartDate, &lr.EndDate, &status, &lr.Reason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}

		parsed, ok := parseLeaveStatus(lr.ID, status)
		if !ok {
			continue
		}
		lr.Status = parsed
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

// parseLeaveStatus maps a stored status. Unknown values are logged and the row is dropped,
// which leaves it as inert as a rejected request.
func parseLeaveStatus(id, raw string) (leave.LeaveRequestStatus, bool) {
	status, err := leave.ParseStatus(raw)
	if err != nil {
		slog.Warn("Ignoring leave request with unknown status", "leave_request_id", id, "status", raw, "error", err)
		return "", false
	}
	return status, true
}

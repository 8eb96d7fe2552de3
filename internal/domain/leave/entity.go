package leave

import (
	"strings"
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// ParseStatus maps stored status values onto LeaveRequestStatus.
// The store writes pending requests as "waiting_approval".
func ParseStatus(s string) (LeaveRequestStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "waiting_approval":
		return LeaveRequestStatusPending, nil
	case "approved":
		return LeaveRequestStatusApproved, nil
	case "rejected":
		return LeaveRequestStatusRejected, nil
	case "cancelled", "canceled":
		return LeaveRequestStatusCancelled, nil
	}
	return "", ErrUnknownStatus
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	LeaveType   string

	// Inclusive calendar days
	StartDate time.Time
	EndDate   time.Time

	Status LeaveRequestStatus
	Reason string
}

// Blocks reports whether the request suppresses attendance-derived status.
// Rejected and cancelled requests are inert.
func (lr LeaveRequest) Blocks() bool {
	return lr.Status == LeaveRequestStatusApproved || lr.Status == LeaveRequestStatusPending
}

// Covers reports whether the calendar day falls inside [StartDate, EndDate].
func (lr LeaveRequest) Covers(day time.Time) bool {
	return !day.Before(lr.StartDate) && !day.After(lr.EndDate)
}

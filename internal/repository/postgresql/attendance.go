package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type sessionRepository struct {
	db       *database.DB
	location *time.Location
}

// NewSessionRepository returns a reader that renders clock timestamps in loc.
func NewSessionRepository(db *database.DB, loc *time.Location) attendance.SessionRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &sessionRepository{db: db, location: loc}
}

// ListByEmployeeAndRange implements attendance.SessionRepository.
func (s *sessionRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]attendance.Session, error) {
	query := `
		SELECT a.id, a.employee_id, a.date,
			   to_char(a.clock_in AT TIME ZONE $5, 'HH24:MI:SS'),
			   to_char(a.clock_out AT TIME ZONE $5, 'HH24:MI:SS'),
			   CASE WHEN a.work_hours_in_minutes IS NULL THEN NULL
			        ELSE (a.work_hours_in_minutes / 60)::text || 'h ' || (a.work_hours_in_minutes % 60)::text || 'm'
			   END,
			   a.notes, a.status
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.company_id = $2
		  AND a.date BETWEEN $3 AND $4
		ORDER BY a.date ASC, a.clock_in ASC
	`

	rows, err := s.db.Query(ctx, query, employeeID, companyID, start, end, s.location.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var sess attendance.Session
		if err := rows.Scan(
			&sess.ID, &sess.EmployeeID, &sess.Date,
			&sess.ClockIn, &sess.ClockOut,
			&sess.WorkingDuration,
			&sess.Notes, &sess.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

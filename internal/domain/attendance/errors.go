package attendance

import "errors"

// Attendance domain errors
var (
	// Range errors
	ErrInvalidRange = errors.New("start date must not be after end date")
	ErrRangeTooLong = errors.New("date range is too long")

	// Session errors
	ErrMalformedSession = errors.New("malformed attendance session")

	// Access errors
	ErrEmployeeProfileRequired = errors.New("an employee profile is required to view own attendance")
)

package holiday

import "time"

// Holiday is a company-declared non-working day.
type Holiday struct {
	ID         string
	CompanyID  string
	Date       time.Time
	Name       string
	IsOptional bool
}

package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListByRange returns the company's holidays dated within [start, end], ordered by date
	ListByRange(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)
}

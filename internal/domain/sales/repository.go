package sales

import "context"

type SalesRepository interface {
	Get(ctx context.Context, branch string, date string) (DailyRecord, error)
	Put(ctx context.Context, patch Patch) error
	// ListByMonth returns the records of month ("YYYY-MM") ordered by date.
	ListByMonth(ctx context.Context, branch string, month string) ([]DailyRecord, error)
}

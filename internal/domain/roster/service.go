package roster

import "context"

type RosterService interface {
	// GetWeek returns the branch's Monday-to-Saturday grid for a roster week.
	GetWeek(ctx context.Context, branch string, year int, week int) (WeekResponse, error)

	// SaveWeek applies duty toggles and stores every cell's window and duty flag.
	SaveWeek(ctx context.Context, req SaveWeekRequest) (WeekResponse, error)
}

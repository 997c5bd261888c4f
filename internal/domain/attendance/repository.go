package attendance

import "context"

type ShiftRepository interface {
	Get(ctx context.Context, branch string, staffID string, date string) (ShiftRecord, error)
	// Put merges patch into the stored record, creating it when absent.
	Put(ctx context.Context, patch ShiftPatch) error
	ListByBranchDate(ctx context.Context, branch string, date string) ([]ShiftRecord, error)
	// ListByBranchRange returns records dated from..to inclusive.
	ListByBranchRange(ctx context.Context, branch string, from string, to string) ([]ShiftRecord, error)
}

package attendance

import (
	"context"

	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
)

type AttendanceService interface {
	// GetDailySheet merges the branch's staff with their stored shifts for date.
	GetDailySheet(ctx context.Context, branch string, date string) (DailySheetResponse, error)

	// SaveDailySheet applies edits and writes every row plus the day's sales record.
	SaveDailySheet(ctx context.Context, req SaveDailySheetRequest) (DailySheetResponse, error)

	// GetShiftRecord scans the configured branches in order and returns the first stored record.
	GetShiftRecord(ctx context.Context, staffID string, date string) (ShiftRecordResponse, error)

	// RecomputePayroll re-sums confirmed wages for a branch-day and stores them on the sales record.
	RecomputePayroll(ctx context.Context, branch string, date string) (payroll.DailyTotals, error)
}

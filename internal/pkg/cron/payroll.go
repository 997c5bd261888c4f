package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type PayrollJobs struct {
	branches      []string
	attendanceSvc attendance.AttendanceService
	hour          int
	now           func() time.Time
}

func NewPayrollJobs(branches []string, attendanceSvc attendance.AttendanceService, hour int) *PayrollJobs {
	return &PayrollJobs{
		branches:      branches,
		attendanceSvc: attendanceSvc,
		hour:          hour,
		now:           time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("refresh_previous_day_payroll", j.hour, j.RefreshPreviousDay)
}

// RefreshPreviousDay recomputes yesterday's payroll sums for every branch.
// A failing branch does not stop the others.
func (j *PayrollJobs) RefreshPreviousDay(ctx context.Context) error {
	date := worktime.FormatDate(j.now().UTC().AddDate(0, 0, -1))
	slog.Info("Cron: Starting payroll refresh", "date", date)

	var errs []error
	for _, branch := range j.branches {
		totals, err := j.attendanceSvc.RecomputePayroll(ctx, branch, date)
		if err != nil {
			slog.Error("Cron: Failed to refresh payroll", "branch", branch, "date", date, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", branch, err))
			continue
		}
		slog.Info("Cron: Refreshed payroll",
			"branch", branch,
			"date", date,
			"nominal_payroll", totals.NominalPayroll.StringFixed(2),
			"actual_payroll", totals.ActualPayroll.StringFixed(2))
	}

	return errors.Join(errs...)
}

package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	payrollsvc "github.com/sodeng/branchops-backend-go/internal/service/payroll"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	branches   []string
	staffRepo  staff.StaffRepository
	shiftRepo  attendance.ShiftRepository
	salesRepo  sales.SalesRepository
	reconciler *Reconciler
}

func NewAttendanceService(
	branches []string,
	staffRepo staff.StaffRepository,
	shiftRepo attendance.ShiftRepository,
	salesRepo sales.SalesRepository,
	calc *payrollsvc.WageCalculator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		branches:   branches,
		staffRepo:  staffRepo,
		shiftRepo:  shiftRepo,
		salesRepo:  salesRepo,
		reconciler: NewReconciler(calc),
	}
}

type daySnapshot struct {
	rows    []Row
	members []staff.Member
	shifts  []attendance.ShiftRecord
	sales   sales.DailyRecord
}

// loadDay reads staff, shifts and sales for a branch-day concurrently.
func (s *AttendanceServiceImpl) loadDay(ctx context.Context, branch, date string) (daySnapshot, error) {
	if !slices.Contains(s.branches, branch) {
		return daySnapshot{}, fmt.Errorf("%s: %w", branch, staff.ErrUnknownBranch)
	}
	if _, err := worktime.ParseDate(date); err != nil {
		return daySnapshot{}, err
	}

	var (
		members []staff.Member
		shifts  []attendance.ShiftRecord
		record  sales.DailyRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.staffRepo.ListByBranches(gctx, []string{branch})
		return err
	})
	g.Go(func() error {
		var err error
		shifts, err = s.shiftRepo.ListByBranchDate(gctx, branch, date)
		return err
	})
	g.Go(func() error {
		var err error
		record, err = s.salesRepo.Get(gctx, branch, date)
		if errors.Is(err, sales.ErrSalesNotFound) {
			record, err = sales.EmptyRecord(branch, date), nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return daySnapshot{}, fmt.Errorf("failed to load %s %s: %w: %w", branch, date, database.ErrStorageUnavailable, err)
	}

	return daySnapshot{
		rows:    MergeRows(members, shifts, branch, date),
		members: members,
		shifts:  shifts,
		sales:   record,
	}, nil
}

func (s *AttendanceServiceImpl) buildSheet(branch, date string, rows []Row, record sales.DailyRecord, totals payroll.DailyTotals, rowErrs []*attendance.RowError) attendance.DailySheetResponse {
	onDuty, offDuty := GroupRows(rows)
	return attendance.DailySheetResponse{
		Branch:  branch,
		Date:    date,
		OnDuty:  toSheetRows(onDuty),
		OffDuty: toSheetRows(offDuty),
		Sales:   sales.ToResponse(record),
		Totals:  totals,
		Errors:  attendance.ToRowIssues(rowErrs),
	}
}

// GetDailySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailySheet(ctx context.Context, branch string, date string) (attendance.DailySheetResponse, error) {
	day, err := s.loadDay(ctx, branch, date)
	if err != nil {
		return attendance.DailySheetResponse{}, err
	}

	totals, rowErrs := s.reconciler.Reconcile(day.rows)
	for _, rowErr := range rowErrs {
		slog.Warn("shift could not be priced", "branch", branch, "date", date, "staff_id", rowErr.StaffID, "error", rowErr.Err)
	}

	return s.buildSheet(branch, date, day.rows, day.sales, totals, rowErrs), nil
}

// SaveDailySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SaveDailySheet(ctx context.Context, req attendance.SaveDailySheetRequest) (attendance.DailySheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailySheetResponse{}, err
	}

	day, err := s.loadDay(ctx, req.Branch, req.Date)
	if err != nil {
		return attendance.DailySheetResponse{}, err
	}

	editErrs := applyEdits(day.rows, req.Edits, req.Actor)
	for _, rowErr := range editErrs {
		slog.Warn("shift edit rejected", "branch", req.Branch, "date", req.Date, "staff_id", rowErr.StaffID, "error", rowErr.Err)
	}

	totals, priceErrs := s.reconciler.Reconcile(day.rows)
	for _, rowErr := range priceErrs {
		slog.Warn("shift saved without wage", "branch", req.Branch, "date", req.Date, "staff_id", rowErr.StaffID, "error", rowErr.Err)
	}

	salesPatch := sales.Patch{Branch: req.Branch, Date: req.Date}
	if req.Sales != nil {
		salesPatch = req.Sales.Patch(req.Branch, req.Date)
	}
	salesPatch.NominalPayroll = &totals.NominalPayroll
	salesPatch.ActualPayroll = &totals.ActualPayroll

	if err := s.writeDay(ctx, day.rows, salesPatch); err != nil {
		slog.Error("daily sheet save incomplete", "branch", req.Branch, "date", req.Date, "error", err)
		return attendance.DailySheetResponse{}, err
	}

	record := day.sales
	applySalesPatch(&record, salesPatch)
	for i := range day.rows {
		if day.rows[i].Record.State == attendance.StateUnset {
			day.rows[i].Record.State = attendance.StateEditing
		}
	}

	slog.Info("daily sheet saved", "branch", req.Branch, "date", req.Date, "rows", len(day.rows),
		"rejected", len(editErrs), "nominal_payroll", totals.NominalPayroll.String(), "actual_payroll", totals.ActualPayroll.String())

	return s.buildSheet(req.Branch, req.Date, day.rows, record, totals, append(editErrs, priceErrs...)), nil
}

// applyEdits runs each edit through its row's state machine. A rejected edit
// leaves the row unchanged, flags it and is skipped; the rest still apply.
func applyEdits(rows []Row, edits []attendance.ShiftEdit, actor attendance.Actor) []*attendance.RowError {
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		index[row.Member.ID] = i
	}

	var rowErrs []*attendance.RowError
	for _, edit := range edits {
		i, ok := index[edit.StaffID]
		if !ok {
			rowErrs = append(rowErrs, &attendance.RowError{StaffID: edit.StaffID, Err: staff.ErrStaffNotFound})
			continue
		}
		if err := ApplyEdit(&rows[i], edit, actor); err != nil {
			rowErr := &attendance.RowError{StaffID: edit.StaffID, Err: err}
			if rows[i].Err == nil {
				rows[i].Err = rowErr
			}
			rowErrs = append(rowErrs, rowErr)
		}
	}
	return rowErrs
}

// writeDay issues one write per row plus the sales write. Every write runs
// to completion; failures are collected rather than cancelling the rest.
func (s *AttendanceServiceImpl) writeDay(ctx context.Context, rows []Row, salesPatch sales.Patch) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []attendance.WriteFailure
	)
	write := func(target string, put func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := put(); err != nil {
				mu.Lock()
				failures = append(failures, attendance.WriteFailure{Target: target, Err: err})
				mu.Unlock()
			}
		}()
	}

	for _, row := range rows {
		patch := row.Record.FullPatch()
		write("shift:"+patch.StaffID, func() error { return s.shiftRepo.Put(ctx, patch) })
	}
	write("sales:"+salesPatch.Date, func() error { return s.salesRepo.Put(ctx, salesPatch) })
	wg.Wait()

	if len(failures) > 0 {
		return &attendance.PartialWriteError{Failures: failures}
	}
	return nil
}

func applySalesPatch(record *sales.DailyRecord, patch sales.Patch) {
	if patch.DailySales != nil {
		record.DailySales = *patch.DailySales
	}
	if patch.CashSales != nil {
		record.CashSales = *patch.CashSales
	}
	if patch.PayNowSales != nil {
		record.PayNowSales = *patch.PayNowSales
	}
	if patch.CashOnHand != nil {
		record.CashOnHand = *patch.CashOnHand
	}
	if patch.NominalPayroll != nil {
		record.NominalPayroll = *patch.NominalPayroll
	}
	if patch.ActualPayroll != nil {
		record.ActualPayroll = *patch.ActualPayroll
	}
}

// GetShiftRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetShiftRecord(ctx context.Context, staffID string, date string) (attendance.ShiftRecordResponse, error) {
	if _, err := worktime.ParseDate(date); err != nil {
		return attendance.ShiftRecordResponse{}, err
	}

	for _, branch := range s.branches {
		rec, err := s.shiftRepo.Get(ctx, branch, staffID, date)
		if errors.Is(err, attendance.ErrShiftNotFound) {
			continue
		}
		if err != nil {
			return attendance.ShiftRecordResponse{}, fmt.Errorf("failed to get shift in %s: %w: %w", branch, database.ErrStorageUnavailable, err)
		}
		rec.Normalize()
		return attendance.ToShiftResponse(rec), nil
	}

	return attendance.ShiftRecordResponse{}, attendance.ErrShiftNotFound
}

// RecomputePayroll implements attendance.AttendanceService. Totals come from
// the stored records themselves: a confirmed record's wage snapshot is used
// as saved, so later roster moves or salary changes do not reprice the day.
// Only confirmed records without a snapshot are priced, against the member's
// current profile.
func (s *AttendanceServiceImpl) RecomputePayroll(ctx context.Context, branch string, date string) (payroll.DailyTotals, error) {
	day, err := s.loadDay(ctx, branch, date)
	if err != nil {
		return payroll.DailyTotals{}, err
	}

	if len(day.shifts) == 0 {
		return payrollsvc.SumDaily(nil), nil
	}

	totals, rowErrs := s.reconciler.SumStored(day.shifts, day.members)
	for _, rowErr := range rowErrs {
		slog.Warn("shift left out of payroll", "branch", branch, "date", date, "staff_id", rowErr.StaffID, "error", rowErr.Err)
	}

	err = s.salesRepo.Put(ctx, sales.Patch{
		Branch:         branch,
		Date:           date,
		NominalPayroll: &totals.NominalPayroll,
		ActualPayroll:  &totals.ActualPayroll,
	})
	if err != nil {
		return payroll.DailyTotals{}, fmt.Errorf("failed to store payroll for %s %s: %w: %w", branch, date, database.ErrStorageUnavailable, err)
	}

	return totals, nil
}

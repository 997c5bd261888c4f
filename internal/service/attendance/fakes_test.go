package attendance

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
)

type fakeStaffRepo struct {
	staff.StaffRepository
	members []staff.Member
	err     error
}

func (f *fakeStaffRepo) ListByBranches(ctx context.Context, branches []string) ([]staff.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []staff.Member
	for _, m := range f.members {
		for _, b := range branches {
			if m.Branch == b && m.Role != staff.RoleAdmin {
				out = append(out, m)
			}
		}
	}
	staff.SortByRole(out)
	return out, nil
}

type shiftKey struct {
	branch, staffID, date string
}

type fakeShiftRepo struct {
	mu      sync.Mutex
	records map[shiftKey]attendance.ShiftRecord
	failFor map[string]bool
	puts    int
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{records: map[shiftKey]attendance.ShiftRecord{}, failFor: map[string]bool{}}
}

func (f *fakeShiftRepo) seed(rec attendance.ShiftRecord) {
	f.records[shiftKey{rec.Branch, rec.StaffID, rec.Date}] = rec
}

func (f *fakeShiftRepo) Get(ctx context.Context, branch, staffID, date string) (attendance.ShiftRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[shiftKey{branch, staffID, date}]
	if !ok {
		return attendance.ShiftRecord{}, attendance.ErrShiftNotFound
	}
	return rec, nil
}

func (f *fakeShiftRepo) Put(ctx context.Context, patch attendance.ShiftPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failFor[patch.StaffID] {
		return errors.New("connection reset")
	}

	key := shiftKey{patch.Branch, patch.StaffID, patch.Date}
	rec, ok := f.records[key]
	if !ok {
		rec = attendance.ShiftRecord{StaffID: patch.StaffID, Branch: patch.Branch, Date: patch.Date, State: attendance.StateEditing}
	}
	if patch.StartTime != nil {
		rec.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		rec.EndTime = *patch.EndTime
	}
	if patch.OnOff != nil {
		rec.OnOff = *patch.OnOff
	}
	if patch.Confirmed != nil {
		rec.State = attendance.StateEditing
		if *patch.Confirmed {
			rec.State = attendance.StateConfirmed
		}
	}
	if patch.NominalDailyWage != nil {
		rec.NominalDailyWage = patch.NominalDailyWage
	}
	if patch.ActualDailyWage != nil {
		rec.ActualDailyWage = patch.ActualDailyWage
	}
	if patch.ClearWages {
		rec.NominalDailyWage = nil
		rec.ActualDailyWage = nil
	}
	f.records[key] = rec
	return nil
}

func (f *fakeShiftRepo) ListByBranchDate(ctx context.Context, branch, date string) ([]attendance.ShiftRecord, error) {
	return f.ListByBranchRange(ctx, branch, date, date)
}

func (f *fakeShiftRepo) ListByBranchRange(ctx context.Context, branch, from, to string) ([]attendance.ShiftRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.ShiftRecord
	for k, rec := range f.records {
		if k.branch == branch && strings.Compare(k.date, from) >= 0 && strings.Compare(k.date, to) <= 0 {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out, nil
}

type fakeSalesRepo struct {
	mu      sync.Mutex
	records map[string]sales.DailyRecord
	fail    bool
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{records: map[string]sales.DailyRecord{}}
}

func (f *fakeSalesRepo) Get(ctx context.Context, branch, date string) (sales.DailyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[branch+"|"+date]
	if !ok {
		return sales.DailyRecord{}, sales.ErrSalesNotFound
	}
	return rec, nil
}

func (f *fakeSalesRepo) Put(ctx context.Context, patch sales.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("connection reset")
	}
	key := patch.Branch + "|" + patch.Date
	rec, ok := f.records[key]
	if !ok {
		rec = sales.EmptyRecord(patch.Branch, patch.Date)
	}
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&rec.DailySales, patch.DailySales)
	set(&rec.CashSales, patch.CashSales)
	set(&rec.PayNowSales, patch.PayNowSales)
	set(&rec.CashOnHand, patch.CashOnHand)
	set(&rec.NominalPayroll, patch.NominalPayroll)
	set(&rec.ActualPayroll, patch.ActualPayroll)
	f.records[key] = rec
	return nil
}

func (f *fakeSalesRepo) ListByMonth(ctx context.Context, branch, month string) ([]sales.DailyRecord, error) {
	return nil, nil
}

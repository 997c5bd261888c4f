package attendance

import (
	"sort"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	payrollsvc "github.com/sodeng/branchops-backend-go/internal/service/payroll"
)

const (
	fallbackStart = "09:00"
	fallbackEnd   = "18:00"
)

// Row pairs a staff member with the shift record shown for them.
type Row struct {
	Member staff.Member
	Record attendance.ShiftRecord
	Err    error
}

// DefaultWindow is the member's usual hours, falling back to 09:00-18:00.
func DefaultWindow(m staff.Member) attendance.Window {
	w := attendance.Window{Start: m.DefaultStart, End: m.DefaultEnd}
	if w.Start == "" {
		w.Start = fallbackStart
	}
	if w.End == "" {
		w.End = fallbackEnd
	}
	return w
}

// MergeRows builds one row per member. A stored record wins over defaults;
// stored off-duty records are normalized to 00:00-00:00 and confirmed.
func MergeRows(members []staff.Member, stored []attendance.ShiftRecord, branch, date string) []Row {
	byStaff := make(map[string]attendance.ShiftRecord, len(stored))
	for _, rec := range stored {
		byStaff[rec.StaffID] = rec
	}

	rows := make([]Row, 0, len(members))
	for _, m := range members {
		rec, ok := byStaff[m.ID]
		if ok {
			rec.Normalize()
		} else {
			rec = attendance.NewUnsetRecord(m.ID, branch, date, DefaultWindow(m))
		}
		rows = append(rows, Row{Member: m, Record: rec})
	}
	return rows
}

// ApplyEdit runs one edit through the record's state machine. A toggle back
// on duty from the off-duty list overrides the confirmation lock.
func ApplyEdit(row *Row, edit attendance.ShiftEdit, actor attendance.Actor) error {
	rec := row.Record
	var err error

	switch edit.Action {
	case attendance.ActionSetTimes:
		err = rec.SetTimes(edit.StartTime, edit.EndTime)
	case attendance.ActionConfirm:
		err = rec.Confirm()
	case attendance.ActionModify:
		err = rec.Modify()
	case attendance.ActionToggleOn:
		if !rec.IsOnDuty() {
			actor.Override = actor.IsAdmin
		}
		err = rec.Toggle(true, actor, DefaultWindow(row.Member))
	case attendance.ActionToggleOff:
		err = rec.Toggle(false, actor, DefaultWindow(row.Member))
	default:
		err = attendance.ErrUnknownAction
	}
	if err != nil {
		return err
	}

	row.Record = rec
	return nil
}

// Reconciler prices confirmed shifts and totals the day.
type Reconciler struct {
	calc *payrollsvc.WageCalculator
}

func NewReconciler(calc *payrollsvc.WageCalculator) *Reconciler {
	return &Reconciler{calc: calc}
}

// Reconcile fills wages on every confirmed row. Off-duty rows are always
// confirmed and are priced as a 00:00-00:00 shift, so salaried staff earn a
// half day and hourly staff nothing. A row that cannot be priced is flagged
// with a RowError and left out of the totals; the pass carries on with the
// remaining rows. A flag already set on a row by a rejected edit is kept.
func (r *Reconciler) Reconcile(rows []Row) (payroll.DailyTotals, []*attendance.RowError) {
	var rowErrs []*attendance.RowError
	entries := make([]payroll.Entry, 0, len(rows))

	for i := range rows {
		row := &rows[i]
		rec := &row.Record

		if !rec.IsConfirmed() {
			rec.NominalDailyWage = nil
			rec.ActualDailyWage = nil
			continue
		}

		wage, err := r.calc.CalculateDailyWage(row.Member, rec.StartTime, rec.EndTime)
		if err != nil {
			rowErr := &attendance.RowError{StaffID: row.Member.ID, Err: err}
			if row.Err == nil {
				row.Err = rowErr
			}
			rowErrs = append(rowErrs, rowErr)
			rec.NominalDailyWage = nil
			rec.ActualDailyWage = nil
			continue
		}

		rec.NominalDailyWage = &wage.NominalDailyWage
		rec.ActualDailyWage = &wage.ActualDailyWage
		entries = append(entries, payroll.Entry{Confirmed: true, Wage: wage})
	}

	return payrollsvc.SumDaily(entries), rowErrs
}

// SumStored totals a day from stored records. Confirmed records keep the wage
// snapshot taken when they were saved; one without a snapshot is priced with
// the member's current profile, or flagged when the member is no longer listed
// at the branch.
func (r *Reconciler) SumStored(records []attendance.ShiftRecord, members []staff.Member) (payroll.DailyTotals, []*attendance.RowError) {
	byID := make(map[string]staff.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	var rowErrs []*attendance.RowError
	entries := make([]payroll.Entry, 0, len(records))

	for _, rec := range records {
		rec.Normalize()
		if !rec.IsConfirmed() {
			continue
		}

		if rec.HasWageSnapshot() {
			entries = append(entries, payroll.Entry{Confirmed: true, Wage: payroll.DailyWageResult{
				NominalDailyWage: *rec.NominalDailyWage,
				ActualDailyWage:  *rec.ActualDailyWage,
			}})
			continue
		}

		m, ok := byID[rec.StaffID]
		if !ok {
			rowErrs = append(rowErrs, &attendance.RowError{StaffID: rec.StaffID, Date: rec.Date, Err: staff.ErrStaffNotFound})
			continue
		}
		wage, err := r.calc.CalculateDailyWage(m, rec.StartTime, rec.EndTime)
		if err != nil {
			rowErrs = append(rowErrs, &attendance.RowError{StaffID: rec.StaffID, Date: rec.Date, Err: err})
			continue
		}
		entries = append(entries, payroll.Entry{Confirmed: true, Wage: wage})
	}

	return payrollsvc.SumDaily(entries), rowErrs
}

// GroupRows splits rows into on-duty and off-duty groups, each ordered by
// role rank then name.
func GroupRows(rows []Row) (onDuty []Row, offDuty []Row) {
	for _, row := range rows {
		if row.Record.IsOnDuty() {
			onDuty = append(onDuty, row)
		} else {
			offDuty = append(offDuty, row)
		}
	}
	sortRows(onDuty)
	sortRows(offDuty)
	return onDuty, offDuty
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Member.Role.Rank(), rows[j].Member.Role.Rank()
		if ri != rj {
			return ri < rj
		}
		return rows[i].Member.Name < rows[j].Member.Name
	})
}

func toSheetRow(row Row) attendance.SheetRow {
	out := attendance.SheetRow{
		StaffID:          row.Member.ID,
		Name:             row.Member.Name,
		Role:             string(row.Member.Role),
		StartTime:        row.Record.StartTime,
		EndTime:          row.Record.EndTime,
		OnOff:            row.Record.OnOff,
		Confirmed:        row.Record.IsConfirmed(),
		State:            row.Record.State.String(),
		NominalDailyWage: row.Record.NominalDailyWage,
		ActualDailyWage:  row.Record.ActualDailyWage,
	}
	if row.Err != nil {
		out.Error = row.Err.Error()
	}
	return out
}

func toSheetRows(rows []Row) []attendance.SheetRow {
	out := make([]attendance.SheetRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSheetRow(row))
	}
	return out
}

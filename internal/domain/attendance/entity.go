package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type OnOff string

const (
	On  OnOff = "on"
	Off OnOff = "off"
)

// State is the lifecycle position of a shift record.
type State int

const (
	// StateUnset has no stored record; the member's default window is shown.
	StateUnset State = iota
	StateEditing
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unset"
	}
}

// Window is a member's default working hours.
type Window struct {
	Start string
	End   string
}

// Actor is whoever drives a transition.
type Actor struct {
	IsAdmin  bool
	Override bool
}

// ShiftRecord is one staff member's shift in one branch on one date.
type ShiftRecord struct {
	StaffID          string
	Branch           string
	Date             string
	StartTime        string
	EndTime          string
	OnOff            OnOff
	State            State
	NominalDailyWage *decimal.Decimal
	ActualDailyWage  *decimal.Decimal
	UpdatedAt        time.Time
}

// NewUnsetRecord is the record shown when nothing has been stored.
func NewUnsetRecord(staffID, branch, date string, defaults Window) ShiftRecord {
	return ShiftRecord{
		StaffID:   staffID,
		Branch:    branch,
		Date:      date,
		StartTime: defaults.Start,
		EndTime:   defaults.End,
		OnOff:     On,
		State:     StateUnset,
	}
}

func (r *ShiftRecord) IsConfirmed() bool {
	return r.State == StateConfirmed
}

func (r *ShiftRecord) IsOnDuty() bool {
	return r.OnOff != Off
}

// Normalize enforces the off-duty invariant on a loaded record.
func (r *ShiftRecord) Normalize() {
	if r.OnOff == Off {
		r.StartTime = worktime.Midnight
		r.EndTime = worktime.Midnight
		r.State = StateConfirmed
	}
	if r.OnOff == "" {
		r.OnOff = On
	}
}

// SetTimes edits the working window of an unconfirmed on-duty shift.
func (r *ShiftRecord) SetTimes(start, end string) error {
	if r.OnOff == Off {
		return ErrShiftOff
	}
	if r.State == StateConfirmed {
		return ErrShiftConfirmed
	}
	if !worktime.IsValidClock(start) || !worktime.IsValidClock(end) {
		return worktime.ErrInvalidTimeFormat
	}
	r.StartTime = start
	r.EndTime = end
	r.State = StateEditing
	return nil
}

// Confirm locks the times. Confirming twice is a no-op.
func (r *ShiftRecord) Confirm() error {
	if r.State == StateConfirmed {
		return nil
	}
	if !worktime.IsValidClock(r.StartTime) || !worktime.IsValidClock(r.EndTime) {
		return worktime.ErrInvalidTimeFormat
	}
	r.State = StateConfirmed
	return nil
}

// Modify reopens a confirmed on-duty shift for editing.
func (r *ShiftRecord) Modify() error {
	if r.OnOff == Off {
		return ErrShiftOff
	}
	if r.State == StateConfirmed {
		r.State = StateEditing
	}
	return nil
}

// Toggle switches the shift on or off duty. Switching off zeroes the window
// and confirms; switching on restores defaults unconfirmed.
func (r *ShiftRecord) Toggle(on bool, actor Actor, defaults Window) error {
	if !actor.IsAdmin {
		return ErrAdminRequired
	}
	if r.State == StateConfirmed && !actor.Override {
		return ErrShiftConfirmed
	}

	r.NominalDailyWage = nil
	r.ActualDailyWage = nil
	if on {
		r.OnOff = On
		r.StartTime = defaults.Start
		r.EndTime = defaults.End
		r.State = StateEditing
		return nil
	}

	r.OnOff = Off
	r.StartTime = worktime.Midnight
	r.EndTime = worktime.Midnight
	r.State = StateConfirmed
	return nil
}

// ShiftPatch is a merge write. Nil fields keep their stored values;
// ClearWages removes the stored wage snapshot.
type ShiftPatch struct {
	StaffID          string
	Branch           string
	Date             string
	StartTime        *string
	EndTime          *string
	OnOff            *OnOff
	Confirmed        *bool
	NominalDailyWage *decimal.Decimal
	ActualDailyWage  *decimal.Decimal
	ClearWages       bool
}

// HasWageSnapshot reports whether both wages were priced and stored.
func (r *ShiftRecord) HasWageSnapshot() bool {
	return r.NominalDailyWage != nil && r.ActualDailyWage != nil
}

// FullPatch writes every field of r. A record without wages clears the
// stored snapshot so it never outlives the confirmation it priced.
func (r ShiftRecord) FullPatch() ShiftPatch {
	start, end, onOff, confirmed := r.StartTime, r.EndTime, r.OnOff, r.IsConfirmed()
	return ShiftPatch{
		StaffID:          r.StaffID,
		Branch:           r.Branch,
		Date:             r.Date,
		StartTime:        &start,
		EndTime:          &end,
		OnOff:            &onOff,
		Confirmed:        &confirmed,
		NominalDailyWage: r.NominalDailyWage,
		ActualDailyWage:  r.ActualDailyWage,
		ClearWages:       !r.HasWageSnapshot(),
	}
}

// SchedulePatch writes the window and duty flag. Wages are not priced here;
// a cell whose wages were dropped by a toggle clears the stored snapshot.
// An unconfirmed on-duty cell also clears any stored confirmation, so a
// cell switched back on is editable again.
func (r ShiftRecord) SchedulePatch() ShiftPatch {
	start, end, onOff := r.StartTime, r.EndTime, r.OnOff
	patch := ShiftPatch{
		StaffID:    r.StaffID,
		Branch:     r.Branch,
		Date:       r.Date,
		StartTime:  &start,
		EndTime:    &end,
		OnOff:      &onOff,
		ClearWages: !r.HasWageSnapshot(),
	}
	if r.OnOff == On && r.State != StateConfirmed {
		confirmed := false
		patch.Confirmed = &confirmed
	}
	return patch
}

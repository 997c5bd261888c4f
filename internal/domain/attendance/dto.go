package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type Action string

const (
	ActionSetTimes  Action = "set_times"
	ActionConfirm   Action = "confirm"
	ActionModify    Action = "modify"
	ActionToggleOn  Action = "toggle_on"
	ActionToggleOff Action = "toggle_off"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionSetTimes, ActionConfirm, ActionModify, ActionToggleOn, ActionToggleOff:
		return true
	}
	return false
}

// ShiftEdit is one change applied to a staff row before saving.
type ShiftEdit struct {
	StaffID   string `json:"staff_id"`
	Action    Action `json:"action"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type SaveDailySheetRequest struct {
	Branch string       `json:"-"`
	Date   string       `json:"-"`
	Actor  Actor        `json:"-"`
	Sales  *sales.Input `json:"sales,omitempty"`
	Edits  []ShiftEdit  `json:"edits"`
}

func (r *SaveDailySheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch is required",
		})
	}
	if _, err := worktime.ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	for i, e := range r.Edits {
		field := "edits[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(e.StaffID) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".staff_id",
				Message: "staff_id is required",
			})
		}
		if !e.Action.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".action",
				Message: "action must be one of set_times, confirm, modify, toggle_on, toggle_off",
			})
		}
		if e.Action == ActionSetTimes && (!worktime.IsValidClock(e.StartTime) || !worktime.IsValidClock(e.EndTime)) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "start_time and end_time must be HH:MM",
			})
		}
	}
	if r.Sales != nil {
		if err := r.Sales.Validate(); err != nil {
			if salesErrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, salesErrs...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SheetRow struct {
	StaffID          string           `json:"staff_id"`
	Name             string           `json:"name"`
	Role             string           `json:"role"`
	StartTime        string           `json:"start_time"`
	EndTime          string           `json:"end_time"`
	OnOff            OnOff            `json:"on_off"`
	Confirmed        bool             `json:"confirmed"`
	State            string           `json:"state"`
	NominalDailyWage *decimal.Decimal `json:"nominal_daily_wage,omitempty"`
	ActualDailyWage  *decimal.Decimal `json:"actual_daily_wage,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// RowIssue is a flagged row in a response: an edit that was rejected and
// skipped, or a shift that could not be priced.
type RowIssue struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date,omitempty"`
	Error   string `json:"error"`
}

func ToRowIssues(errs []*RowError) []RowIssue {
	if len(errs) == 0 {
		return nil
	}
	issues := make([]RowIssue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, RowIssue{StaffID: e.StaffID, Date: e.Date, Error: e.Err.Error()})
	}
	return issues
}

type DailySheetResponse struct {
	Branch  string              `json:"branch"`
	Date    string              `json:"date"`
	OnDuty  []SheetRow          `json:"on_duty"`
	OffDuty []SheetRow          `json:"off_duty"`
	Sales   sales.SalesResponse `json:"sales"`
	Totals  payroll.DailyTotals `json:"totals"`
	Errors  []RowIssue          `json:"errors,omitempty"`
}

type ShiftRecordResponse struct {
	StaffID          string           `json:"staff_id"`
	Branch           string           `json:"branch"`
	Date             string           `json:"date"`
	StartTime        string           `json:"start_time"`
	EndTime          string           `json:"end_time"`
	OnOff            OnOff            `json:"on_off"`
	Confirmed        bool             `json:"confirmed"`
	NominalDailyWage *decimal.Decimal `json:"nominal_daily_wage,omitempty"`
	ActualDailyWage  *decimal.Decimal `json:"actual_daily_wage,omitempty"`
}

func ToShiftResponse(r ShiftRecord) ShiftRecordResponse {
	return ShiftRecordResponse{
		StaffID:          r.StaffID,
		Branch:           r.Branch,
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		OnOff:            r.OnOff,
		Confirmed:        r.IsConfirmed(),
		NominalDailyWage: r.NominalDailyWage,
		ActualDailyWage:  r.ActualDailyWage,
	}
}

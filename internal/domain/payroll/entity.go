package payroll

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// UnpaidBreakHours is deducted from hourly shifts longer than BreakThresholdHours.
	UnpaidBreakHours    = 1.5
	BreakThresholdHours = 8

	// WeeksPerMonth converts a monthly salary into a weekly one.
	WeeksPerMonth = 4.25

	// FullDayRatio is the share of scheduled hours that earns a full day's pay.
	FullDayRatio = 0.75
	HalfDayRate  = 0.5

	RatioPlaceholder = "-"
)

type DailyWageResult struct {
	NominalDailyWage decimal.Decimal `json:"nominal_daily_wage"`
	ActualDailyWage  decimal.Decimal `json:"actual_daily_wage"`
}

// Entry is one staff row's contribution to a day's payroll.
type Entry struct {
	Confirmed bool
	Wage      DailyWageResult
}

// DailyTotals holds a branch-day's payroll sums.
type DailyTotals struct {
	NominalPayroll decimal.Decimal `json:"nominal_payroll"`
	ActualPayroll  decimal.Decimal `json:"actual_payroll"`
}

// Ratio is payroll as a percentage of sales. It is undefined when sales are zero.
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

func (r Ratio) String() string {
	if !r.Defined {
		return RatioPlaceholder
	}
	return r.Value.StringFixed(1)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

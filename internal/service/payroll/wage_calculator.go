package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

var (
	weeksPerMonth = decimal.NewFromFloat(payroll.WeeksPerMonth)
	halfDay       = decimal.NewFromFloat(payroll.HalfDayRate)
)

type WageCalculator struct {
}

func NewWageCalculator() *WageCalculator {
	return &WageCalculator{}
}

// CalculateDailyWage prices one worked shift for member. Hourly staff are
// paid per hour with an unpaid break on long shifts; salaried staff earn a
// full or half day depending on how much of their scheduled window they worked.
func (c *WageCalculator) CalculateDailyWage(member staff.Member, start, end string) (payroll.DailyWageResult, error) {
	worked, err := worktime.ElapsedHours(start, end)
	if err != nil {
		return payroll.DailyWageResult{}, err
	}

	switch profile := member.Compensation.(type) {
	case staff.Hourly:
		return c.hourlyWage(profile, worked), nil
	case staff.Salaried:
		return c.salariedWage(profile, member.ScheduledHours, worked)
	default:
		return payroll.DailyWageResult{}, payroll.ErrMissingCompensationProfile
	}
}

func (c *WageCalculator) hourlyWage(profile staff.Hourly, worked float64) payroll.DailyWageResult {
	paid := worked
	if paid > payroll.BreakThresholdHours {
		paid -= payroll.UnpaidBreakHours
	}
	if paid < 0 {
		paid = 0
	}

	wage := decimal.NewFromFloat(paid).Mul(profile.HourlyRate).Round(2)
	return payroll.DailyWageResult{NominalDailyWage: wage, ActualDailyWage: wage}
}

func (c *WageCalculator) salariedWage(profile staff.Salaried, scheduled, worked float64) (payroll.DailyWageResult, error) {
	if profile.WorkingDaysPerWeek <= 0 || scheduled <= 0 {
		return payroll.DailyWageResult{}, payroll.ErrInvalidCompensationProfile
	}

	days := decimal.NewFromInt(int64(profile.WorkingDaysPerWeek))
	nominalRate := profile.NominalSalary.Div(weeksPerMonth).Div(days)
	actualRate := profile.ActualSalary.Div(weeksPerMonth).Div(days)

	if worked/scheduled < payroll.FullDayRatio {
		nominalRate = nominalRate.Mul(halfDay)
		actualRate = actualRate.Mul(halfDay)
	}

	return payroll.DailyWageResult{
		NominalDailyWage: nominalRate.Round(2),
		ActualDailyWage:  actualRate.Round(2),
	}, nil
}

package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
)

var hundred = decimal.NewFromInt(100)

// SumDaily totals the wages of confirmed entries, off-duty ones included.
// Unconfirmed entries contribute nothing.
func SumDaily(entries []payroll.Entry) payroll.DailyTotals {
	totals := payroll.DailyTotals{
		NominalPayroll: decimal.Zero,
		ActualPayroll:  decimal.Zero,
	}
	for _, e := range entries {
		if !e.Confirmed {
			continue
		}
		totals.NominalPayroll = totals.NominalPayroll.Add(e.Wage.NominalDailyWage)
		totals.ActualPayroll = totals.ActualPayroll.Add(e.Wage.ActualDailyWage)
	}
	totals.NominalPayroll = totals.NominalPayroll.Round(2)
	totals.ActualPayroll = totals.ActualPayroll.Round(2)
	return totals
}

// PayrollRatio expresses payroll as a percentage of sales, to one decimal place.
func PayrollRatio(payrollAmount, sales decimal.Decimal) payroll.Ratio {
	if sales.IsZero() {
		return payroll.Ratio{}
	}
	return payroll.Ratio{
		Value:   payrollAmount.Div(sales).Mul(hundred).Round(1),
		Defined: true,
	}
}

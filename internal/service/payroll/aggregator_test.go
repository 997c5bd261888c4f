package payroll

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wage(nominal, actual string) payroll.DailyWageResult {
	return payroll.DailyWageResult{
		NominalDailyWage: decimal.RequireFromString(nominal),
		ActualDailyWage:  decimal.RequireFromString(actual),
	}
}

func TestSumDaily_OnlyConfirmedRows(t *testing.T) {
	entries := []payroll.Entry{
		{Confirmed: true, Wage: wage("75", "75")},
		{Confirmed: true, Wage: wage("188.24", "160")},
		{Confirmed: false, Wage: wage("500", "500")},
	}

	totals := SumDaily(entries)

	assert.Equal(t, "263.24", totals.NominalPayroll.StringFixed(2))
	assert.Equal(t, "235.00", totals.ActualPayroll.StringFixed(2))
}

func TestSumDaily_OffDutyHalfDayCounts(t *testing.T) {
	entries := []payroll.Entry{
		{Confirmed: true, Wage: wage("75", "75")},
		{Confirmed: true, Wage: wage("58.82", "58.82")},
	}

	totals := SumDaily(entries)

	assert.Equal(t, "133.82", totals.NominalPayroll.StringFixed(2))
}

func TestSumDaily_EmptyIsZero(t *testing.T) {
	totals := SumDaily(nil)
	assert.True(t, totals.NominalPayroll.IsZero())
	assert.True(t, totals.ActualPayroll.IsZero())
}

func TestPayrollRatio(t *testing.T) {
	ratio := PayrollRatio(decimal.NewFromInt(250), decimal.NewFromInt(1000))
	require.True(t, ratio.Defined)
	assert.Equal(t, "25.0", ratio.String())

	ratio = PayrollRatio(decimal.RequireFromString("263.24"), decimal.NewFromInt(1200))
	assert.Equal(t, "21.9", ratio.String())

	ratio = PayrollRatio(decimal.NewFromInt(250), decimal.Zero)
	assert.False(t, ratio.Defined)
	assert.Equal(t, payroll.RatioPlaceholder, ratio.String())

	raw, err := json.Marshal(ratio)
	require.NoError(t, err)
	assert.JSONEq(t, `"-"`, string(raw))
}

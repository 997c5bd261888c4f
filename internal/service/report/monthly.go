package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	payrollsvc "github.com/sodeng/branchops-backend-go/internal/service/payroll"
)

// BuildMonthly folds a month of daily sales records into a report. The
// totals cover every record, Sundays included, while the daily lines skip
// Sundays.
func BuildMonthly(branch string, month time.Time, records []sales.DailyRecord) report.MonthlyReport {
	byDate := make(map[string]sales.DailyRecord, len(records))
	summary := report.Summary{
		Month:          month.Format(worktime.MonthLayout),
		Sales:          decimal.Zero,
		CashSales:      decimal.Zero,
		PayNowSales:    decimal.Zero,
		CashOnHand:     decimal.Zero,
		NominalPayroll: decimal.Zero,
		ActualPayroll:  decimal.Zero,
	}
	for _, rec := range records {
		byDate[rec.Date] = rec
		summary.Sales = summary.Sales.Add(rec.DailySales)
		summary.CashSales = summary.CashSales.Add(rec.CashSales)
		summary.PayNowSales = summary.PayNowSales.Add(rec.PayNowSales)
		summary.CashOnHand = summary.CashOnHand.Add(rec.CashOnHand)
		summary.NominalPayroll = summary.NominalPayroll.Add(rec.NominalPayroll)
		summary.ActualPayroll = summary.ActualPayroll.Add(rec.ActualPayroll)
		summary.RecordedDays++
	}
	summary.NominalRatio = payrollsvc.PayrollRatio(summary.NominalPayroll, summary.Sales)
	summary.ActualRatio = payrollsvc.PayrollRatio(summary.ActualPayroll, summary.Sales)

	days := worktime.MonthDates(month)
	lines := make([]report.Line, 0, len(days))
	for _, d := range days {
		rec := byDate[d.Date]
		lines = append(lines, report.Line{
			Date:           d.Date,
			Label:          d.Label,
			IsSaturday:     d.IsSaturday,
			Sales:          rec.DailySales,
			CashSales:      rec.CashSales,
			PayNowSales:    rec.PayNowSales,
			CashOnHand:     rec.CashOnHand,
			NominalPayroll: rec.NominalPayroll,
			ActualPayroll:  rec.ActualPayroll,
			NominalRatio:   payrollsvc.PayrollRatio(rec.NominalPayroll, rec.DailySales),
			ActualRatio:    payrollsvc.PayrollRatio(rec.ActualPayroll, rec.DailySales),
		})
	}

	return report.MonthlyReport{
		Branch:  branch,
		Month:   summary.Month,
		Summary: summary,
		Lines:   lines,
	}
}

var (
	summaryHeaders = []string{"Month", "Sales", "Cash", "PayNow", "Cash on Hand", "NOM Wage", "ACT Wage"}
	dailyHeaders   = []string{"Date", "Sales", "Cash", "PayNow", "Cash on Hand", "NOM Wage", "ACT Wage"}
)

// summaryCells and lineCells give the rendered columns shared by every export.
func summaryCells(summary report.Summary) []string {
	return []string{
		summary.Month,
		formatAmount(summary.Sales),
		formatAmount(summary.CashSales),
		formatAmount(summary.PayNowSales),
		formatAmount(summary.CashOnHand),
		formatWage(summary.NominalPayroll, summary.NominalRatio),
		formatWage(summary.ActualPayroll, summary.ActualRatio),
	}
}

func lineCells(line report.Line) []string {
	return []string{
		line.Label,
		formatAmount(line.Sales),
		formatAmount(line.CashSales),
		formatAmount(line.PayNowSales),
		formatAmount(line.CashOnHand),
		formatWage(line.NominalPayroll, line.NominalRatio),
		formatWage(line.ActualPayroll, line.ActualRatio),
	}
}

// formatAmount renders whole dollars, or "-" for nothing.
func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "-"
	}
	return amount.StringFixed(0) + " $"
}

// formatWage renders a payroll amount with its share of sales.
func formatWage(amount decimal.Decimal, ratio payroll.Ratio) string {
	if amount.IsZero() {
		return "-"
	}
	if !ratio.Defined {
		return formatAmount(amount)
	}
	return formatAmount(amount) + " (" + ratio.String() + "%)"
}

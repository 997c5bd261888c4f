package report

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

type MonthlyReportRequest struct {
	Branch string `json:"branch"`
	Month  string `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch is required",
		})
	}
	if _, err := worktime.ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be YYYY-MM",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Line is one calendar day of the report. Days without a stored record
// show zero amounts.
type Line struct {
	Date           string          `json:"date"`
	Label          string          `json:"label"`
	IsSaturday     bool            `json:"is_saturday"`
	Sales          decimal.Decimal `json:"sales"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	PayNowSales    decimal.Decimal `json:"pay_now_sales"`
	CashOnHand     decimal.Decimal `json:"cash_on_hand"`
	NominalPayroll decimal.Decimal `json:"nominal_payroll"`
	ActualPayroll  decimal.Decimal `json:"actual_payroll"`
	NominalRatio   payroll.Ratio   `json:"nominal_ratio"`
	ActualRatio    payroll.Ratio   `json:"actual_ratio"`
}

type Summary struct {
	Month          string          `json:"month"`
	Sales          decimal.Decimal `json:"sales"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	PayNowSales    decimal.Decimal `json:"pay_now_sales"`
	CashOnHand     decimal.Decimal `json:"cash_on_hand"`
	NominalPayroll decimal.Decimal `json:"nominal_payroll"`
	ActualPayroll  decimal.Decimal `json:"actual_payroll"`
	NominalRatio   payroll.Ratio   `json:"nominal_ratio"`
	ActualRatio    payroll.Ratio   `json:"actual_ratio"`
	RecordedDays   int             `json:"recorded_days"`
}

type MonthlyReport struct {
	Branch  string  `json:"branch"`
	Month   string  `json:"month"`
	Summary Summary `json:"summary"`
	Lines   []Line  `json:"lines"`
}

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

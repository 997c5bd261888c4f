package sales

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
)

// Input carries the sales figures typed in on the daily sheet.
type Input struct {
	DailySales  *decimal.Decimal `json:"daily_sales,omitempty"`
	CashSales   *decimal.Decimal `json:"cash_sales,omitempty"`
	PayNowSales *decimal.Decimal `json:"pay_now_sales,omitempty"`
	CashOnHand  *decimal.Decimal `json:"cash_on_hand,omitempty"`
}

func (in *Input) Validate() error {
	var errs validator.ValidationErrors

	fields := map[string]*decimal.Decimal{
		"daily_sales":   in.DailySales,
		"cash_sales":    in.CashSales,
		"pay_now_sales": in.PayNowSales,
		"cash_on_hand":  in.CashOnHand,
	}
	for name, v := range fields {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   name,
				Message: name + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Patch rounds every given figure to cents.
func (in Input) Patch(branch, date string) Patch {
	return Patch{
		Branch:      branch,
		Date:        date,
		DailySales:  roundCents(in.DailySales),
		CashSales:   roundCents(in.CashSales),
		PayNowSales: roundCents(in.PayNowSales),
		CashOnHand:  roundCents(in.CashOnHand),
	}
}

type SalesResponse struct {
	Date           string          `json:"date"`
	DailySales     decimal.Decimal `json:"daily_sales"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	PayNowSales    decimal.Decimal `json:"pay_now_sales"`
	CashOnHand     decimal.Decimal `json:"cash_on_hand"`
	NominalPayroll decimal.Decimal `json:"nominal_payroll"`
	ActualPayroll  decimal.Decimal `json:"actual_payroll"`
}

func ToResponse(r DailyRecord) SalesResponse {
	return SalesResponse{
		Date:           r.Date,
		DailySales:     r.DailySales,
		CashSales:      r.CashSales,
		PayNowSales:    r.PayNowSales,
		CashOnHand:     r.CashOnHand,
		NominalPayroll: r.NominalPayroll,
		ActualPayroll:  r.ActualPayroll,
	}
}

func roundCents(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	r := v.Round(2)
	return &r
}

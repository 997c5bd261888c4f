package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRecord holds a branch's takings and payroll sums for one date.
type DailyRecord struct {
	Branch         string
	Date           string
	DailySales     decimal.Decimal
	CashSales      decimal.Decimal
	PayNowSales    decimal.Decimal
	CashOnHand     decimal.Decimal
	NominalPayroll decimal.Decimal
	ActualPayroll  decimal.Decimal
	UpdatedAt      time.Time
}

// EmptyRecord is shown for dates with nothing stored.
func EmptyRecord(branch, date string) DailyRecord {
	return DailyRecord{Branch: branch, Date: date}
}

// Patch is a merge write. Nil fields keep their stored values.
type Patch struct {
	Branch         string
	Date           string
	DailySales     *decimal.Decimal
	CashSales      *decimal.Decimal
	PayNowSales    *decimal.Decimal
	CashOnHand     *decimal.Decimal
	NominalPayroll *decimal.Decimal
	ActualPayroll  *decimal.Decimal
}

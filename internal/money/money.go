// internal/money/money.go
//
// Fixed-precision helpers for the currency and quantity arithmetic used by
// the sale ledger and the dashboard. All amounts are rounded half-up to two
// decimal places, matching the decimal(10,2) columns.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds an amount to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// UnitPrice is amount/quantity rounded to 2dp. Quantity must be positive;
// callers validate that before recording a sale.
func UnitPrice(amount decimal.Decimal, quantity int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Profit is amount - cost*quantity rounded to 2dp. It may be negative and is
// never clamped.
func Profit(amount, cost decimal.Decimal, quantity int) decimal.Decimal {
	return amount.Sub(cost.Mul(decimal.NewFromInt(int64(quantity)))).Round(2)
}

// MarginPercent is (sale-purchase)/purchase*100 rounded to 2dp. Callers
// guard against a zero purchase price.
func MarginPercent(purchase, sale decimal.Decimal) decimal.Decimal {
	return sale.Sub(purchase).Div(purchase).Mul(hundred).Round(2)
}

// GrowthPercent is the month-over-month growth of current against previous,
// rounded to 2dp. Defined as 0 when previous is not positive: there is no
// meaningful baseline and the dashboard must never divide by zero.
func GrowthPercent(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	g := decimal.NewFromFloat(current).
		Sub(decimal.NewFromFloat(previous)).
		Div(decimal.NewFromFloat(previous)).
		Mul(hundred).
		Round(2)
	f, _ := g.Float64()
	return f
}

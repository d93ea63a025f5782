// Package shared holds the quote arithmetic shared by the sales packages.
package shared

import "github.com/shopspring/decimal"

// DefaultTaxRate is the sales tax applied when tax is enabled and no rate is configured.
const DefaultTaxRate = 0.045

// Line is the minimal view of a quote line needed for totals.
type Line struct {
	Quantity  float64
	UnitPrice float64
}

// Totals is the derived money breakdown of a quote. TaxPercent is the rate shown to the
// customer (4.5 for 4.5%), zero when tax is disabled.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	TaxPercent float64 `json:"tax"`
	TaxAmount  float64 `json:"tax_amount"`
	Total      float64 `json:"total"`
	Deposit    float64 `json:"required_deposit"`
}

// Subtotal sums quantity x unit price over all lines. Inputs are not validated here.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Quantity).Mul(decimal.NewFromFloat(l.UnitPrice)))
	}
	return sum
}

// Total applies the discount and, when enabled, the tax rate:
// (subtotal - discount) * (1 + rate), or subtotal - discount without tax.
func Total(subtotal, discount decimal.Decimal, taxEnabled bool, rate float64) decimal.Decimal {
	net := subtotal.Sub(discount)
	if !taxEnabled {
		return net
	}
	return net.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(rate)))
}

// CalculateQuoteTotals computes the full breakdown without rounding. Rounding to cents is
// a presentation concern.
func CalculateQuoteTotals(lines []Line, discount float64, taxEnabled bool, rate, deposit float64) Totals {
	subtotal := Subtotal(lines)
	disc := decimal.NewFromFloat(discount)
	total := Total(subtotal, disc, taxEnabled, rate)

	totals := Totals{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount,
		Total:    total.InexactFloat64(),
		Deposit:  deposit,
	}
	if taxEnabled {
		r := decimal.NewFromFloat(rate)
		totals.TaxPercent = r.Mul(decimal.NewFromInt(100)).InexactFloat64()
		totals.TaxAmount = subtotal.Sub(disc).Mul(r).InexactFloat64()
	}
	return totals
}

// Round2 rounds half away from zero to cents for display.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

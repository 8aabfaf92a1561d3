package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// LineTotal is the unrounded price of qty units sold at label
func LineTotal(label string, qty int) (decimal.Decimal, error) {
	unit, err := ParseDecimal(label)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(qty))), nil
}

// Savings is what qty units cost less at bulkLabel than at regularLabel
func Savings(regularLabel, bulkLabel string, qty int) (decimal.Decimal, error) {
	regular, err := ParseDecimal(regularLabel)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "regular price")
	}
	bulk, err := ParseDecimal(bulkLabel)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "bulk price")
	}
	return regular.Sub(bulk).Mul(decimal.NewFromInt(int64(qty))), nil
}

// SavingsPercent is the whole-number percentage saved per unit at the bulk price
func SavingsPercent(regularLabel, bulkLabel string) (int64, error) {
	regular, err := ParseDecimal(regularLabel)
	if err != nil {
		return 0, err
	}
	bulk, err := ParseDecimal(bulkLabel)
	if err != nil {
		return 0, err
	}
	if regular.IsZero() {
		return 0, nil
	}
	pct := regular.Sub(bulk).Div(regular).Mul(decimal.NewFromInt(100))
	return pct.Round(0).IntPart(), nil
}

// Rupees renders an amount for display. Rounding happens only here.
func Rupees(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// RupeesFloat is Rupees for callers holding a float64 total
func RupeesFloat(amount float64) string {
	return Rupees(decimal.NewFromFloat(amount))
}

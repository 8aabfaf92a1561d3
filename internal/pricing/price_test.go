package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitPrice(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"₹40/kg", 40},
		{"₹120/100g", 120},
		{"₹120/L", 120},
		{"₹20/bunch", 20},
		{"₹60/250g", 60},
		{"₹60/500g", 60},
		{"₹180/pack", 180},
		{"₹15/bottle", 15},
		{"₹5/piece", 5},
		{"₹12.50/kg", 12.5},
		{"Rs. 45/kg", 45},
		{"₹1,200/kg", 1200},
		{"40", 40},
		{"0", 0},
		{"  ₹40/kg  ", 40},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseUnitPrice(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got < 0 || math.IsInf(got, 0) || math.IsNaN(got), "want finite non-negative, got %v", got)
		})
	}
}

func TestParseUnitPriceIsIdempotentOnBareNumbers(t *testing.T) {
	first, err := ParseUnitPrice("₹37.5/kg")
	require.NoError(t, err)
	second, err := ParseUnitPrice(decimal.NewFromFloat(first).String())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseUnitPriceRejectsMalformedLabels(t *testing.T) {
	labels := []string{
		"",
		"₹",
		"₹/kg",
		"₹40/dozen",
		"₹abc/kg",
		"₹-5/kg",
		"free",
		"₹40/KG",
	}

	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			_, err := ParseUnitPrice(label)
			require.Error(t, err)
			assert.True(t, IsFormatError(err), "error %T is not a FormatError", err)
		})
	}
}

func TestUnit(t *testing.T) {
	assert.Equal(t, "kg", Unit("₹40/kg"))
	assert.Empty(t, Unit("₹40"))
}

func TestSavings(t *testing.T) {
	got, err := Savings("₹120/kg", "₹100/kg", 25)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "Savings = %s", got)

	pct, err := SavingsPercent("₹160/L", "₹140/L")
	require.NoError(t, err)
	assert.EqualValues(t, 13, pct)
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹200.00", Rupees(decimal.RequireFromString("199.999")))
	assert.Equal(t, "₹200.00", RupeesFloat(200))
}

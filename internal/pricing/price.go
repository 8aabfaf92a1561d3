// Package pricing turns catalog price labels such as "₹40/kg" into amounts.
package pricing

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// UnitSuffixes lists the unit suffixes a price label may end with
var UnitSuffixes = []string{"/kg", "/L", "/pack", "/bunch", "/100g", "/250g", "/500g", "/bottle", "/piece"}

// Rs. must precede Rs so the dot is not left behind
var currencyMarkers = []string{"₹", "Rs.", "Rs", "INR"}

// FormatError reports a price label that does not follow the catalog format.
// It always indicates bad catalog data rather than bad user input.
type FormatError struct {
	Label  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed price label %q: %s: %v", e.Label, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed price label %q: %s", e.Label, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err carries a *FormatError
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ParseUnitPrice returns the unit price encoded in label.
// A bare number without currency or unit parses to itself.
func ParseUnitPrice(label string) (float64, error) {
	d, err := ParseDecimal(label)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseDecimal is ParseUnitPrice without the conversion to float64
func ParseDecimal(label string) (decimal.Decimal, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return decimal.Zero, &FormatError{Label: label, Reason: "empty label"}
	}

	if i := strings.LastIndex(s, "/"); i >= 0 {
		if !knownSuffix(s[i:]) {
			return decimal.Zero, &FormatError{Label: label, Reason: fmt.Sprintf("unknown unit suffix %q", s[i:])}
		}
		s = strings.TrimSpace(s[:i])
	}

	for _, marker := range currencyMarkers {
		if strings.HasPrefix(s, marker) {
			s = strings.TrimSpace(strings.TrimPrefix(s, marker))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return decimal.Zero, &FormatError{Label: label, Reason: "missing amount"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &FormatError{Label: label, Reason: "amount is not a number", Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &FormatError{Label: label, Reason: "negative amount"}
	}

	return d, nil
}

// Unit returns the unit suffix of label without the slash, or "" for bare amounts
func Unit(label string) string {
	s := strings.TrimSpace(label)
	i := strings.LastIndex(s, "/")
	if i < 0 || !knownSuffix(s[i:]) {
		return ""
	}
	return s[i+1:]
}

func knownSuffix(suffix string) bool {
	for _, known := range UnitSuffixes {
		if suffix == known {
			return true
		}
	}
	return false
}

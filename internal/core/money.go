// Package core holds the domain model: transactions, money parsing, and the
// normalization arithmetic that derives net amounts from payer splits.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a locale-formatted amount string to a decimal value.
// Grouping separators (commas) and surrounding whitespace are stripped. An
// empty or unparsable string yields zero: missing money is treated as zero
// throughout the dashboard, never as an error.
//
// Examples:
//
//	ParseAmount("1,234.50") -> 1234.5
//	ParseAmount("")         -> 0
//	ParseAmount("abc")      -> 0
func ParseAmount(s string) decimal.Decimal {
	d, err := parseStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseStrict is ParseAmount without the zero fallback. Validation of
// user-entered amounts needs the error.
func parseStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

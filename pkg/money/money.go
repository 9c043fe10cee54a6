// Package money formats minor-unit integer amounts for display. All
// arithmetic elsewhere stays in int64 minor units; decimals appear only at
// the rendering edge.
package money

import (
	"github.com/shopspring/decimal"
)

// Format renders a minor-unit amount as "12.50 MDL".
func Format(minor int64, currency string) string {
	return Major(minor) + " " + currency
}

// Major renders a minor-unit amount in major units with two decimals.
func Major(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-2).StringFixed(2)
}

package domain

import "github.com/shopspring/decimal"

// RoundCurrency quantizes a monetary value to 2 fraction digits.
// decimal.Round is half-away-from-zero, which equals half-up for the
// non-negative amounts this domain produces.
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

package shipping

import (
	"github.com/shopspring/decimal"
)

// Quoter defines the pluggable shipping-rate capability. Implementations can
// integrate real carriers; the checkout core only depends on this contract.
// A nil quote with a nil error is treated as "no usable quote" by callers.
type Quoter interface {
	// Quote returns cost and lead time for shipping weightKg kilograms
	// from origin to destination (postal codes).
	Quote(origin, destination string, weightKg float64) (*Quote, error)
}

// Quote is an immutable shipping quote: a non-negative cost and a positive
// lead time in days.
type Quote struct {
	Cost         decimal.Decimal
	LeadTimeDays int
}

// NewQuote validates and builds a Quote.
func NewQuote(cost decimal.Decimal, leadTimeDays int) (Quote, error) {
	if cost.IsNegative() {
		return Quote{}, errNegativeCost
	}
	if leadTimeDays <= 0 {
		return Quote{}, errNonPositiveLeadTime
	}
	return Quote{Cost: cost, LeadTimeDays: leadTimeDays}, nil
}

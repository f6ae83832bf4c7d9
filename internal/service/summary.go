package service

import (
	"github.com/dukerupert/skuld/internal/domain"
	"github.com/dukerupert/skuld/internal/shipping"
	"github.com/shopspring/decimal"
)

// OrderSummary is the immutable computed breakdown of a cart's price.
// Invariant: Total = Gross - Promotional - Coupon + Shipping.Cost, rounded to
// 2 fraction digits, and never negative.
type OrderSummary struct {
	GrossValue          decimal.Decimal
	PromotionalDiscount decimal.Decimal
	CouponDiscount      decimal.Decimal
	Shipping            shipping.Quote
	Total               decimal.Decimal
}

func newOrderSummary(gross, promo, coupon decimal.Decimal, quote shipping.Quote) (*OrderSummary, error) {
	total := domain.RoundCurrency(gross.Sub(promo).Sub(coupon).Add(quote.Cost))
	if total.IsNegative() {
		return nil, ErrNegativeTotal
	}
	return &OrderSummary{
		GrossValue:          gross,
		PromotionalDiscount: promo,
		CouponDiscount:      coupon,
		Shipping:            quote,
		Total:               total,
	}, nil
}

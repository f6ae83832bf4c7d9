package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is an immutable time-limited percentage discount. Its code is its
// identity. The percentage range and expiry are checked on every Discount
// call, not at construction, so a coupon can be held and re-evaluated
// against a later reference date.
type Coupon struct {
	Code       string
	Percentage int
	ExpiresAt  time.Time
}

// NewCoupon builds a coupon. Validation happens in Discount.
func NewCoupon(code string, percentage int, expiresAt time.Time) Coupon {
	return Coupon{
		Code:       code,
		Percentage: percentage,
		ExpiresAt:  expiresAt,
	}
}

// Discount computes the coupon's discount on base, rounded half-up to 2
// fraction digits. Returns InvalidCouponError when the percentage is outside
// (0,100], and CouponExpiredError when reference is past the expiry date.
// Expiry has calendar-date granularity: the coupon stays valid for the whole
// of its expiry day, whatever the time of day of the reference.
func (c Coupon) Discount(base decimal.Decimal, reference time.Time) (decimal.Decimal, error) {
	if c.Percentage <= 0 || c.Percentage > 100 {
		return decimal.Zero, &InvalidCouponError{
			Message: fmt.Sprintf("invalid percentage %d for coupon %q", c.Percentage, c.Code),
		}
	}
	if dateOf(reference).After(dateOf(c.ExpiresAt)) {
		return decimal.Zero, &CouponExpiredError{
			Code:      c.Code,
			ExpiresAt: c.ExpiresAt,
			Reference: reference,
		}
	}

	pct := decimal.NewFromInt(int64(c.Percentage)).Div(decimal.NewFromInt(100))
	return RoundCurrency(base.Mul(pct)), nil
}

// dateOf strips the time-of-day component, reading the calendar date in t's
// own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

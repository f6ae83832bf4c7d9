package service

import (
	"log/slog"
	"time"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/dukerupert/skuld/internal/shipping"
	"github.com/dukerupert/skuld/internal/stock"
	"github.com/dukerupert/skuld/internal/telemetry"
	"github.com/shopspring/decimal"
)

// DefaultOriginPostalCode is used when no origin is configured.
const DefaultOriginPostalCode = "01000-000"

// couponProbeValue is the nominal base used to surface coupon validation
// errors before a coupon is attached to a cart.
var couponProbeValue = decimal.RequireFromString("1.00")

// CheckoutService orchestrates a Cart, the Stock Ledger and a Shipping Quoter.
// It owns no state of its own: carts are caller-supplied, and cart/ledger
// consistency is guaranteed only for mutations that go through this service.
type CheckoutService interface {
	// AddItem reserves quantity units on the ledger and then adds them to
	// the cart. If the cart mutation fails, the reservation is released
	// and the original error is returned unchanged.
	AddItem(cart *domain.Cart, product domain.Product, quantity int) error

	// SetQuantity sets an item's quantity to an absolute value, adjusting
	// the ledger by the delta first so reserved stock always covers the
	// cart's outstanding demand.
	SetQuantity(cart *domain.Cart, sku string, quantity int) error

	// RemoveItem releases the item's full reserved quantity and removes it
	// from the cart.
	RemoveItem(cart *domain.Cart, sku string) error

	// ApplyCoupon validates the coupon against the current date and, on
	// success, attaches it to the cart (replacing any previous coupon).
	ApplyCoupon(cart *domain.Cart, coupon domain.Coupon) error

	// ComputeSummary prices the cart: gross value, quantity-tiered
	// promotional discount, coupon discount on the discounted base, and a
	// shipping quote for the destination. Mutates nothing.
	ComputeSummary(cart *domain.Cart, destinationPostalCode string) (*OrderSummary, error)

	// Finalize computes the summary, confirms every reservation on the
	// ledger and clears the cart. On failure the cart keeps its contents.
	Finalize(cart *domain.Cart, destinationPostalCode string) (*OrderSummary, error)
}

// Config carries the collaborators and settings for NewCheckoutService.
type Config struct {
	Ledger stock.Ledger
	Quoter shipping.Quoter

	// Today supplies the reference date for coupon validation.
	// Defaults to time.Now; inject a frozen clock for determinism.
	Today func() time.Time

	// OriginPostalCode is the shipping origin. Defaults to
	// DefaultOriginPostalCode.
	OriginPostalCode string

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *telemetry.CheckoutMetrics
}

type checkoutService struct {
	ledger  stock.Ledger
	quoter  shipping.Quoter
	today   func() time.Time
	origin  string
	logger  *slog.Logger
	metrics *telemetry.CheckoutMetrics
}

// NewCheckoutService creates a CheckoutService from cfg.
func NewCheckoutService(cfg Config) (CheckoutService, error) {
	if cfg.Ledger == nil {
		return nil, ErrLedgerRequired
	}
	if cfg.Quoter == nil {
		return nil, ErrQuoterRequired
	}
	if cfg.Today == nil {
		cfg.Today = time.Now
	}
	if cfg.OriginPostalCode == "" {
		cfg.OriginPostalCode = DefaultOriginPostalCode
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &checkoutService{
		ledger:  cfg.Ledger,
		quoter:  cfg.Quoter,
		today:   cfg.Today,
		origin:  cfg.OriginPostalCode,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}

func (s *checkoutService) AddItem(cart *domain.Cart, product domain.Product, quantity int) error {
	if err := s.ledger.Reserve(product.SKU, quantity); err != nil {
		return err
	}

	if err := cart.Add(product, quantity); err != nil {
		// Compensating rollback: the reservation must never be left
		// dangling when the cart mutation fails. The original error is
		// returned unchanged.
		if releaseErr := s.ledger.Release(product.SKU, quantity); releaseErr != nil {
			s.logger.Error("failed to release reservation after cart add failure",
				slog.String("sku", product.SKU),
				slog.Int("quantity", quantity),
				slog.Any("error", releaseErr))
		}
		return err
	}

	s.metrics.ReserveRecorded(product.SKU, quantity)
	return nil
}

func (s *checkoutService) SetQuantity(cart *domain.Cart, sku string, quantity int) error {
	if quantity <= 0 {
		return domain.Invalid("checkout.set_quantity", "quantity must be positive")
	}
	item, ok := cart.Item(sku)
	if !ok {
		return domain.Errorf(domain.EINVALID, "checkout.set_quantity", "SKU %s is not in the cart", sku)
	}

	// Ledger first, in both directions: the cart must never claim more
	// than is reserved.
	delta := quantity - item.Quantity
	switch {
	case delta > 0:
		if err := s.ledger.Reserve(sku, delta); err != nil {
			return err
		}
		s.metrics.ReserveRecorded(sku, delta)
	case delta < 0:
		if err := s.ledger.Release(sku, -delta); err != nil {
			return err
		}
		s.metrics.ReleaseRecorded(sku, -delta)
	}

	return cart.SetQuantity(sku, quantity)
}

func (s *checkoutService) RemoveItem(cart *domain.Cart, sku string) error {
	item, ok := cart.Item(sku)
	if !ok {
		return domain.Errorf(domain.EINVALID, "checkout.remove_item", "SKU %s is not in the cart", sku)
	}

	if err := s.ledger.Release(sku, item.Quantity); err != nil {
		return err
	}
	s.metrics.ReleaseRecorded(sku, item.Quantity)

	return cart.Remove(sku)
}

func (s *checkoutService) ApplyCoupon(cart *domain.Cart, coupon domain.Coupon) error {
	// Probe with a nominal value so invalid or expired coupons fail fast,
	// before the coupon is attached to the cart.
	if _, err := coupon.Discount(couponProbeValue, s.today()); err != nil {
		return err
	}

	cart.ApplyCoupon(coupon)
	s.metrics.CouponRecorded(coupon.Code)
	return nil
}

func (s *checkoutService) ComputeSummary(cart *domain.Cart, destinationPostalCode string) (*OrderSummary, error) {
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	gross := cart.GrossValue()
	promo := promotionalDiscount(gross, cart.TotalQuantity())

	couponDiscount := decimal.Zero
	if coupon := cart.Coupon(); coupon != nil {
		var err error
		couponDiscount, err = coupon.Discount(gross.Sub(promo), s.today())
		if err != nil {
			return nil, err
		}
	}

	quote, err := s.quoter.Quote(s.origin, destinationPostalCode, cart.TotalWeight())
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, &shipping.UnavailableError{Destination: destinationPostalCode}
	}

	summary, err := newOrderSummary(gross, promo, couponDiscount, *quote)
	if err != nil {
		return nil, err
	}

	s.metrics.SummaryRecorded()
	return summary, nil
}

func (s *checkoutService) Finalize(cart *domain.Cart, destinationPostalCode string) (*OrderSummary, error) {
	summary, err := s.ComputeSummary(cart, destinationPostalCode)
	if err != nil {
		s.metrics.CheckoutFailedRecorded(domain.ErrorCode(err))
		return nil, err
	}

	itemCount := cart.TotalQuantity()

	// Confirms made before a failure stay confirmed: confirm represents
	// stock already physically reserved, so there is no rollback here.
	// The cart is left un-cleared so the caller sees pre-call contents.
	for _, item := range cart.Items() {
		if err := s.ledger.Confirm(item.Product.SKU, item.Quantity); err != nil {
			s.logger.Error("reservation confirm failed during finalize",
				slog.String("sku", item.Product.SKU),
				slog.Int("quantity", item.Quantity),
				slog.Any("error", err))
			s.metrics.CheckoutFailedRecorded(domain.ErrorCode(err))
			return nil, err
		}
	}

	cart.Clear()

	total, _ := summary.Total.Float64()
	s.metrics.CheckoutRecorded(total, itemCount)
	s.logger.Info("checkout finalized",
		slog.String("destination", destinationPostalCode),
		slog.String("total", summary.Total.StringFixed(2)),
		slog.Int("items", itemCount))

	return summary, nil
}

// promotionalDiscount applies the quantity-tiered automatic discount to the
// gross value, rounded half-up to 2 fraction digits.
//
//	< 3 items  0%
//	3-4 items  5%
//	5-9 items  10%
//	>= 10      15%
func promotionalDiscount(gross decimal.Decimal, totalQuantity int) decimal.Decimal {
	var pct decimal.Decimal
	switch {
	case totalQuantity >= 10:
		pct = decimal.RequireFromString("0.15")
	case totalQuantity >= 5:
		pct = decimal.RequireFromString("0.10")
	case totalQuantity >= 3:
		pct = decimal.RequireFromString("0.05")
	default:
		return decimal.Zero
	}
	return domain.RoundCurrency(gross.Mul(pct))
}

package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartItem is a cart line: a shared read-only Product reference plus a
// quantity that is always greater than zero.
type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal is unit price times quantity, rounded half-up to 2 fraction digits.
func (i *CartItem) Subtotal() decimal.Decimal {
	return RoundCurrency(i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Cart is a mutable in-memory aggregate of line items keyed by SKU, plus at
// most one applied coupon. It has no side effects on external systems;
// ledger synchronization is the checkout service's responsibility.
type Cart struct {
	items  map[string]*CartItem
	coupon *Coupon
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{items: make(map[string]*CartItem)}
}

// Add inserts qty units of product, merging with an existing line for the
// same SKU. Fails with a validation error when the product violates its
// construction invariants or qty is not positive.
func (c *Cart) Add(product Product, qty int) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return Invalid("cart.add", "quantity must be positive")
	}
	if item, ok := c.items[product.SKU]; ok {
		item.Quantity += qty
		return nil
	}
	c.items[product.SKU] = &CartItem{Product: product, Quantity: qty}
	return nil
}

// SetQuantity overwrites the quantity of an existing line (absolute set, not
// delta). Fails with a validation error when qty is not positive and with
// ItemNotFoundError when the SKU is absent.
func (c *Cart) SetQuantity(sku string, qty int) error {
	if qty <= 0 {
		return Invalid("cart.set_quantity", "quantity must be positive")
	}
	item, ok := c.items[sku]
	if !ok {
		return &ItemNotFoundError{SKU: sku}
	}
	item.Quantity = qty
	return nil
}

// Remove deletes the line for sku. Fails with ItemNotFoundError when absent.
func (c *Cart) Remove(sku string) error {
	if _, ok := c.items[sku]; !ok {
		return &ItemNotFoundError{SKU: sku}
	}
	delete(c.items, sku)
	return nil
}

// ApplyCoupon attaches a coupon, unconditionally replacing any previous one.
// Validation is the caller's responsibility.
func (c *Cart) ApplyCoupon(coupon Coupon) {
	c.coupon = &coupon
}

// Coupon returns the currently applied coupon, or nil.
func (c *Cart) Coupon() *Coupon {
	return c.coupon
}

// Item returns the line for sku, if present. The returned item is owned by
// the cart and must not be retained across mutations.
func (c *Cart) Item(sku string) (*CartItem, bool) {
	item, ok := c.items[sku]
	return item, ok
}

// Items returns a snapshot of the cart's lines ordered by SKU.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.SKU < out[j].Product.SKU })
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the cart and resets the coupon. Used after finalization.
func (c *Cart) Clear() {
	c.items = make(map[string]*CartItem)
	c.coupon = nil
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// GrossValue is the sum of line subtotals, rounded half-up to 2 fraction
// digits.
func (c *Cart) GrossValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return RoundCurrency(total)
}

// TotalWeight is the summed product weight in kilograms. Weight is not
// currency, so binary floating point is fine here.
func (c *Cart) TotalWeight() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Product.WeightKg * float64(item.Quantity)
	}
	return total
}

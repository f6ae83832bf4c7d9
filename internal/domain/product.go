package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to products created without an explicit category.
const DefaultCategory = "general"

// Product is an immutable product descriptor. The SKU is its identity.
// Price is always stored already rounded to 2 fraction digits.
// Construct via NewProduct; never build an instance by hand.
type Product struct {
	SKU      string
	Name     string
	Price    decimal.Decimal
	WeightKg float64
	Category string
	Active   bool
}

// NewProduct validates and builds a Product. The unit price is rounded
// half-up to 2 fraction digits before it is stored. An empty category
// defaults to DefaultCategory; products start active.
func NewProduct(sku, name string, price decimal.Decimal, weightKg float64, category string) (Product, error) {
	if category == "" {
		category = DefaultCategory
	}

	p := Product{
		SKU:      sku,
		Name:     name,
		Price:    RoundCurrency(price),
		WeightKg: weightKg,
		Category: category,
		Active:   true,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate checks the construction invariants. A hand-built zero value fails.
func (p Product) Validate() error {
	if p.SKU == "" {
		return Invalid("product.validate", "SKU must not be empty")
	}
	if !p.Price.IsPositive() {
		return Invalid("product.validate", "price must be positive")
	}
	if p.WeightKg <= 0 {
		return Invalid("product.validate", "weight must be positive")
	}
	return nil
}

package domain_test

import (
	"testing"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_RoundsPriceHalfUp(t *testing.T) {
	p, err := domain.NewProduct("SKU-001", "Gaming Mouse", decimal.RequireFromString("249.995"), 0.3, "")

	require.NoError(t, err)
	assert.Equal(t, "250.00", p.Price.StringFixed(2))
}

func TestNewProduct_Defaults(t *testing.T) {
	p, err := domain.NewProduct("SKU-001", "Gaming Mouse", decimal.RequireFromString("250.00"), 0.3, "")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategory, p.Category)
	assert.True(t, p.Active)
}

func TestNewProduct_KeepsExplicitCategory(t *testing.T) {
	p, err := domain.NewProduct("SKU-002", "Mechanical Keyboard", decimal.RequireFromString("650.00"), 1.1, "peripherals")

	require.NoError(t, err)
	assert.Equal(t, "peripherals", p.Category)
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name     string
		sku      string
		price    string
		weightKg float64
	}{
		{name: "empty SKU", sku: "", price: "10.00", weightKg: 1},
		{name: "zero price", sku: "SKU-001", price: "0", weightKg: 1},
		{name: "negative price", sku: "SKU-001", price: "-5.00", weightKg: 1},
		{name: "zero weight", sku: "SKU-001", price: "10.00", weightKg: 0},
		{name: "negative weight", sku: "SKU-001", price: "10.00", weightKg: -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewProduct(tt.sku, "Thing", decimal.RequireFromString(tt.price), tt.weightKg, "")

			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

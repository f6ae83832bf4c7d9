package domain_test

import (
	"testing"
	"time"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, sku, price string, weightKg float64) domain.Product {
	t.Helper()
	p, err := domain.NewProduct(sku, "Product "+sku, decimal.RequireFromString(price), weightKg, "")
	require.NoError(t, err)
	return p
}

func TestCart_Add_MergesSameSKU(t *testing.T) {
	cart := domain.NewCart()
	p := mustProduct(t, "SKU-001", "250.00", 0.3)

	require.NoError(t, cart.Add(p, 2))
	require.NoError(t, cart.Add(p, 3))

	item, ok := cart.Item("SKU-001")
	require.True(t, ok)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, cart.TotalQuantity())
}

func TestCart_Add_RejectsNonPositiveQuantity(t *testing.T) {
	cart := domain.NewCart()
	p := mustProduct(t, "SKU-001", "250.00", 0.3)

	for _, qty := range []int{0, -1} {
		err := cart.Add(p, qty)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
	assert.True(t, cart.IsEmpty())
}

func TestCart_Add_RejectsInvalidProduct(t *testing.T) {
	cart := domain.NewCart()

	for name, p := range map[string]domain.Product{
		"zero value": {},
		"no price":   {SKU: "SKU-001", Name: "Premium Mouse", WeightKg: 0.3},
	} {
		err := cart.Add(p, 1)
		require.Error(t, err, "product with %s must be rejected", name)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
	assert.True(t, cart.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := domain.NewCart()
	p := mustProduct(t, "SKU-001", "250.00", 0.3)
	require.NoError(t, cart.Add(p, 5))

	require.NoError(t, cart.SetQuantity("SKU-001", 2))

	item, _ := cart.Item("SKU-001")
	assert.Equal(t, 2, item.Quantity)
}

func TestCart_SetQuantity_UnknownSKU(t *testing.T) {
	cart := domain.NewCart()

	err := cart.SetQuantity("SKU-404", 2)

	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "SKU-404", notFound.SKU)
}

func TestCart_SetQuantity_NonPositive(t *testing.T) {
	cart := domain.NewCart()
	p := mustProduct(t, "SKU-001", "250.00", 0.3)
	require.NoError(t, cart.Add(p, 5))

	err := cart.SetQuantity("SKU-001", 0)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	item, _ := cart.Item("SKU-001")
	assert.Equal(t, 5, item.Quantity, "failed set must not mutate the line")
}

func TestCart_Remove(t *testing.T) {
	cart := domain.NewCart()
	p := mustProduct(t, "SKU-001", "250.00", 0.3)
	require.NoError(t, cart.Add(p, 1))

	require.NoError(t, cart.Remove("SKU-001"))
	assert.True(t, cart.IsEmpty())

	err := cart.Remove("SKU-001")
	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCart_DerivedTotals(t *testing.T) {
	cart := domain.NewCart()
	require.NoError(t, cart.Add(mustProduct(t, "SKU-001", "250.00", 0.3), 3))
	require.NoError(t, cart.Add(mustProduct(t, "SKU-002", "650.00", 1.1), 2))

	assert.Equal(t, 5, cart.TotalQuantity())
	assert.Equal(t, "2050.00", cart.GrossValue().StringFixed(2))
	assert.InDelta(t, 3.1, cart.TotalWeight(), 1e-9)
}

func TestCart_GrossValue_RoundsSubtotals(t *testing.T) {
	cart := domain.NewCart()
	require.NoError(t, cart.Add(mustProduct(t, "SKU-001", "5200.00", 2.8), 3))

	assert.Equal(t, "15600.00", cart.GrossValue().StringFixed(2))
}

func TestCart_ApplyCoupon_ReplacesPrevious(t *testing.T) {
	cart := domain.NewCart()
	expiry := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	cart.ApplyCoupon(domain.NewCoupon("FIRST", 5, expiry))
	cart.ApplyCoupon(domain.NewCoupon("SECOND", 10, expiry))

	require.NotNil(t, cart.Coupon())
	assert.Equal(t, "SECOND", cart.Coupon().Code)
}

func TestCart_Clear_ResetsItemsAndCoupon(t *testing.T) {
	cart := domain.NewCart()
	require.NoError(t, cart.Add(mustProduct(t, "SKU-001", "250.00", 0.3), 1))
	cart.ApplyCoupon(domain.NewCoupon("PROMO10", 10, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.Coupon())
}

func TestCart_Items_SortedBySKU(t *testing.T) {
	cart := domain.NewCart()
	require.NoError(t, cart.Add(mustProduct(t, "SKU-002", "650.00", 1.1), 1))
	require.NoError(t, cart.Add(mustProduct(t, "SKU-001", "250.00", 0.3), 1))

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "SKU-001", items[0].Product.SKU)
	assert.Equal(t, "SKU-002", items[1].Product.SKU)
}

package stock_test

import (
	"testing"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/dukerupert/skuld/internal/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RegisterAndReserve(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))

	require.NoError(t, ledger.Reserve("SKU-001", 4))

	assert.Equal(t, 6, ledger.AvailableQuantity("SKU-001"))
	assert.Equal(t, stock.Levels{Available: 6, Reserved: 4}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Register_Overwrites(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))
	require.NoError(t, ledger.Reserve("SKU-001", 3))

	require.NoError(t, ledger.Register("SKU-001", 5))

	assert.Equal(t, stock.Levels{Available: 5, Reserved: 0}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Register_RejectsNegative(t *testing.T) {
	ledger := stock.NewInMemoryLedger()

	err := ledger.Register("SKU-001", -1)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestLedger_Reserve_InsufficientStock(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 3))

	err := ledger.Reserve("SKU-001", 5)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "SKU-001", stockErr.SKU)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)
	// Rejected call must not partially mutate.
	assert.Equal(t, stock.Levels{Available: 3, Reserved: 0}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Reserve_UnknownSKU(t *testing.T) {
	ledger := stock.NewInMemoryLedger()

	err := ledger.Reserve("SKU-404", 1)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
}

func TestLedger_Release_UndoesReservation(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))
	require.NoError(t, ledger.Reserve("SKU-001", 4))

	require.NoError(t, ledger.Release("SKU-001", 3))

	assert.Equal(t, stock.Levels{Available: 9, Reserved: 1}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Release_MoreThanReserved(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))
	require.NoError(t, ledger.Reserve("SKU-001", 2))

	err := ledger.Release("SKU-001", 3)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, stock.Levels{Available: 8, Reserved: 2}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Confirm_ConsumesReservedOnly(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))
	require.NoError(t, ledger.Reserve("SKU-001", 4))

	require.NoError(t, ledger.Confirm("SKU-001", 4))

	assert.Equal(t, stock.Levels{Available: 6, Reserved: 0}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_Confirm_MoreThanReserved(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))
	require.NoError(t, ledger.Reserve("SKU-001", 2))

	err := ledger.Confirm("SKU-001", 3)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestLedger_NonPositiveQuantities(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 10))

	for _, op := range []func(string, int) error{ledger.Reserve, ledger.Release, ledger.Confirm} {
		for _, qty := range []int{0, -2} {
			err := op("SKU-001", qty)
			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		}
	}
	assert.Equal(t, stock.Levels{Available: 10, Reserved: 0}, ledger.Snapshot()["SKU-001"])
}

func TestLedger_AvailableQuantity_UnknownSKU(t *testing.T) {
	ledger := stock.NewInMemoryLedger()

	assert.Equal(t, 0, ledger.AvailableQuantity("SKU-404"))
}

// available + reserved must be conserved across any reserve/release sequence.
func TestLedger_ConservationAcrossReserveRelease(t *testing.T) {
	ledger := stock.NewInMemoryLedger()
	require.NoError(t, ledger.Register("SKU-001", 25))

	steps := []struct {
		op  func(string, int) error
		qty int
	}{
		{ledger.Reserve, 5},
		{ledger.Reserve, 7},
		{ledger.Release, 3},
		{ledger.Reserve, 10},
		{ledger.Release, 9},
		{ledger.Reserve, 1},
	}

	for _, s := range steps {
		require.NoError(t, s.op("SKU-001", s.qty))
		levels := ledger.Snapshot()["SKU-001"]
		assert.Equal(t, 25, levels.Available+levels.Reserved)
	}
}

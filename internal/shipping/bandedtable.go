package shipping

import (
	"github.com/dukerupert/skuld/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultLeadTimeBase is the lead-time floor in days used when no base is
// configured.
const DefaultLeadTimeBase = 3

var (
	baseCost    = decimal.RequireFromString("12.50")
	perBandCost = decimal.RequireFromString("4.80")
)

// BandedTableQuoter is a deterministic weight-banded rate table. It exists
// for integration testing and local use when no carrier is wired; it is not
// part of the checkout core's hard logic.
type BandedTableQuoter struct {
	leadTimeBase int
}

// NewBandedTableQuoter creates a banded-table quoter. A non-positive
// leadTimeBase falls back to DefaultLeadTimeBase.
func NewBandedTableQuoter(leadTimeBase int) *BandedTableQuoter {
	if leadTimeBase <= 0 {
		leadTimeBase = DefaultLeadTimeBase
	}
	return &BandedTableQuoter{leadTimeBase: leadTimeBase}
}

// Quote prices the shipment as base cost plus a per-band surcharge, with a
// lead time that grows with weight. Non-positive weight has no usable quote.
func (q *BandedTableQuoter) Quote(origin, destination string, weightKg float64) (*Quote, error) {
	if weightKg <= 0 {
		return nil, &UnavailableError{Destination: destination}
	}

	band := weightBand(weightKg)
	cost := domain.RoundCurrency(baseCost.Add(decimal.NewFromInt(int64(band)).Mul(perBandCost)))

	extraDays := int(weightKg / 5)
	if extraDays < 1 {
		extraDays = 1
	}

	quote, err := NewQuote(cost, q.leadTimeBase+extraDays)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func weightBand(weightKg float64) int {
	switch {
	case weightKg <= 3:
		return 1
	case weightKg <= 10:
		return 2
	case weightKg <= 20:
		return 3
	default:
		return 4
	}
}

package stock

import (
	"sync"

	"github.com/dukerupert/skuld/internal/domain"
)

// Ledger tracks available versus reserved quantity per SKU and exposes the
// reservation state machine: available moves to reserved on Reserve, back on
// Release, and leaves the ledger permanently on Confirm. Every mutating call
// re-validates its preconditions before touching state; a rejected call
// leaves the entry untouched.
type Ledger interface {
	// Register (re)initializes the entry for sku with the given available
	// quantity and zero reserved. Idempotent overwrite, no merge.
	Register(sku string, quantity int) error

	// Reserve moves quantity units from available to reserved.
	Reserve(sku string, quantity int) error

	// Release moves quantity units from reserved back to available,
	// undoing a prior reservation.
	Release(sku string, quantity int) error

	// Confirm permanently consumes quantity reserved units. Available is
	// unaffected; it was already decremented at reserve time.
	Confirm(sku string, quantity int) error

	// AvailableQuantity returns the current available count, or 0 for an
	// unknown SKU. Never fails.
	AvailableQuantity(sku string) int
}

// Levels is a point-in-time view of one ledger entry.
type Levels struct {
	Available int
	Reserved  int
}

type entry struct {
	available int
	reserved  int
}

// InMemoryLedger is the in-process Ledger implementation. Safe for
// concurrent use; each call holds the ledger lock for its full
// validate-then-mutate sequence.
type InMemoryLedger struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewInMemoryLedger creates an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{entries: make(map[string]*entry)}
}

func (l *InMemoryLedger) Register(sku string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity < 0 {
		return domain.Invalid("stock.register", "registered quantity must be non-negative")
	}
	l.entries[sku] = &entry{available: quantity}
	return nil
}

func (l *InMemoryLedger) Reserve(sku string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return domain.Invalid("stock.reserve", "quantity must be positive")
	}
	e, ok := l.entries[sku]
	if !ok {
		return &domain.InsufficientStockError{SKU: sku, Requested: quantity, Available: 0}
	}
	if e.available < quantity {
		return &domain.InsufficientStockError{SKU: sku, Requested: quantity, Available: e.available}
	}
	e.available -= quantity
	e.reserved += quantity
	return nil
}

func (l *InMemoryLedger) Release(sku string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return domain.Invalid("stock.release", "quantity must be positive")
	}
	e, ok := l.entries[sku]
	if !ok || e.reserved < quantity {
		return &domain.InsufficientStockError{SKU: sku, Requested: quantity, Available: 0}
	}
	e.available += quantity
	e.reserved -= quantity
	return nil
}

func (l *InMemoryLedger) Confirm(sku string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return domain.Invalid("stock.confirm", "quantity must be positive")
	}
	e, ok := l.entries[sku]
	if !ok || e.reserved < quantity {
		return &domain.InsufficientStockError{SKU: sku, Requested: quantity, Available: 0}
	}
	e.reserved -= quantity
	return nil
}

func (l *InMemoryLedger) AvailableQuantity(sku string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[sku]
	if !ok {
		return 0
	}
	return e.available
}

// Snapshot returns the current available/reserved levels per SKU. Useful for
// integration tests inspecting ledger state.
func (l *InMemoryLedger) Snapshot() map[string]Levels {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]Levels, len(l.entries))
	for sku, e := range l.entries {
		out[sku] = Levels{Available: e.available, Reserved: e.reserved}
	}
	return out
}

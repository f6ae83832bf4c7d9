package shipping

import (
	"fmt"

	"github.com/dukerupert/skuld/internal/domain"
)

var (
	errNegativeCost        = domain.Invalid("shipping.quote", "shipping cost must not be negative")
	errNonPositiveLeadTime = domain.Invalid("shipping.quote", "lead time must be positive")
)

// UnavailableError is returned when no usable quote exists for a destination,
// including nonsensical zero or negative weight.
type UnavailableError struct {
	Destination string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("no shipping quote available for destination %s", e.Destination)
}

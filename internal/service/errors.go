package service

import (
	"github.com/dukerupert/skuld/internal/domain"
)

// Checkout validation errors - use domain.EINVALID
var (
	ErrCartEmpty     = domain.Errorf(domain.EINVALID, "", "Cart is empty")
	ErrNegativeTotal = domain.Errorf(domain.EINVALID, "", "Order total cannot be negative")
)

// Construction errors
var (
	ErrLedgerRequired = domain.Errorf(domain.EINVALID, "", "Stock ledger is required")
	ErrQuoterRequired = domain.Errorf(domain.EINVALID, "", "Shipping quoter is required")
)

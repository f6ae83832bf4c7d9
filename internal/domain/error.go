package domain

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
// These map to HTTP status codes in adapters and determine user-facing messages.
const (
	ECONFLICT = "conflict"  // 409 - Resource state conflict (insufficient stock, etc.)
	EINTERNAL = "internal"  // 500 - Internal error (hide details)
	EINVALID  = "invalid"   // 400 - Validation error (bad input)
	ENOTFOUND = "not_found" // 404 - Resource not found
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ENOTFOUND).
	Code string

	// Message is a human-readable error message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "checkout.add_item").
	// Used for debugging and logging, not shown to users.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALID, "product.new", "invalid weight: %v", w)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Invalid creates a validation error for a single issue.
// Example: domain.Invalid("cart.add", "quantity must be positive")
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// =============================================================================
// CHECKOUT ERROR TAXONOMY
// =============================================================================
//
// Each kind below carries the structured fields callers need for programmatic
// handling, not just human text. ErrorCode understands all of them.

// InsufficientStockError is returned by ledger reserve/release/confirm when a
// precondition on available or reserved stock is violated.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for SKU %s: requested %d, available %d",
		e.SKU, e.Requested, e.Available)
}

// ItemNotFoundError is returned by cart update/remove operations when the SKU
// is not present in the cart.
type ItemNotFoundError struct {
	SKU string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item with SKU %s is not in the cart", e.SKU)
}

// CouponExpiredError is returned by coupon discount computation when the
// reference date is past the coupon's expiry date.
type CouponExpiredError struct {
	Code      string
	ExpiresAt time.Time
	Reference time.Time
}

func (e *CouponExpiredError) Error() string {
	return fmt.Sprintf("coupon %s expired on %s (reference date %s)",
		e.Code, e.ExpiresAt.Format("2006-01-02"), e.Reference.Format("2006-01-02"))
}

// InvalidCouponError is returned when a coupon's percentage is outside (0,100].
type InvalidCouponError struct {
	Message string
}

func (e *InvalidCouponError) Error() string {
	return e.Message
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or unrecognized errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return ECONFLICT
	}

	var notFoundErr *ItemNotFoundError
	if errors.As(err, &notFoundErr) {
		return ENOTFOUND
	}

	var expiredErr *CouponExpiredError
	if errors.As(err, &expiredErr) {
		return EINVALID
	}

	var couponErr *InvalidCouponError
	if errors.As(err, &couponErr) {
		return EINVALID
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if ErrorCode(err) == EINTERNAL {
		return "An internal error occurred. Please try again later."
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Package apperr defines the sentinel error kinds the services return.
// Controllers match with errors.Is and map kinds to HTTP statuses, so
// no handler ever string-compares error text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")

	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrCouponBelowMin     = errors.New("order amount below coupon minimum")

	ErrPaymentVerification = errors.New("payment verification failed")
)

// Wrap attaches context to a kind while keeping errors.Is working.
func Wrap(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

package services

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrUnknownCoupon   = errors.New("unknown coupon code")
	ErrInvalidMobile   = errors.New("mobile number must be 10 digits")
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrInvalidRole     = errors.New("role must be vendor or supplier")
	ErrForbidden       = errors.New("supplier login required")
	ErrOrderNotPending = errors.New("order was already decided")
	ErrInvalidStatus   = errors.New("status must be pending, accepted or rejected")
)

// InsufficientStockError is returned when accepting an order would take an
// item's stock below zero
type InsufficientStockError struct {
	ItemID    int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("item %d: %d requested, %d in stock", e.ItemID, e.Requested, e.Available)
}

// InvalidQuantityError rejects a non-positive or below-minimum quantity.
// Quantities are never clamped.
type InvalidQuantityError struct {
	Quantity int
	Minimum  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be at least %d", e.Quantity, e.Minimum)
}

// MinimumOrderError is returned when a coupon's minimum order is not met
type MinimumOrderError struct {
	Code     string
	MinOrder float64
	Subtotal float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("coupon %s needs a minimum order of %.2f, cart subtotal is %.2f", e.Code, e.MinOrder, e.Subtotal)
}

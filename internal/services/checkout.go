package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// AnonymousVendor owns orders placed from carts that were never logged in
const AnonymousVendor = "anonymous"

// Quote is the payable breakdown of a cart
type Quote struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Coupon    string          `json:"coupon,omitempty"`
	ItemCount int             `json:"item_count"`
}

// CheckoutService turns a cart into a paid, recorded order
type CheckoutService struct {
	coupons *CouponBook
	payment PaymentGateway
	history OrderHistory
	logger  *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(coupons *CouponBook, payment PaymentGateway, history OrderHistory, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		coupons: coupons,
		payment: payment,
		history: history,
		logger:  logger,
	}
}

// Quote prices the cart as it stands, including any applied coupon
func (s *CheckoutService) Quote(cart *CartStore) (Quote, error) {
	return s.quote(cart.Lines(), cart.Coupon())
}

func (s *CheckoutService) quote(lines []models.CartLine, coupon string) (Quote, error) {
	sub, err := subtotal(lines)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Subtotal: sub, Discount: decimal.Zero, Total: sub, Coupon: coupon}
	for _, line := range lines {
		q.ItemCount += line.Quantity
	}
	if coupon == "" {
		return q, nil
	}

	discount, _, err := s.coupons.Discount(coupon, sub)
	if err != nil {
		return Quote{}, err
	}
	q.Discount = discount
	q.Total = sub.Sub(discount)
	return q, nil
}

// Checkout charges the cart total and records the order. The cart is locked
// for the whole call. A declined payment leaves the cart as it was.
func (s *CheckoutService) Checkout(ctx context.Context, cart *CartStore) (models.Order, error) {
	vendorID := cart.VendorID()
	if vendorID == "" {
		vendorID = AnonymousVendor
	}

	var order models.Order
	err := cart.Settle(func(lines []models.CartLine, coupon string) error {
		q, err := s.quote(lines, coupon)
		if err != nil {
			return err
		}

		orderID := uuid.NewString()
		ok, err := s.payment.Pay(ctx, orderID, q.Total)
		if err != nil {
			return errors.Wrap(err, "payment")
		}
		if !ok {
			return ErrPaymentDeclined
		}

		order = models.Order{
			ID:       orderID,
			VendorID: vendorID,
			Lines:    lines,
			Subtotal: q.Subtotal.InexactFloat64(),
			Discount: q.Discount.InexactFloat64(),
			Total:    q.Total.InexactFloat64(),
			Coupon:   coupon,
			Status:   models.OrderPending,
			PlacedAt: time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("checkout failed",
			zap.String("cart_id", cart.ID()),
			zap.Error(err))
		return models.Order{}, err
	}

	if err := s.history.Record(ctx, order); err != nil {
		// a paid order stands even when history is unavailable
		s.logger.Error("failed to record order",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("vendor_id", vendorID),
		zap.Float64("total", order.Total))
	return order, nil
}

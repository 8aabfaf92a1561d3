package services

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
)

var hundred = decimal.NewFromInt(100)

// CouponBook is the fixed set of redeemable coupon codes
type CouponBook struct {
	coupons []models.Coupon
	byCode  map[string]models.Coupon
}

// NewCouponBook indexes coupons by upper-cased code
func NewCouponBook(coupons []models.Coupon) *CouponBook {
	b := &CouponBook{
		coupons: coupons,
		byCode:  make(map[string]models.Coupon, len(coupons)),
	}
	for _, c := range coupons {
		b.byCode[strings.ToUpper(c.Code)] = c
	}
	return b
}

// All lists the coupons in table order
func (b *CouponBook) All() []models.Coupon {
	out := make([]models.Coupon, len(b.coupons))
	copy(out, b.coupons)
	return out
}

// Lookup finds a coupon by code, ignoring case
func (b *CouponBook) Lookup(code string) (models.Coupon, error) {
	c, ok := b.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.Coupon{}, errors.Wrapf(ErrUnknownCoupon, "code %q", code)
	}
	return c, nil
}

// Discount computes how much code takes off subtotal.
// Flat discounts never exceed the subtotal; cashback is credited later and
// does not reduce the payable amount.
func (b *CouponBook) Discount(code string, subtotal decimal.Decimal) (decimal.Decimal, models.Coupon, error) {
	c, err := b.Lookup(code)
	if err != nil {
		return decimal.Zero, models.Coupon{}, err
	}

	minOrder := decimal.NewFromFloat(c.MinOrder)
	if subtotal.LessThan(minOrder) {
		sub, _ := subtotal.Float64()
		return decimal.Zero, c, &MinimumOrderError{Code: c.Code, MinOrder: c.MinOrder, Subtotal: sub}
	}

	value := decimal.NewFromFloat(c.Value)
	switch c.Kind {
	case models.CouponFlat:
		return decimal.Min(value, subtotal), c, nil
	case models.CouponPercentage:
		return subtotal.Mul(value).Div(hundred), c, nil
	case models.CouponCashback:
		return decimal.Zero, c, nil
	default:
		return decimal.Zero, c, errors.Errorf("coupon %s: unknown kind %q", c.Code, c.Kind)
	}
}

// ApplyToCart validates code against the cart's current subtotal and records it.
// A later call replaces the previous coupon.
func (b *CouponBook) ApplyToCart(cart *CartStore, code string) (decimal.Decimal, models.Coupon, error) {
	subtotal, err := cart.Subtotal()
	if err != nil {
		return decimal.Zero, models.Coupon{}, err
	}
	discount, c, err := b.Discount(code, subtotal)
	if err != nil {
		return decimal.Zero, c, err
	}
	cart.SetCoupon(c.Code)
	return discount, c, nil
}

// BulkService adds items at their bulk price
type BulkService struct {
	catalog *catalog.Catalog
}

// NewBulkService creates a bulk ordering service over c's bulk offers
func NewBulkService(c *catalog.Catalog) *BulkService {
	return &BulkService{catalog: c}
}

// Offers lists the bulk offers
func (s *BulkService) Offers() []models.BulkOffer {
	return s.catalog.BulkOffers()
}

// BulkQuote is the price breakdown of a bulk purchase
type BulkQuote struct {
	Offer          models.BulkOffer `json:"offer"`
	Quantity       int              `json:"quantity"`
	Total          decimal.Decimal  `json:"total"`
	Savings        decimal.Decimal  `json:"savings"`
	SavingsPercent int64            `json:"savings_percent"`
}

// Quote prices qty units of itemID at the bulk rate
func (s *BulkService) Quote(itemID, qty int) (BulkQuote, error) {
	offer, ok := s.catalog.BulkOffer(itemID)
	if !ok {
		return BulkQuote{}, errors.Wrapf(catalog.ErrItemNotFound, "no bulk offer for item %d", itemID)
	}
	if qty < offer.MinQuantity {
		return BulkQuote{}, &InvalidQuantityError{Quantity: qty, Minimum: offer.MinQuantity}
	}

	total, err := pricing.LineTotal(offer.BulkPriceLabel, qty)
	if err != nil {
		return BulkQuote{}, err
	}
	savings, err := pricing.Savings(offer.Item.PriceLabel, offer.BulkPriceLabel, qty)
	if err != nil {
		return BulkQuote{}, err
	}
	pct, err := pricing.SavingsPercent(offer.Item.PriceLabel, offer.BulkPriceLabel)
	if err != nil {
		return BulkQuote{}, err
	}

	return BulkQuote{
		Offer:          offer,
		Quantity:       qty,
		Total:          total,
		Savings:        savings,
		SavingsPercent: pct,
	}, nil
}

// AddToCart quotes the purchase and adds it to cart as a bulk-priced line
func (s *BulkService) AddToCart(cart *CartStore, itemID, qty int) (BulkQuote, error) {
	quote, err := s.Quote(itemID, qty)
	if err != nil {
		return BulkQuote{}, err
	}

	item := quote.Offer.Item
	err = cart.AddLine(models.CartLine{
		ID:            item.ID,
		NameLocal:     item.NameLocal,
		NameEn:        item.NameEn,
		PriceLabel:    quote.Offer.BulkPriceLabel,
		Quantity:      qty,
		DiscountLabel: fmt.Sprintf("%d%% bulk", quote.SavingsPercent),

		RegularPriceLabel: item.PriceLabel,
		BulkMinimum:       quote.Offer.MinQuantity,
	})
	if err != nil {
		return BulkQuote{}, err
	}
	return quote, nil
}

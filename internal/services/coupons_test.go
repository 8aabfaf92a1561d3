package services

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
)

func TestCouponBook_Discount(t *testing.T) {
	book := NewCouponBook(catalog.DefaultCoupons())

	tests := []struct {
		name     string
		code     string
		subtotal int64
		want     int64
	}{
		{"flat", "FIRST50", 300, 50},
		{"flat lower case", "first50", 200, 50},
		{"percentage", "BULK20", 1500, 300},
		{"weather percentage", "WEATHER15", 400, 60},
		{"cashback does not reduce", "REFER100", 80, 0},
		{"voice flat", "VOICE25", 150, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := book.Discount(tt.code, decimal.NewFromInt(tt.subtotal))
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "expected %d, got %s", tt.want, got)
		})
	}
}

func TestCouponBook_Errors(t *testing.T) {
	book := NewCouponBook(catalog.DefaultCoupons())

	_, _, err := book.Discount("NOPE", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrUnknownCoupon)

	_, _, err = book.Discount("BULK20", decimal.NewFromInt(999))
	var minErr *MinimumOrderError
	require.True(t, errors.As(err, &minErr))
	assert.Equal(t, "BULK20", minErr.Code)
	assert.Equal(t, 1000.0, minErr.MinOrder)
	assert.Equal(t, 999.0, minErr.Subtotal)
}

func TestCouponBook_ApplyToCartReplaces(t *testing.T) {
	book := NewCouponBook(catalog.DefaultCoupons())
	cart := NewCartStore("s1")
	require.NoError(t, cart.AddItem(tomatoes, 10))

	discount, _, err := book.ApplyToCart(cart, "first50")
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "FIRST50", cart.Coupon())

	_, _, err = book.ApplyToCart(cart, "WEATHER15")
	require.NoError(t, err)
	assert.Equal(t, "WEATHER15", cart.Coupon())

	_, _, err = book.ApplyToCart(cart, "BULK20")
	require.Error(t, err)
	assert.Equal(t, "WEATHER15", cart.Coupon(), "failed apply keeps the previous coupon")
}

func TestBulkService(t *testing.T) {
	bulk := NewBulkService(catalog.Default())
	assert.Len(t, bulk.Offers(), 6)

	_, err := bulk.Quote(55, 49)
	var qerr *InvalidQuantityError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, 50, qerr.Minimum)

	_, err = bulk.Quote(1, 100)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)

	cart := NewCartStore("s1")
	quote, err := bulk.AddToCart(cart, 50, 25)
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(2500)))
	assert.True(t, quote.Savings.Equal(decimal.NewFromInt(500)))
	assert.EqualValues(t, 17, quote.SavingsPercent)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "₹100/kg", lines[0].PriceLabel)
	assert.Equal(t, "17% bulk", lines[0].DiscountLabel)
	assert.Equal(t, 25, lines[0].Quantity)
}

func TestBulkService_ShrinkBelowMinimumRestoresRegularPrice(t *testing.T) {
	bulk := NewBulkService(catalog.Default())
	cart := NewCartStore("s1")
	_, err := bulk.AddToCart(cart, 50, 25)
	require.NoError(t, err)

	// still at the minimum, bulk price holds
	cart.UpdateQuantity(50, 30)
	cart.UpdateQuantity(50, 25)
	total, err := cart.Subtotal()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(2500)), total.String())

	cart.UpdateQuantity(50, 1)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "₹120/kg", lines[0].PriceLabel)
	assert.Empty(t, lines[0].DiscountLabel)
	assert.Zero(t, lines[0].BulkMinimum)

	total, err = cart.Subtotal()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(120)), total.String())

	// growing back does not silently re-apply the bulk rate
	cart.UpdateQuantity(50, 25)
	total, err = cart.Subtotal()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(3000)), total.String())
}

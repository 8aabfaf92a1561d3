package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/models"
)

func newSupplier(t *testing.T) (*SupplierService, *MemoryHistory, *Inventory) {
	t.Helper()
	h := NewMemoryHistory()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: "o1", VendorID: "v1", PlacedAt: base, Lines: []models.CartLine{
			{ID: 2, NameEn: "Onions", PriceLabel: "₹30/kg", Quantity: 20},
			{ID: 24, NameEn: "Milk", PriceLabel: "₹55/L", Quantity: 4},
		}},
		{ID: "o2", VendorID: "v2", PlacedAt: base.Add(time.Hour), Lines: []models.CartLine{
			{ID: 3, NameEn: "Potatoes", PriceLabel: "₹25/kg", Quantity: 6},
		}},
		{ID: "o3", VendorID: "v2", PlacedAt: base.Add(2 * time.Hour), Lines: []models.CartLine{
			{ID: 2, NameEn: "Onions", PriceLabel: "₹30/kg", Quantity: 1},
			{ID: 3, NameEn: "Potatoes", PriceLabel: "₹25/kg", Quantity: 2},
		}},
	}
	for _, o := range orders {
		require.NoError(t, h.Record(ctx, o))
	}

	inv := NewInventory(catalog.Default(), map[int]int{1: 0, 2: 150, 3: 5})
	return NewSupplierService(h, inv, nil), h, inv
}

func TestInventory_List(t *testing.T) {
	inv := NewInventory(catalog.Default(), map[int]int{3: 5, 2: 150, 1: 0, 9999: 3})

	items := inv.List()
	require.Len(t, items, 3, "unknown catalog ids are skipped")
	assert.Equal(t, 1, items[0].Item.ID)
	assert.Equal(t, models.StockOut, items[0].Status)
	assert.Equal(t, models.StockAvailable, items[1].Status)
	assert.Equal(t, "kg", items[1].Unit)
	assert.Equal(t, models.StockLow, items[2].Status)
}

func TestInventory_TakeIsAllOrNothing(t *testing.T) {
	inv := NewInventory(catalog.Default(), map[int]int{2: 10, 3: 5})

	err := inv.Take([]models.CartLine{{ID: 2, Quantity: 4}, {ID: 3, Quantity: 3}, {ID: 3, Quantity: 3}})
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.ItemID)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	qty, _ := inv.Stock(2)
	assert.Equal(t, 10, qty, "nothing is taken when one line is short")

	require.NoError(t, inv.Take([]models.CartLine{{ID: 2, Quantity: 10}, {ID: 24, Quantity: 100}}))
	qty, _ = inv.Stock(2)
	assert.Zero(t, qty)
	_, tracked := inv.Stock(24)
	assert.False(t, tracked)
}

func TestSupplierService_Incoming(t *testing.T) {
	s, _, _ := newSupplier(t)
	ctx := context.Background()

	orders, err := s.Incoming(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "o3", orders[0].ID, "newest first")
	for _, o := range orders {
		assert.Equal(t, models.OrderPending, o.Status)
	}

	orders, err = s.Incoming(ctx, models.OrderPending, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = s.Incoming(ctx, "shipped", 0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSupplierService_AcceptAndReject(t *testing.T) {
	s, h, inv := newSupplier(t)
	ctx := context.Background()

	order, err := s.Accept(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, order.Status)
	qty, _ := inv.Stock(2)
	assert.Equal(t, 130, qty)

	stored, err := h.Order(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, stored.Status)

	_, err = s.Accept(ctx, "o1")
	assert.ErrorIs(t, err, ErrOrderNotPending)
	_, err = s.Reject(ctx, "o1")
	assert.ErrorIs(t, err, ErrOrderNotPending)

	// six potatoes against five in stock
	_, err = s.Accept(ctx, "o2")
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	stored, err = h.Order(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status, "a short order stays pending")

	order, err = s.Reject(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderRejected, order.Status)
	qty, _ = inv.Stock(3)
	assert.Equal(t, 5, qty, "rejecting leaves stock alone")

	pending, err := s.Incoming(ctx, models.OrderPending, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "o3", pending[0].ID)

	_, err = s.Accept(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSupplierService_Demand(t *testing.T) {
	s, _, _ := newSupplier(t)

	trends, err := s.Demand(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	assert.Equal(t, 2, trends[0].Item.ID, "ties go to the lower id")
	assert.Equal(t, 2, trends[0].OrderCount)
	assert.Equal(t, 2, trends[0].Vendors)
	assert.Equal(t, models.DemandMedium, trends[0].Level)

	assert.Equal(t, 3, trends[1].Item.ID)
	assert.Equal(t, 1, trends[1].Vendors)

	assert.Equal(t, 24, trends[2].Item.ID)
	assert.Equal(t, models.DemandLow, trends[2].Level)
}

func TestDemandLevel(t *testing.T) {
	tests := []struct {
		orders int
		want   models.DemandLevel
	}{
		{0, models.DemandLow},
		{1, models.DemandLow},
		{2, models.DemandMedium},
		{5, models.DemandHigh},
		{9, models.DemandHigh},
		{10, models.DemandVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, demandLevel(tt.orders), "orders=%d", tt.orders)
	}
}

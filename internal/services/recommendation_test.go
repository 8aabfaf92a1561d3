package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

func seedHistory(t *testing.T) *MemoryHistory {
	t.Helper()
	h := NewMemoryHistory()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: "o1", VendorID: "v1", PlacedAt: base, Lines: []models.CartLine{
			{ID: 1, NameLocal: "टमाटर", NameEn: "Tomatoes", PriceLabel: "₹40/kg", Quantity: 2},
			{ID: 17, NameLocal: "तेल", NameEn: "Cooking Oil", PriceLabel: "₹120/L", Quantity: 1},
		}},
		{ID: "o2", VendorID: "v1", PlacedAt: base.Add(time.Hour), Lines: []models.CartLine{
			{ID: 17, NameLocal: "तेल", NameEn: "Cooking Oil", PriceLabel: "₹120/L", Quantity: 2},
		}},
		{ID: "o3", VendorID: "v2", PlacedAt: base.Add(2 * time.Hour), Lines: []models.CartLine{
			{ID: 3, NameLocal: "आलू", NameEn: "Potatoes", PriceLabel: "₹25/kg", Quantity: 5},
		}},
	}
	for _, o := range orders {
		require.NoError(t, h.Record(ctx, o))
	}
	return h
}

func TestMemoryHistory(t *testing.T) {
	h := seedHistory(t)
	ctx := context.Background()

	assert.Error(t, h.Record(ctx, models.Order{ID: "o1", VendorID: "v1"}), "duplicate order id")

	recent, err := h.Recent(ctx, "v1", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "o2", recent[0].ID)

	frequent, err := h.Frequent(ctx, "v1", 0)
	require.NoError(t, err)
	require.Len(t, frequent, 2)
	assert.Equal(t, 17, frequent[0].Item.ID)
	assert.Equal(t, 2, frequent[0].OrderCount)
	assert.Equal(t, 1, frequent[1].Item.ID)

	_, err = h.Order(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryHistory_FrequentTiesByItemID(t *testing.T) {
	h := NewMemoryHistory()
	ctx := context.Background()
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	// item 17 is ordered first but loses the tie to the lower id
	require.NoError(t, h.Record(ctx, models.Order{ID: "o1", VendorID: "v1", PlacedAt: base, Lines: []models.CartLine{
		{ID: 17, NameEn: "Cooking Oil", PriceLabel: "₹120/L", Quantity: 1},
	}}))
	require.NoError(t, h.Record(ctx, models.Order{ID: "o2", VendorID: "v1", PlacedAt: base.Add(time.Hour), Lines: []models.CartLine{
		{ID: 3, NameEn: "Potatoes", PriceLabel: "₹25/kg", Quantity: 1},
		{ID: 1, NameEn: "Tomatoes", PriceLabel: "₹40/kg", Quantity: 1},
		{ID: 17, NameEn: "Cooking Oil", PriceLabel: "₹120/L", Quantity: 1},
	}}))
	require.NoError(t, h.Record(ctx, models.Order{ID: "o3", VendorID: "v1", PlacedAt: base.Add(2 * time.Hour), Lines: []models.CartLine{
		{ID: 3, NameEn: "Potatoes", PriceLabel: "₹25/kg", Quantity: 1},
	}}))

	frequent, err := h.Frequent(ctx, "v1", 0)
	require.NoError(t, err)
	got := make([]int, 0, len(frequent))
	for _, fi := range frequent {
		got = append(got, fi.Item.ID)
	}
	assert.Equal(t, []int{3, 17, 1}, got)

	frequent, err = h.Frequent(ctx, "v1", 1)
	require.NoError(t, err)
	require.Len(t, frequent, 1)
	assert.Equal(t, 3, frequent[0].Item.ID)
}

func TestRecommendationService_Suggestions(t *testing.T) {
	svc := NewRecommendationService(seedHistory(t), nil)

	cart := NewCartStore("s1")
	require.NoError(t, cart.AddItem(models.CatalogItem{ID: 17, NameLocal: "तेल", NameEn: "Cooking Oil", PriceLabel: "₹120/L"}, 1))

	got, err := svc.Suggestions(context.Background(), "v1", cart, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Item.ID)
	assert.Equal(t, "You've ordered this 1 times", got[0].Explanation.En)
}

func TestRecommendationService_Reorder(t *testing.T) {
	svc := NewRecommendationService(seedHistory(t), nil)
	ctx := context.Background()

	cart := NewCartStore("s1")
	cart.bind("v1", nil)
	require.NoError(t, cart.AddItem(tomatoes, 1))

	_, err := svc.Reorder(ctx, cart, "o1")
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItemCount())

	_, err = svc.Reorder(ctx, cart, "o3")
	assert.ErrorIs(t, err, ErrOrderNotFound, "orders of other vendors are hidden")
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()

	for _, item := range c.All() {
		_, err := pricing.ParseUnitPrice(item.PriceLabel)
		assert.NoError(t, err, "item %d price %q", item.ID, item.PriceLabel)
	}

	for _, id := range WeatherSuggestionIDs {
		_, err := c.Get(id)
		assert.NoError(t, err, "weather suggestion %d", id)
	}

	assert.Len(t, c.VoiceItems(), 16)
}

func TestNewRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item models.CatalogItem
	}{
		{"zero id", models.CatalogItem{ID: 0, NameLocal: "क", NameEn: "K", PriceLabel: "₹1/kg"}},
		{"missing local name", models.CatalogItem{ID: 1, NameEn: "K", PriceLabel: "₹1/kg"}},
		{"missing english name", models.CatalogItem{ID: 1, NameLocal: "क", PriceLabel: "₹1/kg"}},
		{"bad price", models.CatalogItem{ID: 1, NameLocal: "क", NameEn: "K", PriceLabel: "₹1/dozen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]models.CatalogItem{tt.item}, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewRejectsDuplicatesAndDanglingAliases(t *testing.T) {
	item := models.CatalogItem{ID: 1, NameLocal: "क", NameEn: "K", PriceLabel: "₹1/kg"}

	_, err := New([]models.CatalogItem{item, item}, nil)
	assert.Error(t, err, "duplicate id")

	_, err = New([]models.CatalogItem{item}, map[int][]string{2: {"x"}})
	assert.Error(t, err, "unknown alias target")
}

func TestKeywordsAreNormalized(t *testing.T) {
	c, err := New([]models.CatalogItem{
		{ID: 1, NameLocal: "क", NameEn: "K", PriceLabel: "₹1/kg", Keywords: []string{" Onion ", ""}},
	}, map[int][]string{1: {"PYAZ"}})
	require.NoError(t, err)

	item, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"onion"}, item.Keywords)
	assert.Equal(t, []string{"pyaz"}, c.Aliases(1))
}

func TestGetUnknown(t *testing.T) {
	_, err := Default().Get(9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSearchAndCategories(t *testing.T) {
	c := Default()

	assert.Len(t, c.Search("masala"), 2)

	hits := c.Search("पनीर")
	require.Len(t, hits, 1)
	assert.Equal(t, 26, hits[0].ID)

	assert.Len(t, c.ByCategory("dairy"), 4)

	cats := c.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "bulk", cats[0])
}

func TestBulkOffers(t *testing.T) {
	c := Default()
	require.Len(t, c.BulkOffers(), 6)

	offer, ok := c.BulkOffer(55)
	require.True(t, ok, "onion bulk offer")
	assert.Equal(t, 50, offer.MinQuantity)
	assert.Equal(t, "₹28/kg", offer.BulkPriceLabel)

	_, ok = c.BulkOffer(1)
	assert.False(t, ok, "tomatoes have no bulk offer")
}

func TestDefaultStock(t *testing.T) {
	c := Default()
	stock := DefaultStock()
	require.NotEmpty(t, stock)

	for id, qty := range stock {
		_, err := c.Get(id)
		assert.NoError(t, err, "stock for unknown item %d", id)
		assert.GreaterOrEqual(t, qty, 0)
	}

	stock[2] = -1
	assert.Equal(t, 150, DefaultStock()[2], "callers get a copy")
}

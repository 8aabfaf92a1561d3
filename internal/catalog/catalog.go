// Package catalog holds the read-only reference list of purchasable items.
package catalog

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"

	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
)

// ErrItemNotFound is returned when an id is not in the catalog
var ErrItemNotFound = errors.New("catalog item not found")

// Catalog is an immutable, validated set of catalog items
type Catalog struct {
	items   []models.CatalogItem
	byID    map[int]int
	aliases map[int][]string
}

// New validates items and builds a catalog from them.
// aliases maps an item id to phonetic spellings used by voice matching.
func New(items []models.CatalogItem, aliases map[int][]string) (*Catalog, error) {
	c := &Catalog{
		items:   make([]models.CatalogItem, 0, len(items)),
		byID:    make(map[int]int, len(items)),
		aliases: make(map[int][]string, len(aliases)),
	}

	for _, item := range items {
		if err := validate(item); err != nil {
			return nil, err
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, errors.Errorf("catalog item %d: duplicate id", item.ID)
		}
		item.Keywords = normalizeKeywords(item.Keywords)
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	for id, spellings := range aliases {
		if _, ok := c.byID[id]; !ok {
			return nil, errors.Errorf("phonetic aliases for unknown item %d", id)
		}
		c.aliases[id] = normalizeKeywords(spellings)
	}

	return c, nil
}

func validate(item models.CatalogItem) error {
	if item.ID <= 0 {
		return errors.Errorf("catalog item %d: id must be positive", item.ID)
	}
	if strings.TrimSpace(item.NameLocal) == "" {
		return errors.Errorf("catalog item %d: missing local name", item.ID)
	}
	if strings.TrimSpace(item.NameEn) == "" {
		return errors.Errorf("catalog item %d: missing english name", item.ID)
	}
	if _, err := pricing.ParseUnitPrice(item.PriceLabel); err != nil {
		return errors.Errorf("catalog item %d: %w", item.ID, err)
	}
	return nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// All returns every item in load order
func (c *Catalog) All() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an item by id
func (c *Catalog) Get(id int) (models.CatalogItem, error) {
	idx, ok := c.byID[id]
	if !ok {
		return models.CatalogItem{}, errors.Wrapf(ErrItemNotFound, "id %d", id)
	}
	return c.items[idx], nil
}

// ByCategory returns the items in category, in load order
func (c *Catalog) ByCategory(category string) []models.CatalogItem {
	var out []models.CatalogItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Search returns items whose name in either locale contains query
func (c *Catalog) Search(query string) []models.CatalogItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	var out []models.CatalogItem
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.NameEn), q) || strings.Contains(item.NameLocal, q) {
			out = append(out, item)
		}
	}
	return out
}

// VoiceItems returns the items that carry a keyword set
func (c *Catalog) VoiceItems() []models.CatalogItem {
	var out []models.CatalogItem
	for _, item := range c.items {
		if len(item.Keywords) > 0 {
			out = append(out, item)
		}
	}
	return out
}

// Aliases returns the phonetic spellings registered for an item
func (c *Catalog) Aliases(id int) []string {
	return c.aliases[id]
}

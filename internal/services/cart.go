package services

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
)

// CartStore holds the lines of one cart session.
// Every method is safe for concurrent use; each mutation runs under the cart's lock.
type CartStore struct {
	mu       sync.Mutex
	id       string
	vendorID string
	lines    []models.CartLine
	coupon   string
	onChange func(models.CartSnapshot)
}

// NewCartStore creates an empty cart with the given session id
func NewCartStore(id string) *CartStore {
	return &CartStore{id: id}
}

// ID returns the cart's session id
func (c *CartStore) ID() string {
	return c.id
}

// VendorID returns the vendor the cart belongs to, empty for anonymous carts
func (c *CartStore) VendorID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vendorID
}

// AddItem adds qty units of item, merging into an existing line for the same id
func (c *CartStore) AddItem(item models.CatalogItem, qty int) error {
	return c.AddLine(models.CartLine{
		ID:         item.ID,
		NameLocal:  item.NameLocal,
		NameEn:     item.NameEn,
		PriceLabel: item.PriceLabel,
		Quantity:   qty,
	})
}

// AddLine is AddItem for callers that need a custom price or discount label.
// When the id is already in the cart only the quantity changes.
func (c *CartStore) AddLine(line models.CartLine) error {
	if line.Quantity < 1 {
		return &InvalidQuantityError{Quantity: line.Quantity, Minimum: 1}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(line.ID); idx >= 0 {
		c.lines[idx].Quantity += line.Quantity
	} else {
		c.lines = append(c.lines, line)
	}
	c.changed()
	return nil
}

// UpdateQuantity sets the quantity of line id. A quantity of zero or less
// removes the line. Unknown ids are ignored, since stale UI state is expected.
func (c *CartStore) UpdateQuantity(id, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	if qty <= 0 {
		c.removeAt(idx)
	} else {
		line := &c.lines[idx]
		line.Quantity = qty
		if line.BulkMinimum > 0 && qty < line.BulkMinimum {
			line.PriceLabel = line.RegularPriceLabel
			line.DiscountLabel = ""
			line.RegularPriceLabel = ""
			line.BulkMinimum = 0
		}
	}
	c.changed()
}

// RemoveItem deletes line id if present
func (c *CartStore) RemoveItem(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(id); idx >= 0 {
		c.removeAt(idx)
		c.changed()
	}
}

// Clear empties the cart and drops any applied coupon
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.coupon = ""
	c.changed()
}

// SetDiscountLabel attaches a display-only discount label to line id
func (c *CartStore) SetDiscountLabel(id int, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(id); idx >= 0 {
		c.lines[idx].DiscountLabel = label
		c.changed()
	}
}

// SetCoupon records the coupon code applied to the cart; "" removes it
func (c *CartStore) SetCoupon(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.coupon = code
	c.changed()
}

// Coupon returns the applied coupon code
func (c *CartStore) Coupon() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coupon
}

// Subtotal is the exact sum of unit price times quantity over all lines
func (c *CartStore) Subtotal() (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return subtotal(c.lines)
}

// TotalAmount is Subtotal as a float64. It is never rounded; rounding
// belongs to presentation.
func (c *CartStore) TotalAmount() (float64, error) {
	total, err := c.Subtotal()
	if err != nil {
		return 0, err
	}
	f, _ := total.Float64()
	return f, nil
}

// TotalItemCount sums the quantities of all lines
func (c *CartStore) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart lines in insertion order
func (c *CartStore) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyLines(c.lines)
}

// Snapshot captures the cart for persistence
func (c *CartStore) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Restore replaces the cart contents with a persisted snapshot.
// Lines with a non-positive quantity are dropped.
func (c *CartStore) Restore(snap models.CartSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	for _, line := range snap.Lines {
		if line.Quantity > 0 {
			c.lines = append(c.lines, line)
		}
	}
	c.vendorID = snap.VendorID
	c.coupon = snap.CouponCode
}

// Settle runs fn against the current lines and coupon while holding the
// cart's lock, and empties the cart if fn succeeds. No other call on this
// cart can interleave with fn.
func (c *CartStore) Settle(fn func(lines []models.CartLine, coupon string) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return ErrEmptyCart
	}
	if err := fn(copyLines(c.lines), c.coupon); err != nil {
		return err
	}
	c.lines = nil
	c.coupon = ""
	c.changed()
	return nil
}

func (c *CartStore) bind(vendorID string, onChange func(models.CartSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vendorID = vendorID
	c.onChange = onChange
}

func (c *CartStore) indexOf(id int) int {
	for i, line := range c.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (c *CartStore) removeAt(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// detach stops snapshot writes; later mutations stay in memory only
func (c *CartStore) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = nil
}

// changed must be called with c.mu held so snapshots reach the hook in mutation order
func (c *CartStore) changed() {
	if c.onChange != nil {
		c.onChange(c.snapshot())
	}
}

func (c *CartStore) snapshot() models.CartSnapshot {
	return models.CartSnapshot{
		SessionID:  c.id,
		VendorID:   c.vendorID,
		Lines:      copyLines(c.lines),
		CouponCode: c.coupon,
		UpdatedAt:  time.Now().UTC(),
	}
}

func subtotal(lines []models.CartLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		lineTotal, err := pricing.LineTotal(line.PriceLabel, line.Quantity)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "line %d", line.ID)
		}
		total = total.Add(lineTotal)
	}
	return total, nil
}

func copyLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

package services

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// OrderHistory stores placed orders per vendor.
// Incoming and Demand look across every vendor and feed the supplier side.
type OrderHistory interface {
	Record(ctx context.Context, order models.Order) error
	Order(ctx context.Context, orderID string) (models.Order, error)
	Recent(ctx context.Context, vendorID string, limit int) ([]models.Order, error)
	Frequent(ctx context.Context, vendorID string, limit int) ([]models.FrequentItem, error)

	// Incoming lists orders of any vendor, newest first. An empty status lists all.
	Incoming(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error)
	SetStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	// Demand ranks items by how many orders of any vendor contained them
	Demand(ctx context.Context, limit int) ([]models.DemandTrend, error)
}

// MemoryHistory is an OrderHistory kept in process memory
type MemoryHistory struct {
	mu       sync.RWMutex
	orders   map[string]models.Order
	byVendor map[string][]string
	all      []string
}

// NewMemoryHistory creates an empty in-memory order history
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		orders:   make(map[string]models.Order),
		byVendor: make(map[string][]string),
	}
}

func (h *MemoryHistory) Record(_ context.Context, order models.Order) error {
	if order.ID == "" {
		return errors.New("order id is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.orders[order.ID]; exists {
		return errors.Errorf("order %s already recorded", order.ID)
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	order.Lines = copyLines(order.Lines)
	h.orders[order.ID] = order
	h.byVendor[order.VendorID] = append(h.byVendor[order.VendorID], order.ID)
	h.all = append(h.all, order.ID)
	return nil
}

func (h *MemoryHistory) Order(_ context.Context, orderID string) (models.Order, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	order, ok := h.orders[orderID]
	if !ok {
		return models.Order{}, errors.Wrapf(ErrOrderNotFound, "id %s", orderID)
	}
	order.Lines = copyLines(order.Lines)
	return order, nil
}

// Recent returns the vendor's orders, newest first
func (h *MemoryHistory) Recent(_ context.Context, vendorID string, limit int) ([]models.Order, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := h.byVendor[vendorID]
	out := make([]models.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		order := h.orders[ids[i]]
		order.Lines = copyLines(order.Lines)
		out = append(out, order)
	}
	return out, nil
}

// Frequent ranks items by the number of the vendor's orders that contain them.
// Ties go to the lower item id.
func (h *MemoryHistory) Frequent(_ context.Context, vendorID string, limit int) ([]models.FrequentItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[int]*models.FrequentItem)
	for _, id := range h.byVendor[vendorID] {
		for _, line := range h.orders[id].Lines {
			fi, ok := counts[line.ID]
			if !ok {
				fi = &models.FrequentItem{Item: models.CatalogItem{
					ID:         line.ID,
					NameLocal:  line.NameLocal,
					NameEn:     line.NameEn,
					PriceLabel: line.PriceLabel,
				}}
				counts[line.ID] = fi
			}
			fi.OrderCount++
		}
	}

	out := make([]models.FrequentItem, 0, len(counts))
	for _, fi := range counts {
		out = append(out, *fi)
	}
	// same order as the graph query: count descending, then item id
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (h *MemoryHistory) Incoming(_ context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.Order, 0)
	for i := len(h.all) - 1; i >= 0; i-- {
		order := h.orders[h.all[i]]
		if status != "" && order.Status != status {
			continue
		}
		order.Lines = copyLines(order.Lines)
		out = append(out, order)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlacedAt.After(out[j].PlacedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (h *MemoryHistory) SetStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, ok := h.orders[orderID]
	if !ok {
		return errors.Wrapf(ErrOrderNotFound, "id %s", orderID)
	}
	order.Status = status
	h.orders[orderID] = order
	return nil
}

func (h *MemoryHistory) Demand(_ context.Context, limit int) ([]models.DemandTrend, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	trends := make(map[int]*models.DemandTrend)
	vendors := make(map[int]map[string]struct{})
	for _, id := range h.all {
		order := h.orders[id]
		for _, line := range order.Lines {
			dt, ok := trends[line.ID]
			if !ok {
				dt = &models.DemandTrend{Item: models.CatalogItem{
					ID:         line.ID,
					NameLocal:  line.NameLocal,
					NameEn:     line.NameEn,
					PriceLabel: line.PriceLabel,
				}}
				trends[line.ID] = dt
				vendors[line.ID] = make(map[string]struct{})
			}
			dt.OrderCount++
			vendors[line.ID][order.VendorID] = struct{}{}
		}
	}

	out := make([]models.DemandTrend, 0, len(trends))
	for id, dt := range trends {
		dt.Vendors = len(vendors[id])
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

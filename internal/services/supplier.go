package services

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
)

// Order counts at which an item's demand moves up a level
const (
	demandMediumAt   = 2
	demandHighAt     = 5
	demandVeryHighAt = 10
)

// Inventory is the supplier's stock on hand. Items without an entry are not
// tracked and never block an order.
type Inventory struct {
	catalog *catalog.Catalog

	mu    sync.Mutex
	stock map[int]int
}

// NewInventory creates an inventory seeded with stock, keyed by catalog id
func NewInventory(c *catalog.Catalog, stock map[int]int) *Inventory {
	inv := &Inventory{catalog: c, stock: make(map[int]int, len(stock))}
	for id, qty := range stock {
		inv.stock[id] = qty
	}
	return inv
}

// List returns every tracked item ordered by catalog id
func (inv *Inventory) List() []models.StockItem {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]models.StockItem, 0, len(inv.stock))
	for id, qty := range inv.stock {
		item, err := inv.catalog.Get(id)
		if err != nil {
			continue
		}
		out = append(out, models.StockItem{
			Item:   item,
			Stock:  qty,
			Unit:   pricing.Unit(item.PriceLabel),
			Status: models.StockLevel(qty),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item.ID < out[j].Item.ID })
	return out
}

// Stock returns the level of one item and whether it is tracked
func (inv *Inventory) Stock(itemID int) (int, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	qty, ok := inv.stock[itemID]
	return qty, ok
}

// Take removes every line's quantity from stock, or nothing if any tracked
// line is short
func (inv *Inventory) Take(lines []models.CartLine) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	need := make(map[int]int)
	for _, line := range lines {
		if _, ok := inv.stock[line.ID]; ok {
			need[line.ID] += line.Quantity
		}
	}
	for id, qty := range need {
		if have := inv.stock[id]; qty > have {
			return &InsufficientStockError{ItemID: id, Requested: qty, Available: have}
		}
	}
	for id, qty := range need {
		inv.stock[id] -= qty
	}
	return nil
}

// Put returns the lines' quantities to stock
func (inv *Inventory) Put(lines []models.CartLine) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, line := range lines {
		if _, ok := inv.stock[line.ID]; ok {
			inv.stock[line.ID] += line.Quantity
		}
	}
}

// SupplierService is the supplier's side of the marketplace: deciding on
// incoming vendor orders, watching stock and reading demand.
type SupplierService struct {
	history   OrderHistory
	inventory *Inventory
	logger    *zap.Logger

	// serializes decisions so an order is accepted or rejected once
	mu sync.Mutex
}

// NewSupplierService creates a supplier service over history and inventory
func NewSupplierService(history OrderHistory, inventory *Inventory, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{
		history:   history,
		inventory: inventory,
		logger:    logger,
	}
}

// Incoming lists vendor orders, newest first. An empty status lists every order.
func (s *SupplierService) Incoming(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, errors.Wrapf(ErrInvalidStatus, "status %q", status)
	}
	orders, err := s.history.Incoming(ctx, status, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get incoming orders")
	}
	return orders, nil
}

// Accept takes the order's items out of stock and marks it accepted
func (s *SupplierService) Accept(ctx context.Context, orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pending(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.inventory.Take(order.Lines); err != nil {
		return models.Order{}, err
	}
	if err := s.history.SetStatus(ctx, orderID, models.OrderAccepted); err != nil {
		s.inventory.Put(order.Lines)
		return models.Order{}, errors.Wrap(err, "failed to accept order")
	}
	order.Status = models.OrderAccepted

	s.logger.Info("order accepted",
		zap.String("order_id", orderID),
		zap.String("vendor_id", order.VendorID))
	return order, nil
}

// Reject marks a pending order rejected; stock is untouched
func (s *SupplierService) Reject(ctx context.Context, orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pending(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.history.SetStatus(ctx, orderID, models.OrderRejected); err != nil {
		return models.Order{}, errors.Wrap(err, "failed to reject order")
	}
	order.Status = models.OrderRejected

	s.logger.Info("order rejected",
		zap.String("order_id", orderID),
		zap.String("vendor_id", order.VendorID))
	return order, nil
}

// Inventory lists the tracked stock
func (s *SupplierService) Inventory() []models.StockItem {
	return s.inventory.List()
}

// Demand ranks items by how often vendors order them and labels each level
func (s *SupplierService) Demand(ctx context.Context, limit int) ([]models.DemandTrend, error) {
	trends, err := s.history.Demand(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get demand trends")
	}
	for i := range trends {
		trends[i].Level = demandLevel(trends[i].OrderCount)
	}
	return trends, nil
}

func (s *SupplierService) pending(ctx context.Context, orderID string) (models.Order, error) {
	order, err := s.history.Order(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderPending {
		return models.Order{}, errors.Wrapf(ErrOrderNotPending, "order %s is %s", orderID, order.Status)
	}
	return order, nil
}

func demandLevel(orders int) models.DemandLevel {
	switch {
	case orders >= demandVeryHighAt:
		return models.DemandVeryHigh
	case orders >= demandHighAt:
		return models.DemandHigh
	case orders >= demandMediumAt:
		return models.DemandMedium
	default:
		return models.DemandLow
	}
}

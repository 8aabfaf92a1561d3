package models

// OrderStatus tracks a supplier's decision on a placed order
type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderRejected:
		return true
	}
	return false
}

// StockStatus buckets a stock level for display
type StockStatus string

const (
	StockAvailable StockStatus = "available"
	StockLow       StockStatus = "low"
	StockOut       StockStatus = "out"
)

// LowStockThreshold is the level at or below which stock counts as low
const LowStockThreshold = 10

// StockLevel buckets quantity
func StockLevel(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

// StockItem is one row of the supplier's inventory
type StockItem struct {
	Item   CatalogItem `json:"item"`
	Stock  int         `json:"stock"`
	Unit   string      `json:"unit"`
	Status StockStatus `json:"status"`
}

// DemandLevel classifies how much an item is being ordered
type DemandLevel string

const (
	DemandLow      DemandLevel = "low"
	DemandMedium   DemandLevel = "medium"
	DemandHigh     DemandLevel = "high"
	DemandVeryHigh DemandLevel = "very_high"
)

// DemandTrend aggregates how often an item was ordered across all vendors
type DemandTrend struct {
	Item       CatalogItem `json:"item"`
	OrderCount int         `json:"order_count"`
	Vendors    int         `json:"vendors"`
	Level      DemandLevel `json:"level"`
}

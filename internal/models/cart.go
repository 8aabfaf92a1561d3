package models

import "time"

// CartLine is one distinct catalog item in a cart with its aggregated quantity
type CartLine struct {
	ID            int    `json:"id"`
	NameLocal     string `json:"name"`
	NameEn        string `json:"name_en"`
	PriceLabel    string `json:"price"`
	Quantity      int    `json:"quantity"`
	DiscountLabel string `json:"discount,omitempty"`

	// Bulk lines remember the catalog price and fall back to it once the
	// quantity drops below BulkMinimum
	RegularPriceLabel string `json:"regular_price,omitempty"`
	BulkMinimum       int    `json:"bulk_minimum,omitempty"`
}

// CartSnapshot is the persisted form of a cart
type CartSnapshot struct {
	SessionID  string     `json:"session_id"`
	VendorID   string     `json:"vendor_id,omitempty"`
	Lines      []CartLine `json:"lines"`
	CouponCode string     `json:"coupon,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Role distinguishes the two kinds of marketplace users
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// User represents a verified marketplace user
type User struct {
	ID       string `json:"id"`
	Mobile   string `json:"mobile"`
	Role     Role   `json:"type"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
}

// Order represents a placed and paid cart
type Order struct {
	ID       string      `json:"id"`
	VendorID string      `json:"vendor_id"`
	Lines    []CartLine  `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Discount float64     `json:"discount"`
	Total    float64     `json:"total"`
	Coupon   string      `json:"coupon,omitempty"`
	Status   OrderStatus `json:"status"`
	PlacedAt time.Time   `json:"placed_at"`
}

// FrequentItem is an item ranked by how many orders contained it
type FrequentItem struct {
	Item       CatalogItem `json:"item"`
	OrderCount int         `json:"order_count"`
}

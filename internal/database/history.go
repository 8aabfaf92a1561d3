package database

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

// maxHistory caps listings requested without a limit
const maxHistory = 1000

// OrderHistory keeps placed orders in the graph:
//
//	(:Vendor)-[:PLACED]->(:Order)-[:CONTAINS {quantity}]->(:Item)
//	(:Vendor)-[:HAS_ORDERED {times}]->(:Item)
//
// HAS_ORDERED.times counts the orders that contained the item. Order.status
// holds the supplier's decision and starts out pending.
type OrderHistory struct {
	client *Neo4jClient
}

var _ services.OrderHistory = (*OrderHistory)(nil)

// NewOrderHistory creates a graph-backed order history
func NewOrderHistory(client *Neo4jClient) *OrderHistory {
	return &OrderHistory{client: client}
}

func (h *OrderHistory) Record(ctx context.Context, order models.Order) error {
	createOrder := `
		MERGE (v:Vendor {id: $vendorId})
		CREATE (o:Order {
			id: $orderId,
			subtotal: $subtotal,
			discount: $discount,
			total: $total,
			coupon: $coupon,
			status: $status,
			placed_at: $placedAt
		})
		CREATE (v)-[:PLACED]->(o)
	`
	addLines := `
		MATCH (v:Vendor {id: $vendorId})-[:PLACED]->(o:Order {id: $orderId})
		UNWIND $lines AS line
		MERGE (i:Item {db_id: line.id})
			ON CREATE SET i.name = line.name, i.name_en = line.name_en, i.price = line.price
		CREATE (o)-[:CONTAINS {
			position: line.position,
			quantity: line.quantity,
			price: line.price,
			discount: line.discount
		}]->(i)
		MERGE (v)-[ho:HAS_ORDERED]->(i)
		SET ho.times = COALESCE(ho.times, 0) + 1
	`

	lines := make([]map[string]any, 0, len(order.Lines))
	for pos, line := range order.Lines {
		lines = append(lines, map[string]any{
			"position": int64(pos),
			"id":       int64(line.ID),
			"name":     line.NameLocal,
			"name_en":  line.NameEn,
			"price":    line.PriceLabel,
			"quantity": int64(line.Quantity),
			"discount": line.DiscountLabel,
		})
	}
	status := order.Status
	if status == "" {
		status = models.OrderPending
	}
	params := map[string]any{
		"vendorId": order.VendorID,
		"orderId":  order.ID,
		"subtotal": order.Subtotal,
		"discount": order.Discount,
		"total":    order.Total,
		"coupon":   order.Coupon,
		"status":   string(status),
		"placedAt": order.PlacedAt.UnixMilli(),
		"lines":    lines,
	}

	err := h.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) error {
		if _, err := tx.Run(ctx, createOrder, params); err != nil {
			return err
		}
		_, err := tx.Run(ctx, addLines, params)
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "failed to record order %s", order.ID)
	}
	return nil
}

const orderProjection = `
		OPTIONAL MATCH (o)-[c:CONTAINS]->(i:Item)
		WITH v, o, c, i ORDER BY c.position
		RETURN v.id AS vendor_id,
			   o.id AS id,
			   o.subtotal AS subtotal,
			   o.discount AS discount,
			   o.total AS total,
			   o.coupon AS coupon,
			   o.status AS status,
			   o.placed_at AS placed_at,
			   collect({
				   id: i.db_id,
				   name: i.name,
				   name_en: i.name_en,
				   price: c.price,
				   quantity: c.quantity,
				   discount: c.discount
			   }) AS lines
		ORDER BY placed_at DESC
`

func (h *OrderHistory) Order(ctx context.Context, orderID string) (models.Order, error) {
	query := `
		MATCH (v:Vendor)-[:PLACED]->(o:Order {id: $orderId})
	` + orderProjection

	results, err := h.client.ExecuteRead(ctx, query, map[string]any{"orderId": orderID})
	if err != nil {
		return models.Order{}, errors.Wrap(err, "failed to get order")
	}
	if len(results) == 0 {
		return models.Order{}, errors.Wrapf(services.ErrOrderNotFound, "id %s", orderID)
	}
	return decodeOrder(results[0]), nil
}

// Recent returns the vendor's orders, newest first
func (h *OrderHistory) Recent(ctx context.Context, vendorID string, limit int) ([]models.Order, error) {
	query := `
		MATCH (v:Vendor {id: $vendorId})-[:PLACED]->(o:Order)
		WITH v, o ORDER BY o.placed_at DESC LIMIT $limit
	` + orderProjection

	results, err := h.client.ExecuteRead(ctx, query, map[string]any{
		"vendorId": vendorID,
		"limit":    capLimit(limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent orders")
	}

	orders := make([]models.Order, 0, len(results))
	for _, result := range results {
		orders = append(orders, decodeOrder(result))
	}
	return orders, nil
}

// Frequent answers: "What does a vendor generally order most frequently?"
func (h *OrderHistory) Frequent(ctx context.Context, vendorID string, limit int) ([]models.FrequentItem, error) {
	query := `
		MATCH (v:Vendor {id: $vendorId})-[ho:HAS_ORDERED]->(i:Item)
		RETURN i.db_id AS item_id,
			   i.name AS name,
			   i.name_en AS name_en,
			   i.price AS price,
			   i.category AS category,
			   ho.times AS times
		ORDER BY ho.times DESC, i.db_id ASC
		LIMIT $limit
	`

	results, err := h.client.ExecuteRead(ctx, query, map[string]any{
		"vendorId": vendorID,
		"limit":    capLimit(limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get frequent items")
	}

	items := make([]models.FrequentItem, 0, len(results))
	for _, result := range results {
		items = append(items, decodeFrequent(result))
	}
	return items, nil
}

// Incoming lists orders of every vendor, newest first
func (h *OrderHistory) Incoming(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	query := `
		MATCH (v:Vendor)-[:PLACED]->(o:Order)
		WHERE $status = '' OR COALESCE(o.status, 'pending') = $status
		WITH v, o ORDER BY o.placed_at DESC LIMIT $limit
	` + orderProjection

	results, err := h.client.ExecuteRead(ctx, query, map[string]any{
		"status": string(status),
		"limit":  capLimit(limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get incoming orders")
	}

	orders := make([]models.Order, 0, len(results))
	for _, result := range results {
		orders = append(orders, decodeOrder(result))
	}
	return orders, nil
}

func (h *OrderHistory) SetStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	query := `
		MATCH (o:Order {id: $orderId})
		SET o.status = $status
		RETURN o.id AS id
	`

	found := false
	err := h.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) error {
		result, err := tx.Run(ctx, query, map[string]any{
			"orderId": orderID,
			"status":  string(status),
		})
		if err != nil {
			return err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return err
		}
		found = len(records) > 0
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to set status of order %s", orderID)
	}
	if !found {
		return errors.Wrapf(services.ErrOrderNotFound, "id %s", orderID)
	}
	return nil
}

// Demand answers: "Which items are vendors ordering the most right now?"
func (h *OrderHistory) Demand(ctx context.Context, limit int) ([]models.DemandTrend, error) {
	query := `
		MATCH (v:Vendor)-[ho:HAS_ORDERED]->(i:Item)
		WITH i, sum(ho.times) AS times, count(DISTINCT v) AS vendors
		RETURN i.db_id AS item_id,
			   i.name AS name,
			   i.name_en AS name_en,
			   i.price AS price,
			   i.category AS category,
			   times,
			   vendors
		ORDER BY times DESC, item_id ASC
		LIMIT $limit
	`

	results, err := h.client.ExecuteRead(ctx, query, map[string]any{"limit": capLimit(limit)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get demand trends")
	}

	trends := make([]models.DemandTrend, 0, len(results))
	for _, result := range results {
		trends = append(trends, decodeDemand(result))
	}
	return trends, nil
}

func capLimit(limit int) int64 {
	if limit <= 0 || limit > maxHistory {
		return maxHistory
	}
	return int64(limit)
}

func decodeOrder(row map[string]any) models.Order {
	order := models.Order{
		ID:       asString(row["id"]),
		VendorID: asString(row["vendor_id"]),
		Subtotal: asFloat64(row["subtotal"]),
		Discount: asFloat64(row["discount"]),
		Total:    asFloat64(row["total"]),
		Coupon:   asString(row["coupon"]),
		Status:   models.OrderStatus(asString(row["status"])),
		PlacedAt: time.UnixMilli(asInt64(row["placed_at"])).UTC(),
		Lines:    []models.CartLine{},
	}
	// orders recorded before statuses existed
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	raw, _ := row["lines"].([]any)
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok || m["id"] == nil {
			continue
		}
		order.Lines = append(order.Lines, models.CartLine{
			ID:            int(asInt64(m["id"])),
			NameLocal:     asString(m["name"]),
			NameEn:        asString(m["name_en"]),
			PriceLabel:    asString(m["price"]),
			Quantity:      int(asInt64(m["quantity"])),
			DiscountLabel: asString(m["discount"]),
		})
	}
	return order
}

func decodeFrequent(row map[string]any) models.FrequentItem {
	return models.FrequentItem{
		Item: models.CatalogItem{
			ID:         int(asInt64(row["item_id"])),
			NameLocal:  asString(row["name"]),
			NameEn:     asString(row["name_en"]),
			PriceLabel: asString(row["price"]),
			Category:   asString(row["category"]),
		},
		OrderCount: int(asInt64(row["times"])),
	}
}

func decodeDemand(row map[string]any) models.DemandTrend {
	fi := decodeFrequent(row)
	return models.DemandTrend{
		Item:       fi.Item,
		OrderCount: fi.OrderCount,
		Vendors:    int(asInt64(row["vendors"])),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

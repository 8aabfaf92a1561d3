package database

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

var schemaStatements = []string{
	`CREATE CONSTRAINT vendor_id IF NOT EXISTS FOR (v:Vendor) REQUIRE v.id IS UNIQUE`,
	`CREATE CONSTRAINT order_id IF NOT EXISTS FOR (o:Order) REQUIRE o.id IS UNIQUE`,
	`CREATE CONSTRAINT item_db_id IF NOT EXISTS FOR (i:Item) REQUIRE i.db_id IS UNIQUE`,
	`CREATE INDEX order_placed_at IF NOT EXISTS FOR (o:Order) ON (o.placed_at)`,
	`CREATE INDEX order_status IF NOT EXISTS FOR (o:Order) ON (o.status)`,
}

// Migrator prepares the order-history graph: constraints first, then the
// catalog items every order line points at.
type Migrator struct {
	client *Neo4jClient
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(client *Neo4jClient, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{client: client, logger: logger}
}

// Migrate applies the schema and seeds items, in that order. It is safe to
// run on every start.
func (m *Migrator) Migrate(ctx context.Context, items []models.CatalogItem) error {
	m.logger.Info("starting graph migration")

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"schema", m.applySchema},
		{"items", func(ctx context.Context) error { return m.SeedItems(ctx, items) }},
	}

	for _, step := range steps {
		m.logger.Info("migrating", zap.String("step", step.name))
		if err := step.fn(ctx); err != nil {
			return errors.Wrapf(err, "failed to migrate %s", step.name)
		}
	}

	m.logger.Info("graph migration completed")
	return nil
}

func (m *Migrator) applySchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := m.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// SeedItems merges the catalog into the graph, refreshing names and prices
func (m *Migrator) SeedItems(ctx context.Context, items []models.CatalogItem) error {
	query := `
		UNWIND $items AS row
		MERGE (i:Item {db_id: row.id})
		SET i.name = row.name,
			i.name_en = row.name_en,
			i.price = row.price,
			i.category = row.category
	`

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]any{
			"id":       int64(item.ID),
			"name":     item.NameLocal,
			"name_en":  item.NameEn,
			"price":    item.PriceLabel,
			"category": item.Category,
		})
	}

	if err := m.client.ExecuteWrite(ctx, query, map[string]any{"items": rows}); err != nil {
		return err
	}
	m.logger.Info("seeded catalog items", zap.Int("count", len(rows)))
	return nil
}

// Status returns node and relationship counts of the graph
func (m *Migrator) Status(ctx context.Context) (map[string]int, error) {
	query := `
		CALL { MATCH (v:Vendor) RETURN count(v) AS vendors }
		CALL { MATCH (i:Item) RETURN count(i) AS items }
		CALL { MATCH (o:Order) RETURN count(o) AS orders }
		CALL { MATCH ()-[ho:HAS_ORDERED]->() RETURN count(ho) AS has_ordered }
		RETURN vendors, items, orders, has_ordered
	`

	results, err := m.client.ExecuteRead(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	status := map[string]int{"vendors": 0, "items": 0, "orders": 0, "has_ordered": 0}
	if len(results) == 0 {
		return status, nil
	}
	for key := range status {
		status[key] = int(asInt64(results[0][key]))
	}
	return status, nil
}

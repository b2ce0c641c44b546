package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/ledquote/internal/domain"
)

// CatalogRepository reads the inventory catalog and stock ledger tables.
type CatalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListItems(ctx context.Context) (domain.Catalog, error) {
	query := `
		SELECT id, kind, brand, model, vendor, indoor, pitch, width_mm, height_mm,
		       price, carriage, currency, avg_power, max_power, weight, brightness,
		       refresh_rate, amps, voltage, ports, material, led_type
		FROM catalog_items
		ORDER BY kind, brand, model, id
	`
	var items []domain.CatalogItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	return items, nil
}

func (r *CatalogRepository) ListLedger(ctx context.Context) (domain.Ledger, error) {
	query := `
		SELECT id, item_id, direction, qty, batch
		FROM stock_ledger
		ORDER BY created_at, id
	`
	var entries []domain.LedgerEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list stock ledger: %w", err)
	}
	return entries, nil
}

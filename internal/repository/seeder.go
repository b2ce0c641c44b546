package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/andresuchdata/ledquote/internal/domain"
)

var ledgerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ledquote:stock_ledger"))

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CatalogSeeder writes catalog items and ledger movements into Postgres.
type CatalogSeeder struct {
	db Execer
}

func NewCatalogSeeder(db Execer) *CatalogSeeder {
	return &CatalogSeeder{db: db}
}

func (r *CatalogSeeder) UpsertItem(ctx context.Context, item domain.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (
			id, kind, brand, model, vendor, indoor, pitch, width_mm, height_mm,
			price, carriage, currency, avg_power, max_power, weight, brightness,
			refresh_rate, amps, voltage, ports, material, led_type, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			vendor = EXCLUDED.vendor,
			indoor = EXCLUDED.indoor,
			pitch = EXCLUDED.pitch,
			width_mm = EXCLUDED.width_mm,
			height_mm = EXCLUDED.height_mm,
			price = EXCLUDED.price,
			carriage = EXCLUDED.carriage,
			currency = EXCLUDED.currency,
			avg_power = EXCLUDED.avg_power,
			max_power = EXCLUDED.max_power,
			weight = EXCLUDED.weight,
			brightness = EXCLUDED.brightness,
			refresh_rate = EXCLUDED.refresh_rate,
			amps = EXCLUDED.amps,
			voltage = EXCLUDED.voltage,
			ports = EXCLUDED.ports,
			material = EXCLUDED.material,
			led_type = EXCLUDED.led_type,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, string(item.Kind), item.Brand, item.Model, item.Vendor, item.Indoor,
		item.Pitch.Float(), item.Width.Float(), item.Height.Float(),
		item.Price.Float(), item.Carriage.Float(), string(item.Currency),
		item.AvgPower.Float(), item.MaxPower.Float(), item.Weight.Float(), item.Brightness.Float(),
		item.RefreshRate.Float(), item.Amps.Float(), item.Voltage.Float(), item.Ports.Float(),
		item.Material, item.LEDType,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog item %s: %w", item.ID, err)
	}
	return nil
}

// InsertLedgerEntry records one movement. Entries without an id get a deterministic
// one, so re-seeding the same movement is a no-op.
func (r *CatalogSeeder) InsertLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = LedgerEntryID(entry, 0)
	}

	query := `
		INSERT INTO stock_ledger (id, item_id, direction, qty, batch, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.ItemID, string(entry.Direction), entry.Qty.Float(), entry.Batch)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry for %s: %w", entry.ItemID, err)
	}
	return nil
}

// Seed upserts every catalog item and records every ledger movement. Identical
// movements without ids in one file are told apart by their position among equals.
func (r *CatalogSeeder) Seed(ctx context.Context, catalog domain.Catalog, ledger domain.Ledger) error {
	for _, item := range catalog {
		if item.ID == "" {
			continue
		}
		if err := r.UpsertItem(ctx, item); err != nil {
			return err
		}
	}

	seen := make(map[string]int)
	for _, entry := range ledger {
		if entry.ID == "" {
			key := movementKey(entry)
			entry.ID = LedgerEntryID(entry, seen[key])
			seen[key]++
		}
		if err := r.InsertLedgerEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// LedgerEntryID derives a stable id from the movement and its occurrence among
// identical movements.
func LedgerEntryID(entry domain.LedgerEntry, occurrence int) string {
	name := movementKey(entry) + "|" + strconv.Itoa(occurrence)
	return uuid.NewSHA1(ledgerNamespace, []byte(name)).String()
}

func movementKey(entry domain.LedgerEntry) string {
	return entry.ItemID + "|" + string(entry.Direction) + "|" +
		strconv.FormatFloat(entry.Qty.Float(), 'f', -1, 64) + "|" + entry.Batch
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemKind classifies a catalog item. Accessory kinds outside the fixed set are allowed.
type ItemKind string

const (
	KindModule    ItemKind = "module"
	KindCabinet   ItemKind = "cabinet"
	KindCard      ItemKind = "card"
	KindPSU       ItemKind = "psu"
	KindProcessor ItemKind = "processor"
	KindReady     ItemKind = "ready"
)

// Currency is the purchase currency of a catalog item.
type Currency string

const (
	CurrencyLocal   Currency = "INR"
	CurrencyForeign Currency = "USD"
)

// CatalogItem is an inventory record supplied by the inventory store. Dimensions are
// in millimetres, power figures in watts per square metre, module weight in kg per
// square metre and cabinet weight in kg per cabinet.
type CatalogItem struct {
	ID       string   `json:"id" yaml:"id" db:"id"`
	Kind     ItemKind `json:"type" yaml:"type" db:"kind"`
	Brand    string   `json:"brand" yaml:"brand" db:"brand"`
	Model    string   `json:"model" yaml:"model" db:"model"`
	Vendor   string   `json:"vendor,omitempty" yaml:"vendor" db:"vendor"`
	Indoor   bool     `json:"indoor" yaml:"indoor" db:"indoor"`
	Pitch    Number   `json:"pitch,omitempty" yaml:"pitch" db:"pitch"`
	Width    Number   `json:"width,omitempty" yaml:"width" db:"width_mm"`
	Height   Number   `json:"height,omitempty" yaml:"height" db:"height_mm"`
	Price    Number   `json:"price" yaml:"price" db:"price"`
	Carriage Number   `json:"carriage,omitempty" yaml:"carriage" db:"carriage"`
	Currency Currency `json:"currency" yaml:"currency" db:"currency"`

	AvgPower    Number `json:"avgPower,omitempty" yaml:"avgPower" db:"avg_power"`
	MaxPower    Number `json:"maxPower,omitempty" yaml:"maxPower" db:"max_power"`
	Weight      Number `json:"weight,omitempty" yaml:"weight" db:"weight"`
	Brightness  Number `json:"brightness,omitempty" yaml:"brightness" db:"brightness"`
	RefreshRate Number `json:"refreshRate,omitempty" yaml:"refreshRate" db:"refresh_rate"`
	Amps        Number `json:"amps,omitempty" yaml:"amps" db:"amps"`
	Voltage     Number `json:"voltage,omitempty" yaml:"voltage" db:"voltage"`
	Ports       Number `json:"ports,omitempty" yaml:"ports" db:"ports"`
	Material    string `json:"material,omitempty" yaml:"material" db:"material"`
	LEDType     string `json:"ledType,omitempty" yaml:"ledType" db:"led_type"`
}

// Label is the brand and model joined for display.
func (i CatalogItem) Label() string {
	return strings.TrimSpace(i.Brand + " " + i.Model)
}

// HasSize reports whether the item carries usable dimensions.
func (i CatalogItem) HasSize() bool {
	return i.Width.Float() > 0 && i.Height.Float() > 0
}

// Catalog is the full inventory snapshot for one invocation.
type Catalog []CatalogItem

// Find resolves an id. Blank ids never resolve.
func (c Catalog) Find(id string) (*CatalogItem, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	for i := range c {
		if c[i].ID == id {
			item := c[i]
			return &item, true
		}
	}
	return nil, false
}

// LedgerDirection is the sign of a stock movement.
type LedgerDirection string

const (
	DirectionIn  LedgerDirection = "in"
	DirectionOut LedgerDirection = "out"
)

// LedgerEntry is a single stock movement.
type LedgerEntry struct {
	ID        string          `json:"id,omitempty" yaml:"id" db:"id"`
	ItemID    string          `json:"itemId" yaml:"itemId" db:"item_id"`
	Direction LedgerDirection `json:"type" yaml:"type" db:"direction"`
	Qty       Number          `json:"qty" yaml:"qty" db:"qty"`
	Batch     string          `json:"batch,omitempty" yaml:"batch" db:"batch"`
}

func (e LedgerEntry) signed() decimal.Decimal {
	qty := decimal.NewFromFloat(e.Qty.Float())
	if e.Direction == DirectionIn {
		return qty
	}
	return qty.Neg()
}

// Ledger is the stock movement log for one invocation.
type Ledger []LedgerEntry

// Stock is the signed sum of movements for itemID.
func (l Ledger) Stock(itemID string) float64 {
	total := decimal.Zero
	for _, e := range l {
		if e.ItemID == itemID {
			total = total.Add(e.signed())
		}
	}
	return total.InexactFloat64()
}

// StockLevels returns current stock for every item referenced in the ledger.
func (l Ledger) StockLevels() map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, e := range l {
		if e.ItemID == "" {
			continue
		}
		sums[e.ItemID] = sums[e.ItemID].Add(e.signed())
	}

	levels := make(map[string]float64, len(sums))
	for id, d := range sums {
		levels[id] = d.InexactFloat64()
	}
	return levels
}

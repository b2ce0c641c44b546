package quote

import (
	"fmt"
	"math"

	"github.com/andresuchdata/ledquote/internal/domain"
)

// Line item ids for the fixed roles. Extra components use their own ids.
const (
	LineModules   = "modules"
	LineCabinets  = "cabinets"
	LineCards     = "cards"
	LinePSU       = "smps"
	LineReady     = "ready"
	LineProcessor = "processor"
)

const notSelected = "Select Item..."

// Normalizer converts catalog prices to the local currency.
type Normalizer struct {
	ExchangeRate float64
}

// UnitCost is (price + carriage), converted once when the item is priced in the
// foreign currency. A nil item costs nothing.
func (n Normalizer) UnitCost(item *domain.CatalogItem) float64 {
	if item == nil {
		return 0
	}
	base := item.Price.Float() + item.Carriage.Float()
	if item.Currency == domain.CurrencyForeign {
		return base * n.ExchangeRate
	}
	return base
}

// Selection is the set of resolved catalog items for one screen. Nil means not chosen.
type Selection struct {
	Mode      domain.AssemblyMode
	Module    *domain.CatalogItem
	Cabinet   *domain.CatalogItem
	Card      *domain.CatalogItem
	PSU       *domain.CatalogItem
	Processor *domain.CatalogItem
	Ready     *domain.CatalogItem
}

// Select resolves the role ids of spec against catalog.
func Select(spec domain.ScreenSpec, catalog domain.Catalog) Selection {
	find := func(id string) *domain.CatalogItem {
		item, _ := catalog.Find(id)
		return item
	}

	sel := Selection{Mode: spec.AssemblyMode, Processor: find(spec.ProcessorID)}
	if sel.Mode == domain.AssemblyReady {
		sel.Ready = find(spec.ReadyID)
		return sel
	}
	sel.Mode = domain.AssemblyAssembled
	sel.Module = find(spec.ModuleID)
	sel.Cabinet = find(spec.CabinetID)
	sel.Card = find(spec.CardID)
	sel.PSU = find(spec.PSUID)
	return sel
}

// Complete reports whether the items required for the mode are present.
func (s Selection) Complete() bool {
	if s.Mode == domain.AssemblyReady {
		return s.Ready != nil
	}
	return s.Module != nil && s.Cabinet != nil
}

// Enclosure is the item whose dimensions drive the grid.
func (s Selection) Enclosure() *domain.CatalogItem {
	if s.Mode == domain.AssemblyReady {
		return s.Ready
	}
	return s.Cabinet
}

// ModulesPerCabinet is how many whole modules tile one cabinet.
func ModulesPerCabinet(module, cabinet *domain.CatalogItem) int {
	if module == nil || cabinet == nil || !module.HasSize() {
		return 0
	}
	across := math.Floor(cabinet.Width.Float() / module.Width.Float())
	down := math.Floor(cabinet.Height.Float() / module.Height.Float())
	return int(across * down)
}

// PSUPerCabinet derives power supplies per cabinet from the module's max draw and
// the supply's rated capacity. Without a rating or a supply it falls back to one.
func PSUPerCabinet(module, cabinet, psu *domain.CatalogItem) int {
	if module == nil || cabinet == nil || psu == nil {
		return 1
	}
	maxPower := module.MaxPower.Float()
	capacity := psu.Amps.Float() * psu.Voltage.Float()
	if maxPower <= 0 || capacity <= 0 {
		return 1
	}

	cabinetSqm := (cabinet.Width.Float() / mmPerMeter) * (cabinet.Height.Float() / mmPerMeter)
	perCabinet := int(math.Ceil(cabinetSqm * maxPower / capacity))
	if perCabinet < 1 {
		return 1
	}
	return perCabinet
}

// BuildLineItems produces the per-screen line items for a resolved grid. The
// processor row is always present; unresolved extras become zero-cost placeholders.
func BuildLineItems(grid domain.Grid, sel Selection, extras []domain.ExtraComponent, catalog domain.Catalog, norm Normalizer) []domain.LineItem {
	cabinets := float64(grid.Cabinets)
	items := make([]domain.LineItem, 0, 5+len(extras))

	if sel.Mode == domain.AssemblyReady {
		items = append(items, newLine(LineReady, sel.Ready, "LED Panels (Ready)", labelOf(sel.Ready), cabinets, norm.UnitCost(sel.Ready), domain.CategoryPanel))
	} else {
		modules := float64(ModulesPerCabinet(sel.Module, sel.Cabinet)) * cabinets
		perCab := PSUPerCabinet(sel.Module, sel.Cabinet, sel.PSU)
		psuSpec := "-"
		if sel.PSU != nil {
			psuSpec = fmt.Sprintf("%s (%d/cab)", sel.PSU.Brand, perCab)
		}
		cardSpec := "-"
		if sel.Card != nil {
			cardSpec = sel.Card.Brand
		}

		items = append(items,
			newLine(LineModules, sel.Module, "Modules", labelOf(sel.Module), modules, norm.UnitCost(sel.Module), domain.CategoryPanel),
			newLine(LineCabinets, sel.Cabinet, "Cabinets", labelOf(sel.Cabinet), cabinets, norm.UnitCost(sel.Cabinet), domain.CategoryPanel),
			newLine(LineCards, sel.Card, "Cards", cardSpec, cabinets, norm.UnitCost(sel.Card), domain.CategoryPanel),
			newLine(LinePSU, sel.PSU, "SMPS", psuSpec, float64(perCab)*cabinets, norm.UnitCost(sel.PSU), domain.CategoryPanel),
		)
	}

	procSpec := "Select Processor"
	if sel.Processor != nil {
		procSpec = sel.Processor.Brand
	}
	items = append(items, newLine(LineProcessor, sel.Processor, "Processor", procSpec, 1, norm.UnitCost(sel.Processor), domain.CategoryService))

	for _, extra := range extras {
		items = append(items, extraLine(extra, cabinets, catalog, norm))
	}
	return items
}

func extraLine(extra domain.ExtraComponent, cabinets float64, catalog domain.Catalog, norm Normalizer) domain.LineItem {
	item, ok := catalog.Find(extra.ComponentID)
	if !ok {
		qty := extra.Qty.Float()
		if qty == 0 {
			qty = 1
		}
		return domain.LineItem{
			ID:       extra.ID,
			Name:     "Extra Component",
			Spec:     notSelected,
			Qty:      qty,
			Category: domain.CategoryPanel,
		}
	}

	qty := extra.Qty.Float()
	if extra.Scope == domain.ExtraPerCabinet {
		qty *= cabinets
	}
	category := domain.CategoryPanel
	if item.Kind == domain.KindProcessor {
		category = domain.CategoryService
	}
	return newLine(extra.ID, item, "Extra: "+string(item.Kind), item.Label(), qty, norm.UnitCost(item), category)
}

func newLine(id string, item *domain.CatalogItem, name, spec string, qty, unit float64, category domain.Category) domain.LineItem {
	line := domain.LineItem{
		ID:       id,
		Name:     name,
		Spec:     spec,
		Qty:      qty,
		UnitCost: unit,
		Total:    qty * unit,
		Category: category,
	}
	if item != nil {
		line.CatalogID = item.ID
	}
	return line
}

func labelOf(item *domain.CatalogItem) string {
	if item == nil {
		return "-"
	}
	return item.Label()
}

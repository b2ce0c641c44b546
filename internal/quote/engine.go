package quote

import (
	"github.com/andresuchdata/ledquote/internal/domain"
)

// CalculateScreen runs every stage for one configuration. It returns false when the
// required selections or dimensions are missing; that is a prompt state, not a failure.
func CalculateScreen(spec domain.ScreenSpec, pricing domain.Pricing, catalog domain.Catalog, norm Normalizer) (domain.BOMResult, bool) {
	sel := Select(spec, catalog)
	if !sel.Complete() {
		return domain.BOMResult{}, false
	}

	enclosure := sel.Enclosure()
	grid, ok := ResolveGrid(spec.TargetWidth.Float(), spec.TargetHeight.Float(), spec.Unit,
		enclosure.Width.Float(), enclosure.Height.Float(), spec.Sizing)
	if !ok {
		return domain.BOMResult{}, false
	}

	qty := spec.ScreenCount()

	// 1. Line items and manual overrides
	items := ApplyOverrides(BuildLineItems(grid, sel, spec.Extras, catalog, norm), spec.Overrides)
	panelItems, serviceItems := Subtotals(items)

	// 2. Operational surcharges
	ops := ComputeSurcharges(spec.Surcharges, panelItems, spec.Commercials, serviceItems, grid.AreaSqft)

	costs := domain.Costs{
		PanelItems:       panelItems,
		ServiceItems:     serviceItems,
		PanelOps:         ops.PanelTotal(),
		ServiceOps:       ops.ServiceTotal(),
		PanelPerScreen:   panelItems + ops.PanelTotal(),
		ServicePerScreen: serviceItems + ops.ServiceTotal(),
	}
	costs.PerScreen = costs.PanelPerScreen + costs.ServicePerScreen
	costs.Total = costs.PerScreen * qty

	// 3. Sell side
	priced := PriceScreen(PricingInput{
		PanelCostPerScreen:   costs.PanelPerScreen,
		ServiceCostPerScreen: costs.ServicePerScreen,
		Pricing:              pricing,
		AreaSqft:             grid.AreaSqft,
		ScreenQty:            qty,
		ProcessorQty:         processorQty(items),
		Commercials:          spec.Commercials,
	})

	sales := domain.Sales{
		PanelPerScreen:   priced.PanelSellPerScreen,
		ServicePerScreen: priced.ServicesSell / qty,
		PerScreen:        priced.TotalSell / qty,
		Processor:        priced.ProcessorSell,
		Installation:     priced.InstallationSell,
		Structure:        priced.StructureSell,
		PanelTotal:       priced.PanelSell,
		ServiceTotal:     priced.ServicesSell,
		Total:            priced.TotalSell,
	}

	var modules, psuPerCab int
	if sel.Mode == domain.AssemblyReady {
		modules = grid.Cabinets
	} else {
		modules = ModulesPerCabinet(sel.Module, sel.Cabinet) * grid.Cabinets
		psuPerCab = PSUPerCabinet(sel.Module, sel.Cabinet, sel.PSU)
	}

	module := sel.Module
	if module == nil {
		module = sel.Ready
	}

	return domain.BOMResult{
		ScreenID:      spec.ID,
		Name:          spec.Name,
		AssemblyMode:  sel.Mode,
		Grid:          grid,
		ScreenQty:     domain.Number(qty),
		TotalModules:  modules,
		PSUPerCabinet: psuPerCab,
		Items:         items,
		Surcharges:    ops,
		Cost:          costs,
		Sell:          sales,
		Margin:        priced.Margin,
		Matrix:        buildMatrix(costs, priced, grid.AreaSqft, qty),
		Technical:     TechnicalSummary(grid, module, sel.Enclosure()),
	}, true
}

func processorQty(items []domain.LineItem) float64 {
	for _, item := range items {
		if item.ID == LineProcessor {
			return item.Qty
		}
	}
	return 1
}

func buildMatrix(costs domain.Costs, priced ScreenPricing, areaSqft, qty float64) domain.Matrix {
	marginPerScreen := priced.Margin / qty
	sellPerScreen := priced.TotalSell / qty

	return domain.Matrix{
		Cost: domain.Rate{
			PerSqft:   perArea(costs.PerScreen, areaSqft),
			PerScreen: costs.PerScreen,
			Total:     costs.Total,
		},
		Margin: domain.Rate{
			PerSqft:   perArea(marginPerScreen, areaSqft),
			PerScreen: marginPerScreen,
			Total:     priced.Margin,
		},
		Sell: domain.Rate{
			PerSqft:   perArea(sellPerScreen, areaSqft),
			PerScreen: sellPerScreen,
			Total:     priced.TotalSell,
		},
		Panel: domain.PanelMetrics{
			Cost:      costs.PanelPerScreen,
			Sell:      priced.PanelSellPerScreen,
			Margin:    priced.PanelSellPerScreen - costs.PanelPerScreen,
			MarginPct: priced.EffectiveMargin,
		},
	}
}

func perArea(v, areaSqft float64) float64 {
	if areaSqft <= 0 {
		return 0
	}
	return v / areaSqft
}

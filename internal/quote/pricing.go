package quote

import "github.com/andresuchdata/ledquote/internal/domain"

// PricingInput carries everything the pricing stage needs for one configuration.
type PricingInput struct {
	PanelCostPerScreen   float64
	ServiceCostPerScreen float64
	Pricing              domain.Pricing
	AreaSqft             float64
	ScreenQty            float64
	ProcessorQty         float64
	Commercials          domain.Commercials
}

// ScreenPricing is the sell side of one configuration. Totals already include the
// screen quantity.
type ScreenPricing struct {
	PanelSellPerScreen float64
	EffectiveMargin    float64
	ProcessorSell      float64
	InstallationSell   float64
	StructureSell      float64
	ServicesSell       float64
	PanelSell          float64
	TotalSell          float64
	TotalCost          float64
	Margin             float64
}

// PanelSell applies the pricing strategy to the panel cost of one screen and returns
// the sell price with the effective margin percentage.
func PanelSell(panelCost float64, p domain.Pricing, areaSqft float64) (sell, marginPct float64) {
	param := p.Value.Float()

	switch p.Strategy {
	case domain.PricingPerScreen:
		sell = param
	case domain.PricingPerAreaSqft:
		sell = param * areaSqft
	case domain.PricingPerAreaSqm:
		sell = param * (areaSqft / SqftPerSqm)
	default:
		return panelCost * (1 + param/100), param
	}

	if panelCost > 0 {
		marginPct = (sell - panelCost) / panelCost * 100
	}
	return sell, marginPct
}

// PriceScreen prices the panel and services buckets and rolls them up. The panel
// sell is per screen and multiplied here; service sells carry the screen quantity in
// their own formulas.
func PriceScreen(in PricingInput) ScreenPricing {
	qty := in.ScreenQty
	if qty <= 0 {
		qty = 1
	}

	var out ScreenPricing
	out.PanelSellPerScreen, out.EffectiveMargin = PanelSell(in.PanelCostPerScreen, in.Pricing, in.AreaSqft)

	proc := in.Commercials.Processor
	if proc.Unit == domain.PerUnit {
		out.ProcessorSell = proc.Sell.Float() * in.ProcessorQty * qty
	} else {
		out.ProcessorSell = proc.Sell.Float() * qty
	}
	out.InstallationSell = serviceSell(in.Commercials.Installation, in.AreaSqft, qty)
	out.StructureSell = serviceSell(in.Commercials.Structure, in.AreaSqft, qty)
	out.ServicesSell = out.ProcessorSell + out.InstallationSell + out.StructureSell

	out.PanelSell = out.PanelSellPerScreen * qty
	out.TotalSell = out.PanelSell + out.ServicesSell
	out.TotalCost = (in.PanelCostPerScreen + in.ServiceCostPerScreen) * qty
	out.Margin = out.TotalSell - out.TotalCost
	return out
}

// serviceSell prices installation or structure. Only an explicit per-area unit scales
// with area here; an unset unit is flat per screen, unlike the cost side.
func serviceSell(c domain.Commercial, areaSqft, qty float64) float64 {
	if c.Unit == domain.PerArea {
		return c.Sell.Float() * areaSqft * qty
	}
	return c.Sell.Float() * qty
}

package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/ledquote/internal/domain"
)

func TestPanelSell(t *testing.T) {
	cases := []struct {
		name       string
		cost       float64
		pricing    domain.Pricing
		area       float64
		wantSell   float64
		wantMargin float64
	}{
		{"margin", 10000, domain.Pricing{Strategy: domain.PricingMargin, Value: 20}, 64, 12000, 20},
		{"unknown strategy behaves as margin", 10000, domain.Pricing{Strategy: "bogus", Value: 20}, 64, 12000, 20},
		{"fixed per screen", 10000, domain.Pricing{Strategy: domain.PricingPerScreen, Value: 15000}, 64, 15000, 50},
		{"per sqft", 10000, domain.Pricing{Strategy: domain.PricingPerAreaSqft, Value: 250}, 64, 16000, 60},
		{"per sqft below cost", 10000, domain.Pricing{Strategy: domain.PricingPerAreaSqft, Value: 125}, 64, 8000, -20},
		{"zero cost reports zero margin", 0, domain.Pricing{Strategy: domain.PricingPerScreen, Value: 5000}, 64, 5000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sell, margin := PanelSell(tc.cost, tc.pricing, tc.area)
			assert.InDelta(t, tc.wantSell, sell, 1e-9)
			assert.InDelta(t, tc.wantMargin, margin, 1e-9)
		})
	}
}

func TestPanelSell_PerSqm(t *testing.T) {
	area := 10 * SqftPerSqm
	sell, margin := PanelSell(20000, domain.Pricing{Strategy: domain.PricingPerAreaSqm, Value: 3000}, area)
	assert.InDelta(t, 30000.0, sell, 1e-6)
	assert.InDelta(t, 50.0, margin, 1e-6)
}

func TestPriceScreen_ServicesCarryScreenQty(t *testing.T) {
	in := PricingInput{
		PanelCostPerScreen:   10000,
		ServiceCostPerScreen: 3000,
		Pricing:              domain.Pricing{Strategy: domain.PricingMargin, Value: 20},
		AreaSqft:             50,
		ScreenQty:            2,
		ProcessorQty:         3,
		Commercials: domain.Commercials{
			Processor:    domain.Commercial{Sell: 1000, Unit: domain.PerUnit},
			Installation: domain.Commercial{Sell: 40, Unit: domain.PerArea},
			Structure:    domain.Commercial{Sell: 2500, Unit: domain.PerScreen},
		},
	}

	out := PriceScreen(in)

	assert.InDelta(t, 12000.0, out.PanelSellPerScreen, 1e-9)
	assert.InDelta(t, 24000.0, out.PanelSell, 1e-9)
	assert.InDelta(t, 6000.0, out.ProcessorSell, 1e-9)
	assert.InDelta(t, 4000.0, out.InstallationSell, 1e-9)
	assert.InDelta(t, 5000.0, out.StructureSell, 1e-9)
	assert.InDelta(t, 15000.0, out.ServicesSell, 1e-9)
	assert.InDelta(t, 39000.0, out.TotalSell, 1e-9)
	assert.InDelta(t, 26000.0, out.TotalCost, 1e-9)
	assert.InDelta(t, 13000.0, out.Margin, 1e-9)
}

func TestPriceScreen_FlatProcessorAndDefaultQty(t *testing.T) {
	out := PriceScreen(PricingInput{
		PanelCostPerScreen: 1000,
		Pricing:            domain.Pricing{Strategy: domain.PricingMargin},
		ProcessorQty:       4,
		Commercials: domain.Commercials{
			Processor: domain.Commercial{Sell: 700, Unit: domain.PerScreen},
		},
	})

	assert.InDelta(t, 700.0, out.ProcessorSell, 1e-9)
	assert.InDelta(t, 1000.0, out.PanelSell, 1e-9)
	assert.InDelta(t, 1700.0, out.TotalSell, 1e-9)
	assert.InDelta(t, 700.0, out.Margin, 1e-9)
}

func TestPriceScreen_UnsetServiceUnitSellsPerScreen(t *testing.T) {
	out := PriceScreen(PricingInput{
		Pricing:   domain.Pricing{Strategy: domain.PricingMargin},
		AreaSqft:  50,
		ScreenQty: 3,
		Commercials: domain.Commercials{
			Installation: domain.Commercial{Sell: 2000},
			Structure:    domain.Commercial{Sell: 10, Unit: domain.PerArea},
		},
	})

	assert.InDelta(t, 6000.0, out.InstallationSell, 1e-9)
	assert.InDelta(t, 1500.0, out.StructureSell, 1e-9)
}

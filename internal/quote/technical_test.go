package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/ledquote/internal/domain"
)

func TestTechnicalSummary(t *testing.T) {
	grid, ok := ResolveGrid(3, 2, domain.UnitMeters, 500, 500, domain.SizingNearest)
	assert.True(t, ok)

	catalog := testCatalog()
	module, _ := catalog.Find("mod-p3")
	cabinet, _ := catalog.Find("cab-500")

	tech := TechnicalSummary(grid, module, cabinet)
	assert.Equal(t, 769, tech.ResolutionW)
	assert.Equal(t, 513, tech.ResolutionH)
	assert.InDelta(t, 6.0, tech.AreaSqm, 1e-9)
	// 30 kg/m² * 6 m² + 7 kg * 24 cabinets
	assert.InDelta(t, 348.0, tech.WeightKg, 1e-9)
	assert.InDelta(t, 360.0, tech.AvgPowerW, 1e-9)
	assert.InDelta(t, 900.0, tech.MaxPowerW, 1e-9)
}

func TestTechnicalSummary_ReadyUnitWeighsPerCabinet(t *testing.T) {
	ready, _ := testCatalog().Find("ready-1")
	grid := domain.Grid{Cabinets: 10, WidthM: 3, HeightM: 1.35}

	tech := TechnicalSummary(grid, ready, ready)
	assert.InDelta(t, 90.0, tech.WeightKg, 1e-9)
}

func TestTechnicalSummary_NoModule(t *testing.T) {
	tech := TechnicalSummary(domain.Grid{WidthM: 1, HeightM: 1, AreaSqft: 10.76}, nil, nil)
	assert.Zero(t, tech.ResolutionW)
	assert.InDelta(t, 1.0, tech.AreaSqm, 1e-9)
}

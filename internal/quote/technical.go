package quote

import (
	"math"

	"github.com/andresuchdata/ledquote/internal/domain"
)

// TechnicalSummary derives display figures for a resolved screen: pixel resolution
// from pitch, weight, and average and max power draw. Module weight and power are
// per square metre; cabinet weight is per cabinet. In ready mode the module and the
// enclosure are the same unit.
func TechnicalSummary(grid domain.Grid, module, enclosure *domain.CatalogItem) domain.Technical {
	areaSqm := grid.WidthM * grid.HeightM
	tech := domain.Technical{
		AreaSqm:  areaSqm,
		AreaSqft: grid.AreaSqft,
	}
	if module == nil {
		return tech
	}

	tech.Pitch = module.Pitch.Float()
	if tech.Pitch > 0 {
		tech.ResolutionW = int(math.Round(grid.WidthMM / tech.Pitch))
		tech.ResolutionH = int(math.Round(grid.HeightMM / tech.Pitch))
	}

	tech.AvgPowerW = module.AvgPower.Float() * areaSqm
	tech.MaxPowerW = module.MaxPower.Float() * areaSqm

	if enclosure != nil && enclosure.ID != module.ID {
		tech.WeightKg = module.Weight.Float()*areaSqm + enclosure.Weight.Float()*float64(grid.Cabinets)
	} else {
		tech.WeightKg = module.Weight.Float() * float64(grid.Cabinets)
	}
	return tech
}

package quote

import "github.com/andresuchdata/ledquote/internal/domain"

// ApplyOverrides returns a copy of items with manual quantity and rate overrides
// applied. A line with an entry is marked overridden even when the entry sets
// nothing; clearing means removing the entry. The input is not modified.
func ApplyOverrides(items []domain.LineItem, overrides map[string]domain.Override) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	if len(overrides) == 0 {
		return out
	}

	for i := range out {
		ov, ok := overrides[out[i].ID]
		if !ok {
			continue
		}
		out[i].Qty = ov.Qty.Or(out[i].Qty)
		out[i].UnitCost = ov.Rate.Or(out[i].UnitCost)
		out[i].Total = out[i].Qty * out[i].UnitCost
		out[i].Overridden = true
	}
	return out
}

// Subtotals splits line totals into the panel and services buckets.
func Subtotals(items []domain.LineItem) (panel, services float64) {
	for _, item := range items {
		if item.Category == domain.CategoryPanel {
			panel += item.Total
		} else {
			services += item.Total
		}
	}
	return panel, services
}

// ComputeSurcharges evaluates the named panel surcharges against the panel subtotal,
// and installation and structure costs against the services subtotal or area.
func ComputeSurcharges(surcharges []domain.Surcharge, panelSubtotal float64, commercials domain.Commercials, servicesSubtotal, areaSqft float64) domain.SurchargeValues {
	values := domain.SurchargeValues{Named: make(map[string]float64, len(surcharges))}

	for _, s := range surcharges {
		val := s.Value.Float()
		if s.Kind == domain.ValuePercent {
			val = panelSubtotal * val / 100
		}
		// Repeated ids accumulate rather than shadow each other.
		values.Named[s.ID] += val
	}

	values.Installation = serviceCost(commercials.Installation, servicesSubtotal, areaSqft)
	values.Structure = serviceCost(commercials.Structure, servicesSubtotal, areaSqft)
	return values
}

func serviceCost(c domain.Commercial, servicesSubtotal, areaSqft float64) float64 {
	cost := c.Cost.Float()
	if c.CostKind == domain.ValuePercent {
		return servicesSubtotal * cost / 100
	}
	if areaBased(c.Unit) {
		return cost * areaSqft
	}
	return cost
}

// areaBased treats an unset unit as per-area, the default for installation and
// structure.
func areaBased(unit domain.UnitOfMeasure) bool {
	return unit == domain.PerArea || unit == ""
}

package quote

import (
	"github.com/andresuchdata/ledquote/internal/domain"
)

// CalculateProject prices every configuration of a project and aggregates them.
// Incomplete configurations are skipped; it returns false when none is complete.
func CalculateProject(spec domain.ProjectSpec, catalog domain.Catalog, ledger domain.Ledger, norm Normalizer) (domain.ProjectResult, bool) {
	results := make([]domain.BOMResult, 0, len(spec.Screens))
	for _, screen := range spec.Screens {
		if res, ok := CalculateScreen(screen, spec.Pricing, catalog, norm); ok {
			results = append(results, res)
		}
	}
	if len(results) == 0 {
		return domain.ProjectResult{}, false
	}

	project := AggregateProject(results, ledger)
	project.Client = spec.Client
	project.Project = spec.Project
	ApplyTerms(&project, spec.Terms)
	return project, true
}

// AggregateProject sums cost, sell, margin and screen quantity across configurations
// and builds the consolidated bill of materials.
func AggregateProject(results []domain.BOMResult, ledger domain.Ledger) domain.ProjectResult {
	var project domain.ProjectResult
	for _, res := range results {
		project.TotalCost += res.Cost.Total
		project.TotalSell += res.Sell.Total
		project.PanelSell += res.Sell.PanelTotal
		project.ServicesSell += res.Sell.ServiceTotal
		project.TotalMargin += res.Margin
	}
	project.ScreenQty = SumScreenQty(results)
	project.Screens = results
	project.Consolidated = Consolidate(results, ledger)
	project.GrandTotal = project.TotalSell
	return project
}

// SumScreenQty adds screen quantities numerically. Quantities decoded from storage
// may have arrived as text; domain.Number has already coerced them.
func SumScreenQty(results []domain.BOMResult) float64 {
	var total float64
	for _, res := range results {
		total += res.ScreenQty.Float()
	}
	return total
}

// Consolidate groups line items across configurations by catalog id, falling back to
// name and spec, and nets the requirement against current stock.
func Consolidate(results []domain.BOMResult, ledger domain.Ledger) []domain.ConsolidatedLine {
	var lines []domain.ConsolidatedLine
	index := make(map[string]int)

	for screenIdx, res := range results {
		screenQty := res.ScreenQty.Float()
		for _, item := range res.Items {
			key := consolidationKey(item)
			pos, ok := index[key]
			if !ok {
				pos = len(lines)
				index[key] = pos
				lines = append(lines, domain.ConsolidatedLine{
					Key:       key,
					CatalogID: item.CatalogID,
					Name:      item.Name,
					Spec:      item.Spec,
				})
			}

			total := item.Qty * screenQty
			lines[pos].Required += total
			lines[pos].Screens = append(lines[pos].Screens, domain.ScreenUsage{
				ScreenIndex:  screenIdx + 1,
				QtyPerScreen: item.Qty,
				ScreenQty:    screenQty,
				Total:        total,
			})
		}
	}

	for i := range lines {
		if lines[i].CatalogID == "" {
			continue
		}
		stock := ledger.Stock(lines[i].CatalogID)
		balance := stock - lines[i].Required
		lines[i].Stock = &stock
		lines[i].Balance = &balance
	}
	return lines
}

func consolidationKey(item domain.LineItem) string {
	if item.CatalogID != "" {
		return "id:" + item.CatalogID
	}
	return "spec:" + item.Name + "|" + item.Spec
}

// ApplyTerms attaches commercial terms, the tax estimate and payment milestone
// amounts. Nil terms leave the result untaxed.
func ApplyTerms(project *domain.ProjectResult, terms *domain.Terms) {
	project.GrandTotal = project.TotalSell
	if terms == nil {
		return
	}

	project.Terms = terms
	project.TaxRate = terms.TaxRate.Float()
	project.Tax = project.TotalSell * project.TaxRate / 100
	project.GrandTotal = project.TotalSell + project.Tax

	project.Payments = make([]domain.PaymentMilestone, 0, len(terms.Payment))
	for _, p := range terms.Payment {
		pct := p.Percent.Float()
		project.Payments = append(project.Payments, domain.PaymentMilestone{
			Name:    p.Name,
			Percent: pct,
			Amount:  project.GrandTotal * pct / 100,
		})
	}
}

package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ledquote/internal/domain"
)

func bomWithCabinets(qty float64, screenQty domain.Number) domain.BOMResult {
	return domain.BOMResult{
		ScreenQty: screenQty,
		Items: []domain.LineItem{
			{ID: LineCabinets, CatalogID: "cab-500", Name: "Cabinets", Spec: "Alu C500", Qty: qty},
			{ID: "x1", Name: "Extra Component", Spec: "Select Item...", Qty: 1},
		},
	}
}

func TestConsolidate_NetsAgainstStock(t *testing.T) {
	ledger := domain.Ledger{
		{ItemID: "cab-500", Direction: domain.DirectionIn, Qty: 100},
		{ItemID: "cab-500", Direction: domain.DirectionOut, Qty: 20},
	}

	lines := Consolidate([]domain.BOMResult{bomWithCabinets(40, 1), bomWithCabinets(30, 2)}, ledger)
	require.Len(t, lines, 2)

	cab := lines[0]
	assert.Equal(t, "id:cab-500", cab.Key)
	assert.Equal(t, 100.0, cab.Required)
	require.NotNil(t, cab.Stock)
	require.NotNil(t, cab.Balance)
	assert.Equal(t, 80.0, *cab.Stock)
	assert.Equal(t, -20.0, *cab.Balance)

	require.Len(t, cab.Screens, 2)
	assert.Equal(t, domain.ScreenUsage{ScreenIndex: 2, QtyPerScreen: 30, ScreenQty: 2, Total: 60}, cab.Screens[1])

	placeholder := lines[1]
	assert.Equal(t, "spec:Extra Component|Select Item...", placeholder.Key)
	assert.Equal(t, 3.0, placeholder.Required)
	assert.Nil(t, placeholder.Stock)
	assert.Nil(t, placeholder.Balance)
}

func TestConsolidate_UnknownItemHasZeroStock(t *testing.T) {
	lines := Consolidate([]domain.BOMResult{bomWithCabinets(12, 1)}, nil)
	require.NotNil(t, lines[0].Stock)
	assert.Zero(t, *lines[0].Stock)
	assert.Equal(t, -12.0, *lines[0].Balance)
}

func TestSumScreenQty_CoercesStoredText(t *testing.T) {
	var results []domain.BOMResult
	require.NoError(t, json.Unmarshal([]byte(`[{"screenQty":"2"},{"screenQty":3},{"screenQty":"1.5"}]`), &results))

	assert.Equal(t, 6.5, SumScreenQty(results))
}

func TestAggregateProject_Additive(t *testing.T) {
	a := domain.BOMResult{
		ScreenQty: 1,
		Cost:      domain.Costs{Total: 1000},
		Sell:      domain.Sales{Total: 1500, PanelTotal: 1200, ServiceTotal: 300},
		Margin:    500,
	}
	b := domain.BOMResult{
		ScreenQty: 3,
		Cost:      domain.Costs{Total: 3000},
		Sell:      domain.Sales{Total: 4200, PanelTotal: 3600, ServiceTotal: 600},
		Margin:    1200,
	}

	project := AggregateProject([]domain.BOMResult{a, b}, nil)

	assert.Equal(t, 4000.0, project.TotalCost)
	assert.Equal(t, 5700.0, project.TotalSell)
	assert.Equal(t, 4800.0, project.PanelSell)
	assert.Equal(t, 900.0, project.ServicesSell)
	assert.Equal(t, 1700.0, project.TotalMargin)
	assert.Equal(t, 4.0, project.ScreenQty)
	assert.Equal(t, project.TotalSell, project.GrandTotal)
	assert.Len(t, project.Screens, 2)
}

func TestApplyTerms(t *testing.T) {
	project := domain.ProjectResult{TotalSell: 100000}
	ApplyTerms(&project, &domain.Terms{
		TaxRate: 18,
		Payment: []domain.PaymentTerm{
			{Name: "Advance", Percent: 60},
			{Name: "Delivery", Percent: 30},
			{Name: "Commissioning", Percent: 10},
		},
	})

	assert.InDelta(t, 18000.0, project.Tax, 1e-9)
	assert.InDelta(t, 118000.0, project.GrandTotal, 1e-9)
	require.Len(t, project.Payments, 3)
	assert.InDelta(t, 70800.0, project.Payments[0].Amount, 1e-9)
	assert.InDelta(t, 11800.0, project.Payments[2].Amount, 1e-9)
}

func TestApplyTerms_NilLeavesUntaxed(t *testing.T) {
	project := domain.ProjectResult{TotalSell: 5000}
	ApplyTerms(&project, nil)
	assert.Zero(t, project.Tax)
	assert.Equal(t, 5000.0, project.GrandTotal)
	assert.Nil(t, project.Terms)
}

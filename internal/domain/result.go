package domain

// Category is the pricing bucket a line item belongs to.
type Category string

const (
	CategoryPanel   Category = "panel"
	CategoryService Category = "service"
)

// LineItem is one row of a screen bill of materials. Quantities are per screen.
type LineItem struct {
	ID         string   `json:"id"`
	CatalogID  string   `json:"inventoryId"`
	Name       string   `json:"name"`
	Spec       string   `json:"spec"`
	Qty        float64  `json:"qty"`
	UnitCost   float64  `json:"unit"`
	Total      float64  `json:"total"`
	Category   Category `json:"type"`
	Overridden bool     `json:"isOverridden,omitempty"`
}

// Grid is a resolved cabinet layout. Final dimensions are what can actually be
// delivered and may differ from the target.
type Grid struct {
	Cols           int     `json:"gridCols"`
	Rows           int     `json:"gridRows"`
	Cabinets       int     `json:"totalCabinets"`
	TargetWidthMM  float64 `json:"targetWidthMm"`
	TargetHeightMM float64 `json:"targetHeightMm"`
	WidthMM        float64 `json:"finalWidthMm"`
	HeightMM       float64 `json:"finalHeightMm"`
	WidthM         float64 `json:"finalWidth"`
	HeightM        float64 `json:"finalHeight"`
	AreaSqft       float64 `json:"areaSqft"`
}

// Rate is a figure expressed per square foot, per screen and for the configuration.
type Rate struct {
	PerSqft   float64 `json:"sqft"`
	PerScreen float64 `json:"unit"`
	Total     float64 `json:"total"`
}

// PanelMetrics summarises the panel bucket for one screen.
type PanelMetrics struct {
	Cost      float64 `json:"cost"`
	Sell      float64 `json:"sell"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"marginPct"`
}

// Matrix is the cost/sell/margin grid shown for a configuration.
type Matrix struct {
	Cost   Rate         `json:"cost"`
	Margin Rate         `json:"margin"`
	Sell   Rate         `json:"sell"`
	Panel  PanelMetrics `json:"led"`
}

// Costs are the cost rollups for one configuration.
type Costs struct {
	PanelItems       float64 `json:"panelItems"`
	ServiceItems     float64 `json:"serviceItems"`
	PanelOps         float64 `json:"panelOps"`
	ServiceOps       float64 `json:"serviceOps"`
	PanelPerScreen   float64 `json:"costLEDPerScreen"`
	ServicePerScreen float64 `json:"costServicesPerScreen"`
	PerScreen        float64 `json:"costPerScreen"`
	Total            float64 `json:"totalProjectCost"`
}

// Sales are the sell rollups for one configuration.
type Sales struct {
	PanelPerScreen   float64 `json:"sellLEDPerScreen"`
	ServicePerScreen float64 `json:"sellServicesPerScreen"`
	PerScreen        float64 `json:"sellPerScreen"`
	Processor        float64 `json:"sellProcTotal"`
	Installation     float64 `json:"sellInstallTotal"`
	Structure        float64 `json:"sellStructureTotal"`
	PanelTotal       float64 `json:"totalLEDSell"`
	ServiceTotal     float64 `json:"totalServicesSell"`
	Total            float64 `json:"totalProjectSell"`
}

// SurchargeValues are the evaluated operational costs for one screen.
type SurchargeValues struct {
	Named        map[string]float64 `json:"named"`
	Installation float64            `json:"install"`
	Structure    float64            `json:"structure"`
}

// PanelTotal is the sum of the named surcharges.
func (v SurchargeValues) PanelTotal() float64 {
	var total float64
	for _, val := range v.Named {
		total += val
	}
	return total
}

// ServiceTotal is installation plus structure.
func (v SurchargeValues) ServiceTotal() float64 {
	return v.Installation + v.Structure
}

// Technical is the pass-through technical summary of a screen.
type Technical struct {
	Pitch       float64 `json:"pitch"`
	ResolutionW int     `json:"resolutionW"`
	ResolutionH int     `json:"resolutionH"`
	AreaSqm     float64 `json:"areaSqm"`
	AreaSqft    float64 `json:"areaSqft"`
	WeightKg    float64 `json:"weightKg"`
	AvgPowerW   float64 `json:"avgPowerW"`
	MaxPowerW   float64 `json:"maxPowerW"`
}

// BOMResult is the full computation for one screen configuration.
type BOMResult struct {
	ScreenID      string          `json:"screenId"`
	Name          string          `json:"name,omitempty"`
	AssemblyMode  AssemblyMode    `json:"assemblyMode"`
	Grid          Grid            `json:"grid"`
	ScreenQty     Number          `json:"screenQty"`
	TotalModules  int             `json:"qtyModules"`
	PSUPerCabinet int             `json:"psuPerCabinet"`
	Items         []LineItem      `json:"detailedItems"`
	Surcharges    SurchargeValues `json:"calculatedExtras"`
	Cost          Costs           `json:"cost"`
	Sell          Sales           `json:"sell"`
	Margin        float64         `json:"totalMargin"`
	Matrix        Matrix          `json:"matrix"`
	Technical     Technical       `json:"technical"`
}

// ScreenUsage is one configuration's contribution to a consolidated line.
type ScreenUsage struct {
	ScreenIndex  int     `json:"screenIndex"`
	QtyPerScreen float64 `json:"qtyPerScreen"`
	ScreenQty    float64 `json:"screenQty"`
	Total        float64 `json:"total"`
}

// ConsolidatedLine nets the project-wide requirement for one component against stock.
// Stock and Balance are nil for lines without a catalog id.
type ConsolidatedLine struct {
	Key       string        `json:"key"`
	CatalogID string        `json:"inventoryId,omitempty"`
	Name      string        `json:"name"`
	Spec      string        `json:"spec"`
	Required  float64       `json:"totalQty"`
	Stock     *float64      `json:"stock"`
	Balance   *float64      `json:"balance"`
	Screens   []ScreenUsage `json:"screens"`
}

// PaymentMilestone is a payment term resolved to an amount.
type PaymentMilestone struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

// ProjectResult aggregates every configuration of a project.
type ProjectResult struct {
	Client       string             `json:"clientName,omitempty"`
	Project      string             `json:"projectName,omitempty"`
	TotalCost    float64            `json:"totalProjectCost"`
	TotalSell    float64            `json:"totalProjectSell"`
	PanelSell    float64            `json:"totalLEDSell"`
	ServicesSell float64            `json:"totalServicesSell"`
	TotalMargin  float64            `json:"totalMargin"`
	ScreenQty    float64            `json:"totalScreenQty"`
	TaxRate      float64            `json:"taxRate"`
	Tax          float64            `json:"tax"`
	GrandTotal   float64            `json:"grandTotal"`
	Terms        *Terms             `json:"terms,omitempty"`
	Payments     []PaymentMilestone `json:"payments,omitempty"`
	Screens      []BOMResult        `json:"calculations"`
	Consolidated []ConsolidatedLine `json:"consolidated"`
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Unit is the unit of the requested screen dimensions.
type Unit string

const (
	UnitMeters Unit = "m"
	UnitFeet   Unit = "ft"
)

// AssemblyMode selects between a screen built from parts and a pre-integrated unit.
type AssemblyMode string

const (
	AssemblyAssembled AssemblyMode = "assembled"
	AssemblyReady     AssemblyMode = "ready"
)

// SizingMode is the rounding policy applied when fitting cabinets to the target size.
type SizingMode string

const (
	SizingUp      SizingMode = "up"
	SizingDown    SizingMode = "down"
	SizingNearest SizingMode = "closest"
)

// Normalize maps accepted aliases onto the canonical modes. Unknown values fall back
// to nearest rounding.
func (m SizingMode) Normalize() SizingMode {
	switch strings.ToLower(strings.TrimSpace(string(m))) {
	case "up", "round-up", "ceil":
		return SizingUp
	case "down", "round-down", "floor":
		return SizingDown
	default:
		return SizingNearest
	}
}

// ExtraScope says whether an extra component quantity is per screen or per cabinet.
type ExtraScope string

const (
	ExtraPerScreen  ExtraScope = "screen"
	ExtraPerCabinet ExtraScope = "cabinet"
)

// ExtraComponent is a user-added catalog reference on top of the required roles.
type ExtraComponent struct {
	ID          string     `json:"id" yaml:"id"`
	ComponentID string     `json:"componentId" yaml:"componentId"`
	Scope       ExtraScope `json:"type" yaml:"type"`
	Qty         Number     `json:"qty" yaml:"qty"`
}

// Override replaces the quantity and/or unit rate of one line item.
type Override struct {
	Qty  OptionalNumber `json:"qty" yaml:"qty"`
	Rate OptionalNumber `json:"rate" yaml:"rate"`
}

// ValueKind says whether a value is an absolute amount or a percentage of a base.
type ValueKind string

const (
	ValueAbsolute ValueKind = "abs"
	ValuePercent  ValueKind = "pct"
)

// Surcharge is a named panel-bucket operational cost such as logistics or spares.
type Surcharge struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name" yaml:"name"`
	Value Number    `json:"val" yaml:"val"`
	Kind  ValueKind `json:"type" yaml:"type"`
}

// UnitOfMeasure is the basis a commercial figure is quoted on.
type UnitOfMeasure string

const (
	PerScreen UnitOfMeasure = "screen"
	PerArea   UnitOfMeasure = "sqft"
	PerUnit   UnitOfMeasure = "unit"
)

// Commercial pairs the sell value of a service with its internal cost.
type Commercial struct {
	Sell     Number        `json:"val" yaml:"val"`
	Unit     UnitOfMeasure `json:"unit" yaml:"unit"`
	Cost     Number        `json:"cost" yaml:"cost"`
	CostKind ValueKind     `json:"costType" yaml:"costType"`
}

// CommercialKind enumerates the fixed service categories.
type CommercialKind int

const (
	CommercialProcessor CommercialKind = iota
	CommercialInstallation
	CommercialStructure
)

func (k CommercialKind) String() string {
	switch k {
	case CommercialProcessor:
		return "processor"
	case CommercialInstallation:
		return "installation"
	case CommercialStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Commercials holds the three service categories priced separately from the panel.
type Commercials struct {
	Processor    Commercial `json:"processor" yaml:"processor"`
	Installation Commercial `json:"installation" yaml:"installation"`
	Structure    Commercial `json:"structure" yaml:"structure"`
}

// Get returns the commercial for kind.
func (c Commercials) Get(kind CommercialKind) Commercial {
	switch kind {
	case CommercialInstallation:
		return c.Installation
	case CommercialStructure:
		return c.Structure
	default:
		return c.Processor
	}
}

// ScreenSpec describes one physical screen configuration in a project.
type ScreenSpec struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name,omitempty" yaml:"name"`
	TargetWidth  Number       `json:"targetWidth" yaml:"targetWidth"`
	TargetHeight Number       `json:"targetHeight" yaml:"targetHeight"`
	Unit         Unit         `json:"unit" yaml:"unit"`
	Indoor       bool         `json:"indoor" yaml:"indoor"`
	AssemblyMode AssemblyMode `json:"assemblyMode" yaml:"assemblyMode"`
	Sizing       SizingMode   `json:"sizingMode" yaml:"sizingMode"`

	ModuleID    string `json:"moduleId,omitempty" yaml:"moduleId"`
	CabinetID   string `json:"cabinetId,omitempty" yaml:"cabinetId"`
	CardID      string `json:"cardId,omitempty" yaml:"cardId"`
	PSUID       string `json:"psuId,omitempty" yaml:"psuId"`
	ProcessorID string `json:"processorId,omitempty" yaml:"processorId"`
	ReadyID     string `json:"readyId,omitempty" yaml:"readyId"`

	Extras      []ExtraComponent    `json:"extraComponents,omitempty" yaml:"extraComponents"`
	Quantity    Number              `json:"screenQty" yaml:"screenQty"`
	Overrides   map[string]Override `json:"overrides,omitempty" yaml:"overrides"`
	Surcharges  []Surcharge         `json:"extras,omitempty" yaml:"extras"`
	Commercials Commercials         `json:"commercials" yaml:"commercials"`
}

// ScreenCount is the number of physical screens of this configuration. Empty,
// non-numeric and non-positive quantities count as one screen.
func (s ScreenSpec) ScreenCount() float64 {
	if q := s.Quantity.Float(); q > 0 {
		return q
	}
	return 1
}

// Duplicate copies the configuration under a fresh id with overrides cleared.
func (s ScreenSpec) Duplicate() ScreenSpec {
	dup := s
	dup.ID = uuid.NewString()
	dup.Overrides = nil
	dup.Extras = append([]ExtraComponent(nil), s.Extras...)
	dup.Surcharges = append([]Surcharge(nil), s.Surcharges...)
	return dup
}

// PricingStrategy selects how the panel bucket sell price is derived.
type PricingStrategy string

const (
	PricingMargin      PricingStrategy = "margin"
	PricingPerScreen   PricingStrategy = "screen"
	PricingPerAreaSqft PricingStrategy = "sqft"
	PricingPerAreaSqm  PricingStrategy = "sqm"
)

// Pricing is the project-wide strategy and its parameter: a margin percentage or a
// target price.
type Pricing struct {
	Strategy PricingStrategy `json:"pricingMode" yaml:"pricingMode"`
	Value    Number          `json:"value" yaml:"value"`
}

// PaymentTerm is one payment milestone.
type PaymentTerm struct {
	Name    string `json:"name" yaml:"name"`
	Percent Number `json:"percent" yaml:"percent"`
}

// Terms are the commercial conditions printed alongside a quote.
type Terms struct {
	PriceBasis    string        `json:"price" yaml:"price"`
	DeliveryWeeks int           `json:"deliveryWeeks" yaml:"deliveryWeeks"`
	Payment       []PaymentTerm `json:"payment" yaml:"payment"`
	TaxRate       Number        `json:"taxRate" yaml:"taxRate"`
}

// ProjectSpec is a full quote request.
type ProjectSpec struct {
	Client       string       `json:"client" yaml:"client"`
	Project      string       `json:"project" yaml:"project"`
	Screens      []ScreenSpec `json:"screens" yaml:"screens"`
	Pricing      Pricing      `json:"pricing" yaml:"pricing"`
	ExchangeRate Number       `json:"exchangeRate" yaml:"exchangeRate"`
	Terms        *Terms       `json:"terms,omitempty" yaml:"terms"`
}

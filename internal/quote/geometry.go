package quote

import (
	"math"

	"github.com/andresuchdata/ledquote/internal/domain"
)

const (
	mmPerMeter = 1000.0
	mmPerFoot  = 304.8

	// SqmmPerSqft converts square millimetres to square feet.
	SqmmPerSqft = 92903.0
	// SqftPerSqm converts square metres to square feet.
	SqftPerSqm = 10.7639

	// maxAxisCabinets bounds the cabinet count per axis so the grid stays within int range.
	maxAxisCabinets = math.MaxInt32
)

// ToMillimeters converts a target dimension to millimetres. Anything that is not
// explicitly metres is treated as feet.
func ToMillimeters(v float64, unit domain.Unit) float64 {
	if unit == domain.UnitMeters {
		return v * mmPerMeter
	}
	return v * mmPerFoot
}

// ResolveGrid fits whole cabinets to the target size. It returns false when the
// target or the cabinet size is missing, or when the target needs more cabinets per
// axis than maxAxisCabinets. Callers treat both as "no result yet".
func ResolveGrid(targetWidth, targetHeight float64, unit domain.Unit, cabinetWidthMM, cabinetHeightMM float64, mode domain.SizingMode) (domain.Grid, bool) {
	if targetWidth <= 0 || targetHeight <= 0 || cabinetWidthMM <= 0 || cabinetHeightMM <= 0 {
		return domain.Grid{}, false
	}

	wMM := ToMillimeters(targetWidth, unit)
	hMM := ToMillimeters(targetHeight, unit)

	cols, okCols := fitCount(wMM/cabinetWidthMM, mode)
	rows, okRows := fitCount(hMM/cabinetHeightMM, mode)
	if !okCols || !okRows {
		return domain.Grid{}, false
	}

	finalW := float64(cols) * cabinetWidthMM
	finalH := float64(rows) * cabinetHeightMM

	return domain.Grid{
		Cols:           cols,
		Rows:           rows,
		Cabinets:       cols * rows,
		TargetWidthMM:  wMM,
		TargetHeightMM: hMM,
		WidthMM:        finalW,
		HeightMM:       finalH,
		WidthM:         finalW / mmPerMeter,
		HeightM:        finalH / mmPerMeter,
		AreaSqft:       (finalW * finalH) / SqmmPerSqft,
	}, true
}

func fitCount(raw float64, mode domain.SizingMode) (int, bool) {
	if math.IsNaN(raw) || raw > maxAxisCabinets {
		return 0, false
	}

	switch mode.Normalize() {
	case domain.SizingUp:
		return int(math.Ceil(raw)), true
	case domain.SizingDown:
		return int(math.Max(1, math.Floor(raw))), true
	default:
		return int(math.Max(1, math.Round(raw))), true
	}
}

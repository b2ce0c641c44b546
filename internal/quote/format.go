package quote

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rupee = "₹"

var indianEnglish = language.MustParse("en-IN")

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatINR formats an amount in rupees with en-IN (lakh/crore) digit grouping.
// When the fractional part is zero after rounding it is omitted.
// Example: 1234567.5 (2 decimals) => "₹12,34,567.50"; 100000 => "₹1,00,000".
func FormatINR(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if decimals < 0 {
		decimals = 0
	}

	prefix := rupee
	if v < 0 {
		prefix = "-" + rupee
		v = -v
	}

	rounded := RoundTo(v, decimals)
	if rounded == math.Trunc(rounded) {
		decimals = 0
	}
	if rounded == 0 {
		prefix = rupee
	}

	p := message.NewPrinter(indianEnglish)
	return prefix + p.Sprintf(fmt.Sprintf("%%.%df", decimals), rounded)
}

package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Number is a float that tolerates the loose shapes form and storage layers send:
// JSON numbers, numeric strings, empty strings and null. Anything that is not a
// finite number becomes 0.
type Number float64

// ParseNumber coerces raw text to a finite float64, returning 0 for empty or
// non-numeric input.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return finite(d.InexactFloat64())
}

// Float returns n as a finite float64.
func (n Number) Float() float64 {
	return finite(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(coerceJSON(data))
	return nil
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	*n = Number(ParseNumber(node.Value))
	return nil
}

func (n *Number) UnmarshalText(text []byte) error {
	*n = Number(ParseNumber(string(text)))
	return nil
}

// Scan lets nullable numeric columns land in a Number.
func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = 0
	case float64:
		*n = Number(finite(v))
	case float32:
		*n = Number(finite(float64(v)))
	case int64:
		*n = Number(v)
	case []byte:
		*n = Number(ParseNumber(string(v)))
	case string:
		*n = Number(ParseNumber(v))
	default:
		*n = 0
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Float())
}

// OptionalNumber distinguishes "not provided" from an explicit value. Empty
// strings and null leave it unset, which is how a cleared form field arrives.
type OptionalNumber struct {
	Value float64
	Set   bool
}

// Some returns an OptionalNumber holding v.
func Some(v float64) OptionalNumber {
	return OptionalNumber{Value: finite(v), Set: true}
}

func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if isBlankJSON(trimmed) {
		*o = OptionalNumber{}
		return nil
	}
	*o = Some(coerceJSON(trimmed))
	return nil
}

func (o *OptionalNumber) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
		*o = OptionalNumber{}
		return nil
	}
	*o = Some(ParseNumber(node.Value))
	return nil
}

func (o OptionalNumber) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Or returns the held value, or fallback when unset.
func (o OptionalNumber) Or(fallback float64) float64 {
	if !o.Set {
		return fallback
	}
	return o.Value
}

func coerceJSON(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if isBlankJSON(data) {
		return 0
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return 0
		}
		return ParseNumber(s)
	}
	switch string(data) {
	case "true":
		return 1
	case "false":
		return 0
	}
	return ParseNumber(string(data))
}

func isBlankJSON(data []byte) bool {
	s := string(data)
	return s == "" || s == "null" || s == `""`
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

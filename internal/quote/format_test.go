package quote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     string
	}{
		{0, 0, "₹0"},
		{999, 0, "₹999"},
		{1000, 0, "₹1,000"},
		{100000, 0, "₹1,00,000"},
		{1234567.5, 2, "₹12,34,567.50"},
		{1234567.0, 2, "₹12,34,567"},
		{-45210.256, 2, "-₹45,210.26"},
		{98765432.4, 0, "₹9,87,65,432"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.in, tc.decimals), "%v/%d", tc.in, tc.decimals)
	}
}

func TestFormatINR_LargeAmounts(t *testing.T) {
	got := FormatINR(1e20, 0)
	assert.True(t, strings.HasPrefix(got, "₹10,00,00,00,"), got)
	assert.NotContains(t, got, "-")

	assert.Equal(t, "₹0", FormatINR(-0.001, 2))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.35, RoundTo(12.3456, 2))
	assert.Equal(t, 13.0, RoundTo(12.5, 0))
	assert.Equal(t, 0.1, RoundTo(0.06, 1))
}

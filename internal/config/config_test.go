package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(viper.New())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.QuoteTTLSeconds)
	assert.Equal(t, 90.0, cfg.Quote.ExchangeRate)
	assert.Equal(t, 18.0, cfg.Quote.TaxRate)
	assert.Equal(t, "Ex-works Mumbai", cfg.Quote.PriceBasis)
	assert.Equal(t, 10, cfg.Quote.DeliveryWeeks)
}

func TestNew_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	v.Set("CATALOG_SOURCE", "Postgres")
	v.Set("QUOTE_EXCHANGE_RATE", "83.25")
	v.Set("CACHE_ENABLED", "true")

	cfg := New(v)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, 83.25, cfg.Quote.ExchangeRate)
	assert.True(t, cfg.Cache.Enabled)
}

func TestQuoteConfig_DefaultTerms(t *testing.T) {
	q := QuoteConfig{
		TaxRate:       18,
		PriceBasis:    "FOR site",
		DeliveryWeeks: 6,
		PaymentTerms:  []string{"Advance:50", "broken", ":10", "Balance: 50"},
	}

	terms := q.DefaultTerms()
	assert.Equal(t, "FOR site", terms.PriceBasis)
	assert.Equal(t, 6, terms.DeliveryWeeks)
	assert.Equal(t, 18.0, terms.TaxRate.Float())
	require.Len(t, terms.Payment, 2)
	assert.Equal(t, "Advance", terms.Payment[0].Name)
	assert.Equal(t, 50.0, terms.Payment[1].Percent.Float())
}

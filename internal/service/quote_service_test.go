package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/domain"
)

type fakeRepo struct {
	catalog   domain.Catalog
	ledger    domain.Ledger
	err       error
	ledgerErr error
}

func (f *fakeRepo) ListItems(context.Context) (domain.Catalog, error) {
	return f.catalog, f.err
}

func (f *fakeRepo) ListLedger(context.Context) (domain.Ledger, error) {
	return f.ledger, f.ledgerErr
}

type memoryCache struct {
	entries     map[string]domain.ProjectResult
	sets        int
	getErr      error
	invalidated bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]domain.ProjectResult{}}
}

func (m *memoryCache) GetProject(_ context.Context, key string) (domain.ProjectResult, bool, error) {
	if m.getErr != nil {
		return domain.ProjectResult{}, false, m.getErr
	}
	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *memoryCache) SetProject(_ context.Context, key string, result domain.ProjectResult) error {
	m.sets++
	m.entries[key] = result
	return nil
}

func (m *memoryCache) InvalidateAll(context.Context) error {
	m.invalidated = true
	m.entries = map[string]domain.ProjectResult{}
	return nil
}

func testDefaults() config.QuoteConfig {
	return config.QuoteConfig{
		ExchangeRate:  90,
		TaxRate:       18,
		PriceBasis:    "Ex-works Mumbai",
		DeliveryWeeks: 10,
		PaymentTerms:  []string{"Advance:60", "Delivery:30", "Installation:10"},
	}
}

func testRepo() *fakeRepo {
	return &fakeRepo{
		catalog: domain.Catalog{
			{ID: "mod", Kind: domain.KindModule, Brand: "Nova", Width: 250, Height: 250, Price: 1000, MaxPower: 150},
			{ID: "cab", Kind: domain.KindCabinet, Brand: "Alu", Width: 500, Height: 500, Price: 3000},
			{ID: "proc", Kind: domain.KindProcessor, Brand: "Novastar", Price: 100, Currency: domain.CurrencyForeign},
		},
		ledger: domain.Ledger{
			{ItemID: "cab", Direction: domain.DirectionIn, Qty: 10},
			{ItemID: "ghost", Direction: domain.DirectionIn, Qty: 2},
		},
	}
}

func screen() domain.ScreenSpec {
	return domain.ScreenSpec{
		TargetWidth:  1,
		TargetHeight: 1,
		Unit:         domain.UnitMeters,
		ModuleID:     "mod",
		CabinetID:    "cab",
		ProcessorID:  "proc",
	}
}

func TestQuoteService_QuoteProject(t *testing.T) {
	repo := testRepo()
	c := newMemoryCache()
	svc := NewQuoteService(repo, c, testDefaults())

	spec := domain.ProjectSpec{
		Client:  "Acme",
		Screens: []domain.ScreenSpec{screen()},
		Pricing: domain.Pricing{Strategy: domain.PricingMargin, Value: 20},
	}

	result, err := svc.QuoteProject(context.Background(), spec)
	require.NoError(t, err)

	require.Len(t, result.Screens, 1)
	assert.NotEmpty(t, result.Screens[0].ScreenID)
	// 4 cabinets: 16 modules * 1000 + 4 cabinets * 3000, processor 100 USD at 90
	assert.InDelta(t, 28000.0+9000, result.TotalCost, 1e-6)
	require.NotNil(t, result.Terms)
	assert.Equal(t, "Ex-works Mumbai", result.Terms.PriceBasis)
	assert.InDelta(t, result.TotalSell*0.18, result.Tax, 1e-6)
	assert.Len(t, result.Payments, 3)
	assert.Empty(t, spec.Screens[0].ID, "caller spec must not be mutated")

	_, err = svc.QuoteProject(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets, "second call is served from cache")
}

func TestQuoteService_QuoteProject_ExplicitTermsAndRate(t *testing.T) {
	svc := NewQuoteService(testRepo(), nil, testDefaults())

	result, err := svc.QuoteProject(context.Background(), domain.ProjectSpec{
		Screens:      []domain.ScreenSpec{screen()},
		ExchangeRate: 80,
		Terms:        &domain.Terms{TaxRate: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, 28000.0+8000, result.TotalCost, 1e-6)
	assert.Zero(t, result.Tax)
}

func TestQuoteService_QuoteProject_Incomplete(t *testing.T) {
	svc := NewQuoteService(testRepo(), nil, testDefaults())

	_, err := svc.QuoteProject(context.Background(), domain.ProjectSpec{Screens: []domain.ScreenSpec{{ModuleID: "mod"}}})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestQuoteService_QuoteProject_RepositoryError(t *testing.T) {
	repo := testRepo()
	repo.ledgerErr = errors.New("ledger offline")
	svc := NewQuoteService(repo, nil, testDefaults())

	_, err := svc.QuoteProject(context.Background(), domain.ProjectSpec{Screens: []domain.ScreenSpec{screen()}})
	assert.ErrorContains(t, err, "ledger offline")
}

func TestQuoteService_CacheFailureIsNotFatal(t *testing.T) {
	c := newMemoryCache()
	c.getErr = errors.New("redis down")
	svc := NewQuoteService(testRepo(), c, testDefaults())

	_, err := svc.QuoteProject(context.Background(), domain.ProjectSpec{Screens: []domain.ScreenSpec{screen()}})
	require.NoError(t, err)
}

func TestQuoteService_QuoteScreen(t *testing.T) {
	svc := NewQuoteService(testRepo(), nil, testDefaults())

	res, err := svc.QuoteScreen(context.Background(), ScreenRequest{Screen: screen(), Pricing: domain.Pricing{Strategy: domain.PricingPerScreen, Value: 50000}})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Grid.Cabinets)
	assert.InDelta(t, 50000.0, res.Sell.PanelTotal, 1e-6)

	_, err = svc.QuoteScreen(context.Background(), ScreenRequest{})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestQuoteService_StockLevels(t *testing.T) {
	svc := NewQuoteService(testRepo(), nil, testDefaults())

	levels, err := svc.StockLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, StockLevel{ItemID: "cab", Kind: domain.KindCabinet, Label: "Alu", Qty: 10}, levels[0])
	assert.Equal(t, "ghost", levels[1].ItemID)
	assert.Empty(t, levels[1].Label)
}

func TestQuoteService_InvalidateCache(t *testing.T) {
	c := newMemoryCache()
	svc := NewQuoteService(testRepo(), c, testDefaults())
	require.NoError(t, svc.InvalidateCache(context.Background()))
	assert.True(t, c.invalidated)
}

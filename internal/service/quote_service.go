package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/ledquote/internal/cache"
	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/quote"
	"github.com/andresuchdata/ledquote/internal/repository"
)

// ErrIncompleteSelection means no configuration had enough selections to be priced.
// Callers should prompt for the missing choices rather than treat it as a failure.
var ErrIncompleteSelection = errors.New("screen configuration is incomplete")

// ScreenRequest prices a single configuration on its own.
type ScreenRequest struct {
	Screen       domain.ScreenSpec `json:"screen"`
	Pricing      domain.Pricing    `json:"pricing"`
	ExchangeRate domain.Number     `json:"exchangeRate"`
}

// StockLevel is the current stock of one catalog item.
type StockLevel struct {
	ItemID string          `json:"itemId"`
	Kind   domain.ItemKind `json:"type,omitempty"`
	Label  string          `json:"label,omitempty"`
	Qty    float64         `json:"qty"`
}

type QuoteService struct {
	repo     repository.CatalogRepository
	cache    cache.QuoteCache
	defaults config.QuoteConfig
}

func NewQuoteService(repo repository.CatalogRepository, cacheImpl cache.QuoteCache, defaults config.QuoteConfig) *QuoteService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopQuoteCache()
	}
	return &QuoteService{repo: repo, cache: cacheImpl, defaults: defaults}
}

// QuoteScreen prices one configuration against the current catalog.
func (s *QuoteService) QuoteScreen(ctx context.Context, req ScreenRequest) (domain.BOMResult, error) {
	catalog, err := s.repo.ListItems(ctx)
	if err != nil {
		return domain.BOMResult{}, err
	}

	if req.Screen.ID == "" {
		req.Screen.ID = uuid.NewString()
	}
	res, ok := quote.CalculateScreen(req.Screen, req.Pricing, catalog, s.normalizer(req.ExchangeRate))
	if !ok {
		return domain.BOMResult{}, ErrIncompleteSelection
	}
	return res, nil
}

// QuoteProject prices every configuration of spec, aggregates them and nets the
// consolidated bill of materials against stock. Results are cached per request and
// catalog snapshot.
func (s *QuoteService) QuoteProject(ctx context.Context, spec domain.ProjectSpec) (domain.ProjectResult, error) {
	start := time.Now()

	catalog, ledger, err := s.load(ctx)
	if err != nil {
		return domain.ProjectResult{}, err
	}

	spec = s.withDefaults(spec)

	key, err := cache.Key(spec, catalog, ledger)
	if err != nil {
		log.Warn().Err(err).Msg("quote: cache key failed")
	} else if cached, ok, err := s.cache.GetProject(ctx, key); err == nil && ok {
		log.Debug().Str("key", key).Msg("quote: cache hit")
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("quote: cache get project failed")
	}

	for i := range spec.Screens {
		if spec.Screens[i].ID == "" {
			spec.Screens[i].ID = uuid.NewString()
		}
	}

	result, ok := quote.CalculateProject(spec, catalog, ledger, s.normalizer(spec.ExchangeRate))
	if !ok {
		return domain.ProjectResult{}, ErrIncompleteSelection
	}

	if key != "" {
		if err := s.cache.SetProject(ctx, key, result); err != nil {
			log.Warn().Err(err).Msg("quote: cache set project failed")
		}
	}

	log.Info().
		Str("client", spec.Client).
		Int("screens", len(result.Screens)).
		Float64("total_sell", result.TotalSell).
		Dur("duration", time.Since(start)).
		Msg("quote: project priced")

	return result, nil
}

// Catalog returns the current inventory catalog.
func (s *QuoteService) Catalog(ctx context.Context) (domain.Catalog, error) {
	return s.repo.ListItems(ctx)
}

// StockLevels reports current stock for every ledger item, ordered by item id.
func (s *QuoteService) StockLevels(ctx context.Context) ([]StockLevel, error) {
	catalog, ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	levels := ledger.StockLevels()
	out := make([]StockLevel, 0, len(levels))
	for id, qty := range levels {
		level := StockLevel{ItemID: id, Qty: qty}
		if item, ok := catalog.Find(id); ok {
			level.Kind = item.Kind
			level.Label = item.Label()
		}
		out = append(out, level)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// InvalidateCache drops every cached project result.
func (s *QuoteService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("invalidate quote cache: %w", err)
	}
	return nil
}

func (s *QuoteService) load(ctx context.Context) (domain.Catalog, domain.Ledger, error) {
	var (
		catalog domain.Catalog
		ledger  domain.Ledger
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.repo.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = s.repo.ListLedger(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return catalog, ledger, nil
}

func (s *QuoteService) withDefaults(spec domain.ProjectSpec) domain.ProjectSpec {
	if spec.ExchangeRate.Float() <= 0 {
		spec.ExchangeRate = domain.Number(s.defaults.ExchangeRate)
	}
	if spec.Terms == nil {
		terms := s.defaults.DefaultTerms()
		spec.Terms = &terms
	}
	spec.Screens = append([]domain.ScreenSpec(nil), spec.Screens...)
	return spec
}

func (s *QuoteService) normalizer(rate domain.Number) quote.Normalizer {
	r := rate.Float()
	if r <= 0 {
		r = s.defaults.ExchangeRate
	}
	return quote.Normalizer{ExchangeRate: r}
}

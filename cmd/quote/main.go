package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/ledquote/internal/cache"
	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/repository"
	"github.com/andresuchdata/ledquote/internal/repository/source"
	"github.com/andresuchdata/ledquote/internal/service"
	"github.com/andresuchdata/ledquote/pkg/logger"
)

type ctxKey string

const (
	serviceKey ctxKey = "quote-service"
	cleanupKey ctxKey = "cleanup"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "quote",
		Usage: "Price LED video wall projects against the inventory catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Catalog source: file, postgres, s3 or firestore",
				EnvVars: []string{"CATALOG_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Catalog file path or object key",
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "ledger",
				Usage:   "Stock ledger file path or object key",
				EnvVars: []string{"LEDGER_PATH"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "project",
				Usage: "Quote a project spec file (YAML or JSON)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "spec",
						Aliases:  []string{"s"},
						Usage:    "Path to the project spec",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full result as JSON",
					},
				},
				Before: setup,
				After:  teardown,
				Action: runProject,
			},
			{
				Name:   "stock",
				Usage:  "Print current stock levels from the ledger",
				Before: setup,
				After:  teardown,
				Action: runStock,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("quote failed")
		os.Exit(1)
	}
}

func setup(c *cli.Context) error {
	cfg := config.Load()
	logger.Setup(c.String("log-level"), cfg.Log.Format)

	if v := c.String("source"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := c.String("catalog"); v != "" {
		cfg.Catalog.CatalogPath = v
	}
	if v := c.String("ledger"); v != "" {
		cfg.Catalog.LedgerPath = v
	}

	repo, cleanup, err := source.Open(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("open catalog source: %w", err)
	}

	svc := service.NewQuoteService(repo, cache.NewNoopQuoteCache(), cfg.Quote)
	c.Context = context.WithValue(c.Context, serviceKey, svc)
	c.Context = context.WithValue(c.Context, cleanupKey, cleanup)
	return nil
}

func teardown(c *cli.Context) error {
	if cleanup, ok := c.Context.Value(cleanupKey).(func()); ok {
		cleanup()
	}
	return nil
}

func quoteService(c *cli.Context) *service.QuoteService {
	return c.Context.Value(serviceKey).(*service.QuoteService)
}

func runProject(c *cli.Context) error {
	data, err := os.ReadFile(c.String("spec"))
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}

	var spec domain.ProjectSpec
	if err := repository.Decode(c.String("spec"), data, &spec); err != nil {
		return err
	}

	result, err := quoteService(c).QuoteProject(c.Context, spec)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeSummary(c.App.Writer, result)
}

func runStock(c *cli.Context) error {
	levels, err := quoteService(c).StockLevels(c.Context)
	if err != nil {
		return err
	}
	return writeStock(c.App.Writer, levels)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/migrations"
	"github.com/andresuchdata/ledquote/internal/repository"
	"github.com/andresuchdata/ledquote/internal/repository/postgres"
	"github.com/andresuchdata/ledquote/internal/storage"
	"github.com/andresuchdata/ledquote/pkg/logger"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (defaults to the DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func fileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "catalog",
			Usage:   "Catalog file (YAML or JSON)",
			Value:   "./data/catalog.yaml",
			EnvVars: []string{"CATALOG_PATH"},
		},
		&cli.StringFlag{
			Name:    "ledger",
			Usage:   "Stock ledger file (YAML or JSON)",
			Value:   "./data/ledger.yaml",
			EnvVars: []string{"LEDGER_PATH"},
		},
	}
}

func initDB(c *cli.Context) error {
	dsn := c.String("db-url")
	if dsn == "" {
		dsn = postgres.DSN(config.Load().Database)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	return c.Context.Value(dbKey).(*sql.DB)
}

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	app := &cli.App{
		Name:  "seed",
		Usage: "Prepare catalog sources: schema, Postgres seed and object storage upload",
		Flags: []cli.Flag{newDBURLFlag()},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply pending schema migrations",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return migrations.Up(dbFrom(c))
				},
			},
			{
				Name:   "status",
				Usage:  "Show schema migration status",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return migrations.Status(dbFrom(c))
				},
			},
			{
				Name:   "catalog",
				Usage:  "Upsert catalog items and append ledger movements",
				Flags:  append(fileFlags(), newDBURLFlag()),
				Before: initDB,
				After:  closeDB,
				Action: runCatalogSeed,
			},
			{
				Name:  "upload",
				Usage: "Upload catalog and ledger files to the configured bucket",
				Flags: append(fileFlags(), &cli.StringFlag{
					Name:  "prefix",
					Usage: "Key prefix inside the bucket",
				}),
				Action: func(c *cli.Context) error {
					return runUpload(c, cfg.Storage)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed failed")
	}
}

func runCatalogSeed(c *cli.Context) error {
	catalog, ledger, err := readFiles(c.String("catalog"), c.String("ledger"))
	if err != nil {
		return err
	}

	logger.Log.Info().
		Int("items", len(catalog)).
		Int("movements", len(ledger)).
		Msg("Seeding catalog")

	db := postgres.Wrap(sqlx.NewDb(dbFrom(c), "pgx"), 1)
	err = db.WithTx(c.Context, func(tx *sql.Tx) error {
		return repository.NewCatalogSeeder(tx).Seed(c.Context, catalog, ledger)
	})
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Log.Info().Msg("Catalog seeding completed")
	return nil
}

func runUpload(c *cli.Context, cfg config.StorageConfig) error {
	client, err := storage.NewMinioClient(cfg)
	if err != nil {
		return err
	}

	prefix := c.String("prefix")
	for _, path := range []string{c.String("catalog"), c.String("ledger")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		key := objectKey(prefix, path)
		if err := client.UploadObject(c.Context, key, data); err != nil {
			return err
		}
		logger.Log.Info().Str("key", key).Int("bytes", len(data)).Msg("Uploaded")
	}

	objects, err := client.ListObjects(c.Context, prefix)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		fmt.Fprintf(c.App.Writer, "%s\t%d\n", obj.Key, obj.Size)
	}
	return nil
}

func readFiles(catalogPath, ledgerPath string) (domain.Catalog, domain.Ledger, error) {
	var catalog domain.Catalog
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := repository.Decode(catalogPath, data, &catalog); err != nil {
		return nil, nil, err
	}

	var ledger domain.Ledger
	if ledgerPath == "" {
		return catalog, nil, nil
	}
	data, err = os.ReadFile(ledgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if err := repository.Decode(ledgerPath, data, &ledger); err != nil {
		return nil, nil, err
	}
	return catalog, ledger, nil
}

func objectKey(prefix, path string) string {
	name := filepath.Base(path)
	if prefix == "" {
		return name
	}
	return filepath.ToSlash(filepath.Join(prefix, name))
}

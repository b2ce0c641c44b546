package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/repository"
	"github.com/andresuchdata/ledquote/internal/repository/firestore"
	"github.com/andresuchdata/ledquote/internal/repository/postgres"
	"github.com/andresuchdata/ledquote/internal/storage"
)

// Open builds the catalog repository selected by cfg.Catalog.Source. The returned
// cleanup releases any connection the backend holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (repository.CatalogRepository, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceFile, "":
		return repository.NewFileCatalogRepository(cfg.Catalog.CatalogPath, cfg.Catalog.LedgerPath), noop, nil

	case config.SourcePostgres:
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close postgres pool")
			}
		}
		return postgres.NewCatalogRepository(db), cleanup, nil

	case config.SourceS3:
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewObjectCatalogRepository(store, cfg.Catalog.CatalogPath, cfg.Catalog.LedgerPath), noop, nil

	case config.SourceFirestore:
		client, err := firestore.NewClient(ctx, cfg.Catalog.FirestoreProject, cfg.Catalog.FirestoreCredentials)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close firestore client")
			}
		}
		return firestore.NewCatalogRepository(client), cleanup, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/storage"
)

// ObjectCatalogRepository reads catalog and ledger documents from S3-compatible storage.
type ObjectCatalogRepository struct {
	store      storage.ObjectStorage
	catalogKey string
	ledgerKey  string
}

func NewObjectCatalogRepository(store storage.ObjectStorage, catalogKey, ledgerKey string) *ObjectCatalogRepository {
	return &ObjectCatalogRepository{store: store, catalogKey: catalogKey, ledgerKey: ledgerKey}
}

func (r *ObjectCatalogRepository) ListItems(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog
	if err := r.fetch(ctx, r.catalogKey, &catalog); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}

func (r *ObjectCatalogRepository) ListLedger(ctx context.Context) (domain.Ledger, error) {
	if r.ledgerKey == "" {
		return nil, nil
	}

	var ledger domain.Ledger
	if err := r.fetch(ctx, r.ledgerKey, &ledger); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger, nil
}

func (r *ObjectCatalogRepository) fetch(ctx context.Context, key string, out any) error {
	data, err := r.store.GetObject(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return Decode(key, data, out)
}

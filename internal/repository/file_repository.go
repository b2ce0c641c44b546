package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/andresuchdata/ledquote/internal/domain"
)

// FileCatalogRepository reads the catalog and ledger from local JSON or YAML files.
// An empty ledger path means no stock has been recorded.
type FileCatalogRepository struct {
	catalogPath string
	ledgerPath  string
}

func NewFileCatalogRepository(catalogPath, ledgerPath string) *FileCatalogRepository {
	return &FileCatalogRepository{catalogPath: catalogPath, ledgerPath: ledgerPath}
}

func (r *FileCatalogRepository) ListItems(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog
	if err := readFile(ctx, r.catalogPath, &catalog); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}

func (r *FileCatalogRepository) ListLedger(ctx context.Context) (domain.Ledger, error) {
	if r.ledgerPath == "" {
		return nil, nil
	}

	var ledger domain.Ledger
	if err := readFile(ctx, r.ledgerPath, &ledger); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger, nil
}

func readFile(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(path, data, out)
}

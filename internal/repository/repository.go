package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andresuchdata/ledquote/internal/domain"
)

var (
	// ErrNotFound is returned when a catalog or ledger source does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// CatalogRepository provides the inventory snapshot a quote is computed against.
type CatalogRepository interface {
	ListItems(ctx context.Context) (domain.Catalog, error)
	ListLedger(ctx context.Context) (domain.Ledger, error)
}

// Decode unmarshals data into out, choosing JSON or YAML from the name's extension.
func Decode(name string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	return nil
}

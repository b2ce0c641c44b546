package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/storage"
)

const catalogYAML = `
- id: mod-p3
  type: module
  brand: Nova
  model: P3.9
  width: 250
  height: "250"
  price: "1,000"
  maxPower: 150
- id: cab-500
  type: cabinet
  width: 500
  height: 500
  price: 3000
`

const ledgerJSON = `[
  {"itemId":"cab-500","type":"in","qty":"40"},
  {"itemId":"cab-500","type":"out","qty":5}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFileCatalogRepository(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileCatalogRepository(writeFile(t, dir, "catalog.yaml", catalogYAML), writeFile(t, dir, "ledger.json", ledgerJSON))

	catalog, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, domain.KindModule, catalog[0].Kind)
	assert.Equal(t, 250.0, catalog[0].Height.Float())
	assert.Zero(t, catalog[0].Price.Float(), "grouped digits are not numeric")

	ledger, err := repo.ListLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 35.0, ledger.Stock("cab-500"))
}

func TestFileCatalogRepository_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileCatalogRepository(filepath.Join(dir, "nope.json"), "").ListItems(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	ledger, err := NewFileCatalogRepository("", filepath.Join(dir, "nope.json")).ListLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestFileCatalogRepository_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileCatalogRepository(writeFile(t, dir, "catalog.csv", "id,type"), "")

	_, err := repo.ListItems(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) ListObjects(_ context.Context, _ string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for k, v := range m.objects {
		out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
	}
	return out, nil
}

func (m *memoryStorage) GetObject(_ context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrObjectNotFound)
	}
	return data, nil
}

func (m *memoryStorage) UploadObject(_ context.Context, key string, data []byte) error {
	m.objects[key] = data
	return nil
}

func TestObjectCatalogRepository(t *testing.T) {
	store := &memoryStorage{objects: map[string][]byte{
		"inventory/catalog.yml": []byte(catalogYAML),
		"inventory/ledger.json": []byte(ledgerJSON),
	}}
	repo := NewObjectCatalogRepository(store, "inventory/catalog.yml", "inventory/ledger.json")

	catalog, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	_, ok := catalog.Find("cab-500")
	assert.True(t, ok)

	ledger, err := repo.ListLedger(context.Background())
	require.NoError(t, err)
	assert.Len(t, ledger, 2)

	missing := NewObjectCatalogRepository(store, "inventory/other.json", "inventory/none.json")
	_, err = missing.ListItems(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	ledger, err = missing.ListLedger(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ledger)
}

package source

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/ledquote/internal/config"
	"github.com/andresuchdata/ledquote/internal/repository"
)

func TestOpen_File(t *testing.T) {
	cfg := config.New(viper.New())

	repo, cleanup, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &repository.FileCatalogRepository{}, repo)
}

func TestOpen_Unknown(t *testing.T) {
	v := viper.New()
	v.Set("CATALOG_SOURCE", "ftp")

	_, cleanup, err := Open(context.Background(), config.New(v))
	assert.Error(t, err)
	assert.NotNil(t, cleanup)
}

func TestOpen_S3RequiresEndpoint(t *testing.T) {
	v := viper.New()
	v.Set("CATALOG_SOURCE", config.SourceS3)

	_, _, err := Open(context.Background(), config.New(v))
	assert.ErrorContains(t, err, "endpoint")
}

func TestOpen_FirestoreRequiresProject(t *testing.T) {
	v := viper.New()
	v.Set("CATALOG_SOURCE", config.SourceFirestore)

	_, _, err := Open(context.Background(), config.New(v))
	assert.ErrorContains(t, err, "project id")
}

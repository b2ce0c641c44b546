package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/repository"
)

const (
	inventoryCollection    = "inventory"
	transactionsCollection = "transactions"

	datastoreScope = "https://www.googleapis.com/auth/datastore"
)

// CatalogRepository reads inventory items and stock transactions from Firestore.
type CatalogRepository struct {
	client *firestore.Client
}

// NewClient connects to projectID. With empty credentialsJSON it falls back to
// application default credentials.
func NewClient(ctx context.Context, projectID, credentialsJSON string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id must be provided")
	}

	var opts []option.ClientOption
	if credentialsJSON != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), datastoreScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse firestore credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client (project=%s): %w", projectID, err)
	}
	return client, nil
}

func NewCatalogRepository(client *firestore.Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

func (r *CatalogRepository) ListItems(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog
	err := r.each(ctx, inventoryCollection, func(id string, data map[string]any) error {
		var item domain.CatalogItem
		if err := decodeDoc(data, &item); err != nil {
			return fmt.Errorf("inventory/%s: %w", id, err)
		}
		if item.ID == "" {
			item.ID = id
		}
		catalog = append(catalog, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}

func (r *CatalogRepository) ListLedger(ctx context.Context) (domain.Ledger, error) {
	var ledger domain.Ledger
	err := r.each(ctx, transactionsCollection, func(id string, data map[string]any) error {
		var entry domain.LedgerEntry
		if err := decodeDoc(data, &entry); err != nil {
			return fmt.Errorf("transactions/%s: %w", id, err)
		}
		if entry.ID == "" {
			entry.ID = id
		}
		ledger = append(ledger, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger, nil
}

func (r *CatalogRepository) each(ctx context.Context, collection string, fn func(id string, data map[string]any) error) error {
	it := r.client.Collection(collection).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("%s: %w", collection, repository.ErrNotFound)
			}
			return err
		}
		if err := fn(doc.Ref.ID, doc.Data()); err != nil {
			return err
		}
	}
}

// decodeDoc routes document data through JSON so that loosely typed fields (numbers
// stored as strings) get the same coercion as every other source.
func decodeDoc(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

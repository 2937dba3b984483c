package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
)

// ProductStore defines the interface for catalog persistence. Products are
// stored as a kind discriminator plus a variant payload; the store decodes
// rows back into the concrete domain variants.
type ProductStore interface {
	// Create saves a new product of any variant.
	// Returns validation errors from the domain product if data is invalid.
	Create(ctx context.Context, product domain.Product) error

	// GetByID retrieves a product by its unique ID, decoded into its
	// concrete variant.
	// Returns ErrProductNotFound if the product does not exist.
	// Returns a wrapped domain.ErrUnknownProductKind if the stored kind
	// has no decoder; a single lookup surfaces the corruption instead of
	// hiding it.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error)

	// List retrieves all products in the catalog, newest first. Rows whose
	// kind has no decoder are skipped rather than failing the whole listing.
	List(ctx context.Context) ([]domain.Product, error)

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProductStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
)

// CartItemStore defines the interface for cart persistence. A member's
// cart holds each product at most once, keyed by (member, product).
type CartItemStore interface {
	// Create saves a new cart item.
	// Returns ErrDuplicateCartItem if the member's cart already holds the product.
	// Returns validation errors from the domain CartItem if data is invalid.
	Create(ctx context.Context, item *domain.CartItem) error

	// Exists reports whether the member's cart already holds the product.
	Exists(ctx context.Context, memberID, productID uuid.UUID) (bool, error)

	// ListByMember retrieves the member's cart items, most recently added first.
	// Returns an empty slice if the cart is empty.
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.CartItem, error)

	// Delete removes the product from the member's cart.
	// Returns ErrCartItemNotFound if the cart does not hold the product.
	Delete(ctx context.Context, memberID, productID uuid.UUID) error

	// WithTx returns a new CartItemStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) CartItemStore
}

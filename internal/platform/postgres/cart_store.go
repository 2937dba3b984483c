package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/store"
)

// PostgresCartItemStore implements the store.CartItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCartItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCartItemStore creates a new PostgreSQL implementation of the CartItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCartItemStore(db store.DBTX, logger *slog.Logger) *PostgresCartItemStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCartItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "cart_store")),
	}
}

// Ensure PostgresCartItemStore implements store.CartItemStore interface
var _ store.CartItemStore = (*PostgresCartItemStore)(nil)

// Create implements store.CartItemStore.Create
// It saves a new cart item, handling domain validation.
// Returns store.ErrDuplicateCartItem if the member's cart already holds the product.
// Returns store.ErrInvalidEntity if the member or product doesn't exist (foreign key violation).
// Returns validation errors from the domain CartItem if data is invalid.
func (s *PostgresCartItemStore) Create(ctx context.Context, item *domain.CartItem) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate item data
	if err := item.Validate(); err != nil {
		log.Warn("cart item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO cart_items (id, member_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.MemberID,
		item.ProductID,
		item.CreatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (product already in cart)
		if IsUniqueViolation(err) {
			log.Debug("duplicate product during cart item creation",
				slog.String("member_id", item.MemberID.String()),
				slog.String("product_id", item.ProductID.String()))
			return MapUniqueViolation(err, "cart item", "", store.ErrDuplicateCartItem)
		}

		// Check for foreign key violation (member or product doesn't exist)
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during cart item creation",
				slog.String("error", err.Error()),
				slog.String("member_id", item.MemberID.String()),
				slog.String("product_id", item.ProductID.String()))
			return fmt.Errorf("%w: referenced member or product not found",
				store.ErrInvalidEntity)
		}

		// Log the error
		log.Error("failed to create cart item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()),
			slog.String("member_id", item.MemberID.String()))

		// Return the original error
		return err
	}

	log.Info("cart item created successfully",
		slog.String("item_id", item.ID.String()),
		slog.String("member_id", item.MemberID.String()),
		slog.String("product_id", item.ProductID.String()))
	return nil
}

// Exists implements store.CartItemStore.Exists
// It reports whether the member's cart already holds the given product.
func (s *PostgresCartItemStore) Exists(ctx context.Context, memberID, productID uuid.UUID) (bool, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM cart_items
			WHERE member_id = $1 AND product_id = $2
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, memberID, productID).Scan(&exists)
	if err != nil {
		log.Error("failed to check cart item existence",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return false, err
	}

	return exists, nil
}

// ListByMember implements store.CartItemStore.ListByMember
// It retrieves the member's cart items, most recently added first.
// Returns an empty slice if the cart is empty.
func (s *PostgresCartItemStore) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.CartItem, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing cart items", slog.String("member_id", memberID.String()))

	query := `
		SELECT id, member_id, product_id, created_at
		FROM cart_items
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		log.Error("failed to query cart items",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return nil, err
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var items []*domain.CartItem
	for rows.Next() {
		var item domain.CartItem

		err := rows.Scan(
			&item.ID,
			&item.MemberID,
			&item.ProductID,
			&item.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan cart item row",
				slog.String("error", err.Error()))
			return nil, err
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no items found
	if items == nil {
		items = []*domain.CartItem{}
	}

	log.Debug("listed cart items",
		slog.String("member_id", memberID.String()),
		slog.Int("count", len(items)))
	return items, nil
}

// Delete implements store.CartItemStore.Delete
// It removes the product from the member's cart.
// Returns store.ErrCartItemNotFound if the cart does not hold the product.
func (s *PostgresCartItemStore) Delete(ctx context.Context, memberID, productID uuid.UUID) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting cart item",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))

	query := `
		DELETE FROM cart_items
		WHERE member_id = $1 AND product_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, memberID, productID)
	if err != nil {
		log.Error("failed to delete cart item",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return err
	}

	// Check if a row was actually deleted
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return err
	}

	// If no rows were affected, the cart didn't hold the product
	if rowsAffected == 0 {
		log.Debug("cart item not found for delete",
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return store.ErrCartItemNotFound
	}

	log.Info("cart item deleted successfully",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))
	return nil
}

// WithTx implements store.CartItemStore.WithTx
// It returns a new CartItemStore instance that uses the provided transaction.
// This allows multiple operations to be executed within a single transaction.
func (s *PostgresCartItemStore) WithTx(tx *sql.Tx) store.CartItemStore {
	return &PostgresCartItemStore{
		db:     tx,
		logger: s.logger,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/store"
)

// CartServiceError is a custom error type for cart service errors.
type CartServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CartServiceError.
func (e *CartServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cart service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("cart service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CartServiceError) Unwrap() error {
	return e.Err
}

// NewCartServiceError creates a new CartServiceError.
func NewCartServiceError(operation, message string, err error) *CartServiceError {
	return &CartServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// CartRepository defines the repository interface for cart persistence at the
// service layer. Cart operations are single statements, so no transactional
// variant is needed.
type CartRepository interface {
	// Create saves a new cart item
	Create(ctx context.Context, item *domain.CartItem) error

	// Exists reports whether the member's cart already holds the product
	Exists(ctx context.Context, memberID, productID uuid.UUID) (bool, error)

	// ListByMember retrieves the member's cart items, most recently added first
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.CartItem, error)

	// Delete removes the product from the member's cart
	Delete(ctx context.Context, memberID, productID uuid.UUID) error
}

// ProductRepository defines the repository interface for catalog reads at the
// service layer.
type ProductRepository interface {
	// GetByID retrieves a product by its unique ID, decoded into its concrete variant
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error)

	// List retrieves all products in the catalog, newest first
	List(ctx context.Context) ([]domain.Product, error)
}

// CartContents is the client-facing view of a member's cart: the item count
// and each product rendered as its variant-specific summary.
type CartContents struct {
	Count int                     `json:"count"`
	Items []domain.ProductSummary `json:"items"`
}

// CartService provides cart operations. Every operation takes the
// authenticated member ID explicitly.
type CartService interface {
	// AddItem places the product in the member's cart.
	// Returns store.ErrMemberNotFound or store.ErrProductNotFound when
	// either side is missing, and store.ErrDuplicateCartItem when the cart
	// already holds the product.
	AddItem(ctx context.Context, memberID, productID uuid.UUID) error

	// ListItems returns the member's cart with each product mapped to its
	// variant-specific summary. Items whose product can no longer be
	// resolved are skipped.
	ListItems(ctx context.Context, memberID uuid.UUID) (*CartContents, error)

	// RemoveItem removes the product from the member's cart.
	// Returns store.ErrCartItemNotFound when the cart does not hold it.
	RemoveItem(ctx context.Context, memberID, productID uuid.UUID) error
}

// cartServiceImpl implements the CartService interface
type cartServiceImpl struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	memberRepo  MemberRepository
	logger      *slog.Logger
}

// NewCartService creates a new CartService
// It returns an error if any of the required dependencies are nil.
func NewCartService(
	cartRepo CartRepository,
	productRepo ProductRepository,
	memberRepo MemberRepository,
	logger *slog.Logger,
) (CartService, error) {
	// Validate dependencies
	if cartRepo == nil {
		return nil, domain.NewValidationError("cartRepo", "cannot be nil", domain.ErrValidation)
	}
	if productRepo == nil {
		return nil, domain.NewValidationError("productRepo", "cannot be nil", domain.ErrValidation)
	}
	if memberRepo == nil {
		return nil, domain.NewValidationError("memberRepo", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
		logger:      logger.With(slog.String("component", "cart_service")),
	}, nil
}

// AddItem implements CartService.AddItem
// It resolves both sides of the (member, product) pair before inserting so a
// bad ID fails with the specific not-found error rather than an FK violation.
func (s *cartServiceImpl) AddItem(ctx context.Context, memberID, productID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("cart add for unknown member",
				slog.String("member_id", memberID.String()))
			return NewCartServiceError("add_item", "member not found", store.ErrMemberNotFound)
		}
		log.Error("failed to resolve member for cart add",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return NewCartServiceError("add_item", "failed to resolve member", err)
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("cart add for unknown product",
				slog.String("member_id", memberID.String()),
				slog.String("product_id", productID.String()))
			return NewCartServiceError("add_item", "product not found", store.ErrProductNotFound)
		}
		log.Error("failed to resolve product for cart add",
			slog.String("error", err.Error()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("add_item", "failed to resolve product", err)
	}

	exists, err := s.cartRepo.Exists(ctx, memberID, productID)
	if err != nil {
		log.Error("failed to check cart for existing item",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("add_item", "failed to check cart", err)
	}
	if exists {
		log.Debug("attempted to add duplicate cart item",
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("add_item", "cart already holds product", store.ErrDuplicateCartItem)
	}

	item, err := domain.NewCartItem(memberID, productID)
	if err != nil {
		log.Error("failed to create cart item object",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("add_item", "failed to create cart item object", err)
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		// A concurrent add can slip past the Exists check; the unique
		// constraint reports it as a duplicate.
		if store.IsDuplicateError(err) {
			log.Debug("concurrent duplicate cart add",
				slog.String("member_id", memberID.String()),
				slog.String("product_id", productID.String()))
			return NewCartServiceError("add_item", "cart already holds product", store.ErrDuplicateCartItem)
		}
		log.Error("failed to save cart item",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("add_item", "failed to save cart item", err)
	}

	log.Info("cart item added successfully",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))

	return nil
}

// ListItems implements CartService.ListItems
// Each cart entry is resolved to its product and rendered through the
// variant's own Summary method; no type switching happens here.
func (s *cartServiceImpl) ListItems(ctx context.Context, memberID uuid.UUID) (*CartContents, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.cartRepo.ListByMember(ctx, memberID)
	if err != nil {
		log.Error("failed to list cart items",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return nil, NewCartServiceError("list_items", "failed to list cart items", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			// A product removed from the catalog or stored with an
			// undecodable kind should not break the whole cart view.
			if store.IsNotFoundError(err) || errors.Is(err, domain.ErrUnknownProductKind) {
				log.Warn("skipping unresolvable cart item",
					slog.String("error", err.Error()),
					slog.String("member_id", memberID.String()),
					slog.String("product_id", item.ProductID.String()))
				continue
			}
			log.Error("failed to resolve cart item product",
				slog.String("error", err.Error()),
				slog.String("member_id", memberID.String()),
				slog.String("product_id", item.ProductID.String()))
			return nil, NewCartServiceError("list_items", "failed to resolve product", err)
		}

		summaries = append(summaries, product.Summary())
	}

	log.Debug("listed cart items successfully",
		slog.String("member_id", memberID.String()),
		slog.Int("count", len(summaries)))

	return &CartContents{
		Count: len(summaries),
		Items: summaries,
	}, nil
}

// RemoveItem implements CartService.RemoveItem
func (s *cartServiceImpl) RemoveItem(ctx context.Context, memberID, productID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cartRepo.Delete(ctx, memberID, productID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("attempted to remove absent cart item",
				slog.String("member_id", memberID.String()),
				slog.String("product_id", productID.String()))
			return NewCartServiceError("remove_item", "cart item not found", store.ErrCartItemNotFound)
		}
		log.Error("failed to remove cart item",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()),
			slog.String("product_id", productID.String()))
		return NewCartServiceError("remove_item", "failed to remove cart item", err)
	}

	log.Info("cart item removed successfully",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))

	return nil
}

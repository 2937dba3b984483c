package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
)

// ProductService provides read access to the catalog.
type ProductService interface {
	// GetByID retrieves a product by its ID, decoded into its concrete
	// variant. Returns store.ErrProductNotFound when absent.
	GetByID(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	// List retrieves the whole catalog, newest first.
	List(ctx context.Context) ([]domain.Product, error)
}

// ProductServiceImpl implements the ProductService interface
type ProductServiceImpl struct {
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productStore store.ProductStore, logger *slog.Logger) ProductService {
	return &ProductServiceImpl{
		productStore: productStore,
		logger:       logger.With("component", "product_service"),
	}
}

// GetByID retrieves a product by its ID
func (s *ProductServiceImpl) GetByID(
	ctx context.Context,
	productID uuid.UUID,
) (domain.Product, error) {
	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("product not found",
				"product_id", productID)
		} else {
			s.logger.Error("failed to retrieve product",
				"error", err,
				"product_id", productID)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	return product, nil
}

// List retrieves the whole catalog
func (s *ProductServiceImpl) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list products",
			"error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug("listed products successfully",
		"count", len(products))

	return products, nil
}

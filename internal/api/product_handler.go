package api

import (
	"log/slog"
	"net/http"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/service"
)

// ProductHandler handles catalog HTTP requests. Product retrieval is
// public and requires no authentication.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// GetProduct handles GET /api/products/{productID} requests.
// The response carries the variant-specific summary of the product.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	productID, err := getPathUUID(r, "productID")
	if err != nil {
		log.Warn("invalid productID", slog.String("value", r.URL.Path))
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("product retrieved",
		slog.String("product_id", productID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, ProductResponse{
		Status:  shared.StatusSuccess,
		Product: product.Summary(),
	})
}

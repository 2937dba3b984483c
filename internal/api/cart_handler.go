package api

import (
	"log/slog"
	"net/http"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/service"
)

// CartHandler handles cart HTTP requests. The product being added or
// removed is addressed by its ID in the URL path rather than a body.
type CartHandler struct {
	cartService service.CartService
	logger      *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService service.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartHandler{
		cartService: cartService,
		logger:      logger.With(slog.String("component", "cart_handler")),
	}
}

// AddItem handles POST /api/cart/items/{productID} requests.
// Adding a product already in the cart is rejected with a conflict.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, productID, ok := handleMemberIDAndPathUUID(w, r, "productID", log)
	if !ok {
		return
	}

	if err := h.cartService.AddItem(r.Context(), memberID, productID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("cart item added",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, shared.SuccessResponse())
}

// ListItems handles GET /api/cart/items requests.
// Each product in the cart is rendered as its variant-specific summary.
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, ok := getMemberIDFromContext(r)
	if !ok {
		log.Warn("member ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member ID not found or invalid")
		return
	}

	contents, err := h.cartService.ListItems(r.Context(), memberID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cart items")
		return
	}

	log.Debug("cart items retrieved",
		slog.String("member_id", memberID.String()),
		slog.Int("count", contents.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, CartResponse{
		Status: shared.StatusSuccess,
		Count:  contents.Count,
		Items:  contents.Items,
	})
}

// RemoveItem handles DELETE /api/cart/items/{productID} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, productID, ok := handleMemberIDAndPathUUID(w, r, "productID", log)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), memberID, productID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("cart item removed",
		slog.String("member_id", memberID.String()),
		slog.String("product_id", productID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse())
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/service"
	"github.com/hyeonm/finmart-api/internal/store"
)

// mockCartService is a mock implementation of the service.CartService
// interface with per-method function fields.
type mockCartService struct {
	addItemFn    func(ctx context.Context, memberID, productID uuid.UUID) error
	listItemsFn  func(ctx context.Context, memberID uuid.UUID) (*service.CartContents, error)
	removeItemFn func(ctx context.Context, memberID, productID uuid.UUID) error
}

func (m *mockCartService) AddItem(ctx context.Context, memberID, productID uuid.UUID) error {
	return m.addItemFn(ctx, memberID, productID)
}

func (m *mockCartService) ListItems(ctx context.Context, memberID uuid.UUID) (*service.CartContents, error) {
	return m.listItemsFn(ctx, memberID)
}

func (m *mockCartService) RemoveItem(ctx context.Context, memberID, productID uuid.UUID) error {
	return m.removeItemFn(ctx, memberID, productID)
}

var _ service.CartService = (*mockCartService)(nil)

// serveCartRoute dispatches the request through a chi router so the
// productID path parameter is populated the way it is in production.
func serveCartRoute(
	handler *CartHandler,
	method, path string,
	memberID uuid.UUID,
) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/api/cart/items/{productID}", handler.AddItem)
	router.Get("/api/cart/items", handler.ListItems)
	router.Delete("/api/cart/items/{productID}", handler.RemoveItem)

	req := httptest.NewRequest(method, path, nil)
	if memberID != uuid.Nil {
		ctx := context.WithValue(req.Context(), shared.MemberIDContextKey, memberID)
		req = req.WithContext(ctx)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAddCartItem(t *testing.T) {
	t.Parallel()

	memberID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name         string
		memberInCtx  uuid.UUID
		pathID       string
		serviceErr   error
		wantStatus   int
		wantErrorMsg string
	}{
		{
			name:        "success",
			memberInCtx: memberID,
			pathID:      productID.String(),
			wantStatus:  http.StatusCreated,
		},
		{
			name:        "missing member ID",
			memberInCtx: uuid.Nil,
			pathID:      productID.String(),
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid product ID",
			memberInCtx: memberID,
			pathID:      "not-a-uuid",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:         "product not found",
			memberInCtx:  memberID,
			pathID:       productID.String(),
			serviceErr:   store.ErrProductNotFound,
			wantStatus:   http.StatusNotFound,
			wantErrorMsg: "Product not found",
		},
		{
			name:         "already in cart",
			memberInCtx:  memberID,
			pathID:       productID.String(),
			serviceErr:   store.ErrDuplicateCartItem,
			wantStatus:   http.StatusConflict,
			wantErrorMsg: "Product already in cart",
		},
		{
			name:         "member not found",
			memberInCtx:  memberID,
			pathID:       productID.String(),
			serviceErr:   store.ErrMemberNotFound,
			wantStatus:   http.StatusNotFound,
			wantErrorMsg: "Member not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMemberID, gotProductID uuid.UUID
			cartService := &mockCartService{
				addItemFn: func(ctx context.Context, mID, pID uuid.UUID) error {
					gotMemberID, gotProductID = mID, pID
					return tt.serviceErr
				},
			}
			handler := NewCartHandler(cartService, nil)

			recorder := serveCartRoute(handler, "POST", "/api/cart/items/"+tt.pathID, tt.memberInCtx)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, memberID, gotMemberID)
				assert.Equal(t, productID, gotProductID)
				assert.JSONEq(t, `{"status":"success"}`, recorder.Body.String())
			} else if tt.wantErrorMsg != "" {
				var errResp shared.ErrorResponse
				err := json.NewDecoder(recorder.Body).Decode(&errResp)
				require.NoError(t, err)
				assert.Equal(t, shared.StatusFail, errResp.Status)
				assert.Contains(t, errResp.Error, tt.wantErrorMsg)
			}
		})
	}
}

func TestListCartItems(t *testing.T) {
	t.Parallel()

	memberID := uuid.New()
	cardID := uuid.New()
	loanID := uuid.New()

	contents := &service.CartContents{
		Count: 2,
		Items: []domain.ProductSummary{
			domain.CardSummary{
				ID:        cardID,
				Name:      "Voyager Card",
				Kind:      domain.ProductKindCard,
				AnnualFee: 49000,
				Brand:     "visa",
				Benefits:  []string{"lounge access"},
			},
			domain.LoanSummary{
				ID:             loanID,
				Name:           "Starter Loan",
				Kind:           domain.ProductKindLoan,
				InterestRateBP: 525,
				LoanLimit:      30000000,
				TermMonths:     36,
			},
		},
	}

	tests := []struct {
		name        string
		memberInCtx uuid.UUID
		contents    *service.CartContents
		serviceErr  error
		wantStatus  int
	}{
		{
			name:        "mixed product kinds",
			memberInCtx: memberID,
			contents:    contents,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "empty cart",
			memberInCtx: memberID,
			contents:    &service.CartContents{Count: 0, Items: []domain.ProductSummary{}},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "missing member ID",
			memberInCtx: uuid.Nil,
			wantStatus:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartService := &mockCartService{
				listItemsFn: func(ctx context.Context, id uuid.UUID) (*service.CartContents, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return tt.contents, nil
				},
			}
			handler := NewCartHandler(cartService, nil)

			recorder := serveCartRoute(handler, "GET", "/api/cart/items", tt.memberInCtx)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Status string                   `json:"status"`
				Count  int                      `json:"count"`
				Items  []map[string]interface{} `json:"items"`
			}
			err := json.NewDecoder(recorder.Body).Decode(&resp)
			require.NoError(t, err)
			assert.Equal(t, shared.StatusSuccess, resp.Status)
			assert.Equal(t, tt.contents.Count, resp.Count)
			assert.Len(t, resp.Items, tt.contents.Count)

			if tt.contents.Count == 2 {
				// Each item renders its variant-specific fields.
				assert.Equal(t, "card", resp.Items[0]["kind"])
				assert.Equal(t, "visa", resp.Items[0]["brand"])
				assert.Equal(t, float64(49000), resp.Items[0]["annual_fee"])
				assert.Equal(t, "loan", resp.Items[1]["kind"])
				assert.Equal(t, float64(525), resp.Items[1]["interest_rate_bp"])
				assert.Equal(t, float64(36), resp.Items[1]["term_months"])
			}
		})
	}
}

func TestRemoveCartItem(t *testing.T) {
	t.Parallel()

	memberID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name         string
		memberInCtx  uuid.UUID
		pathID       string
		serviceErr   error
		wantStatus   int
		wantErrorMsg string
	}{
		{
			name:        "success",
			memberInCtx: memberID,
			pathID:      productID.String(),
			wantStatus:  http.StatusOK,
		},
		{
			name:        "missing member ID",
			memberInCtx: uuid.Nil,
			pathID:      productID.String(),
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid product ID",
			memberInCtx: memberID,
			pathID:      "not-a-uuid",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:         "item not in cart",
			memberInCtx:  memberID,
			pathID:       productID.String(),
			serviceErr:   store.ErrCartItemNotFound,
			wantStatus:   http.StatusNotFound,
			wantErrorMsg: "Cart item not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartService := &mockCartService{
				removeItemFn: func(ctx context.Context, mID, pID uuid.UUID) error {
					return tt.serviceErr
				},
			}
			handler := NewCartHandler(cartService, nil)

			recorder := serveCartRoute(handler, "DELETE", "/api/cart/items/"+tt.pathID, tt.memberInCtx)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"status":"success"}`, recorder.Body.String())
			} else if tt.wantErrorMsg != "" {
				var errResp shared.ErrorResponse
				err := json.NewDecoder(recorder.Body).Decode(&errResp)
				require.NoError(t, err)
				assert.Contains(t, errResp.Error, tt.wantErrorMsg)
			}
		})
	}
}

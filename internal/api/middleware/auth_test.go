package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/mocks"
	"github.com/hyeonm/finmart-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	memberID := uuid.New()
	const memberEmail = "member@example.com"

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		claims         *auth.Claims
		expectedStatus int
		expectedID     uuid.UUID
		expectedEmail  string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			validateErr:    nil,
			claims:         &auth.Claims{MemberID: memberID, Email: memberEmail},
			expectedStatus: http.StatusOK,
			expectedID:     memberID,
			expectedEmail:  memberEmail,
		},
		{
			name:           "missing auth header",
			authHeader:     "",
			validateErr:    nil,
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			validateErr:    nil,
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong token type",
			authHeader:     "Bearer refresh-token",
			validateErr:    auth.ErrWrongTokenType,
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			}

			middleware := NewAuthMiddleware(jwtService)

			var capturedID uuid.UUID
			var capturedEmail string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id, ok := GetMemberID(r); ok {
					capturedID = id
				}
				if email, ok := GetMemberEmail(r); ok {
					capturedEmail = email
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Add("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()

			middleware.Authenticate(nextHandler).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedID, capturedID)
				assert.Equal(t, tt.expectedEmail, capturedEmail)
			}
		})
	}
}

func TestGetMemberID(t *testing.T) {
	t.Parallel()

	testMemberID := uuid.New()

	t.Run("context with member ID", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)
		ctx := context.WithValue(req.Context(), shared.MemberIDContextKey, testMemberID)
		req = req.WithContext(ctx)

		memberID, ok := GetMemberID(req)

		assert.True(t, ok)
		assert.Equal(t, testMemberID, memberID)
	})

	t.Run("context without member ID", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)

		memberID, ok := GetMemberID(req)

		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, memberID)
	})
}

func TestGetMemberEmail(t *testing.T) {
	t.Parallel()

	t.Run("context with email", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)
		ctx := context.WithValue(req.Context(), shared.MemberEmailContextKey, "member@example.com")
		req = req.WithContext(ctx)

		email, ok := GetMemberEmail(req)

		assert.True(t, ok)
		assert.Equal(t, "member@example.com", email)
	})

	t.Run("context without email", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/", nil)
		require.NoError(t, err)

		email, ok := GetMemberEmail(req)

		assert.False(t, ok)
		assert.Empty(t, email)
	})
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hyeonm/finmart-api/internal/api/shared"
)

func TestGetMemberIDFromContext(t *testing.T) {
	tests := []struct {
		name             string
		setupContext     func() context.Context
		expectedMemberID uuid.UUID
		expectedOK       bool
	}{
		{
			name: "valid member ID in context",
			setupContext: func() context.Context {
				memberID := uuid.New()
				return context.WithValue(context.Background(), shared.MemberIDContextKey, memberID)
			},
			expectedOK: true,
		},
		{
			name: "missing member ID in context",
			setupContext: func() context.Context {
				return context.Background()
			},
			expectedMemberID: uuid.Nil,
			expectedOK:       false,
		},
		{
			name: "nil member ID in context",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberIDContextKey, uuid.Nil)
			},
			expectedMemberID: uuid.Nil,
			expectedOK:       false,
		},
		{
			name: "wrong type in context",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberIDContextKey, "not-a-uuid")
			},
			expectedMemberID: uuid.Nil,
			expectedOK:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.setupContext()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(ctx)

			memberID, ok := getMemberIDFromContext(req)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.NotEqual(t, uuid.Nil, memberID)
			} else {
				assert.Equal(t, tt.expectedMemberID, memberID)
			}
		})
	}
}

func TestGetMemberEmailFromContext(t *testing.T) {
	tests := []struct {
		name          string
		setupContext  func() context.Context
		expectedEmail string
		expectedOK    bool
	}{
		{
			name: "valid email in context",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberEmailContextKey, "member@example.com")
			},
			expectedEmail: "member@example.com",
			expectedOK:    true,
		},
		{
			name: "missing email in context",
			setupContext: func() context.Context {
				return context.Background()
			},
			expectedOK: false,
		},
		{
			name: "empty email in context",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberEmailContextKey, "")
			},
			expectedOK: false,
		},
		{
			name: "wrong type in context",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberEmailContextKey, 42)
			},
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(tt.setupContext())

			email, ok := getMemberEmailFromContext(req)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedEmail, email)
		})
	}
}

func TestGetPathUUID(t *testing.T) {
	validUUID := uuid.New()

	tests := []struct {
		name        string
		routePath   string
		path        string
		paramName   string
		expectError bool
		expectedID  uuid.UUID
	}{
		{
			name:        "valid UUID parameter",
			routePath:   "/test/{id}",
			path:        "/test/" + validUUID.String(),
			paramName:   "id",
			expectError: false,
			expectedID:  validUUID,
		},
		{
			name:        "missing parameter",
			routePath:   "/test",
			path:        "/test",
			paramName:   "id",
			expectError: true,
			expectedID:  uuid.Nil,
		},
		{
			name:        "invalid UUID format",
			routePath:   "/test/{id}",
			path:        "/test/invalid-uuid",
			paramName:   "id",
			expectError: true,
			expectedID:  uuid.Nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()

			// Route the request through chi so URL parameters are populated.
			var capturedReq *http.Request
			router := chi.NewRouter()
			router.Get(tt.routePath, func(w http.ResponseWriter, r *http.Request) {
				capturedReq = r
			})
			router.ServeHTTP(rr, req)

			if capturedReq == nil {
				capturedReq = req
			}

			id, err := getPathUUID(capturedReq, tt.paramName)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedID, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
		})
	}
}

func TestHandleMemberIDAndPathUUID(t *testing.T) {
	validMemberID := uuid.New()
	validPathUUID := uuid.New()

	tests := []struct {
		name             string
		setupContext     func() context.Context
		path             string
		paramName        string
		expectedStatus   int
		expectedOK       bool
		expectedMemberID uuid.UUID
		expectedPathID   uuid.UUID
	}{
		{
			name: "valid member ID and path UUID",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberIDContextKey, validMemberID)
			},
			path:             "/test/" + validPathUUID.String(),
			paramName:        "id",
			expectedOK:       true,
			expectedMemberID: validMemberID,
			expectedPathID:   validPathUUID,
		},
		{
			name: "missing member ID",
			setupContext: func() context.Context {
				return context.Background()
			},
			path:             "/test/" + validPathUUID.String(),
			paramName:        "id",
			expectedStatus:   http.StatusUnauthorized,
			expectedOK:       false,
			expectedMemberID: uuid.Nil,
			expectedPathID:   uuid.Nil,
		},
		{
			name: "valid member ID but invalid path UUID",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), shared.MemberIDContextKey, validMemberID)
			},
			path:             "/test/invalid-uuid",
			paramName:        "id",
			expectedStatus:   http.StatusBadRequest,
			expectedOK:       false,
			expectedMemberID: uuid.Nil,
			expectedPathID:   uuid.Nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req = req.WithContext(tt.setupContext())
			rr := httptest.NewRecorder()

			// Route the request to set up chi context
			var capturedReq *http.Request
			router := chi.NewRouter()
			router.Get("/test/{id}", func(w http.ResponseWriter, r *http.Request) {
				capturedReq = r
			})
			router.ServeHTTP(rr, req)

			if capturedReq != nil {
				req = capturedReq
			}

			// Fresh recorder so routing side effects don't bleed into assertions.
			rr = httptest.NewRecorder()
			memberID, pathID, ok := handleMemberIDAndPathUUID(rr, req, tt.paramName, nil)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedMemberID, memberID)
			assert.Equal(t, tt.expectedPathID, pathID)
			if !tt.expectedOK {
				assert.Equal(t, tt.expectedStatus, rr.Code)
			}
		})
	}
}

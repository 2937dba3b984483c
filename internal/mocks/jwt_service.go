package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	// GenerateTokenFn overrides GenerateToken when set.
	GenerateTokenFn func(ctx context.Context, memberID uuid.UUID, email string) (string, error)

	// ValidateTokenFn overrides ValidateToken when set.
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults returned when the function fields are nil.
	Token       string
	Err         error
	ValidateErr error
	Claims      *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	memberID uuid.UUID,
	email string,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, memberID, email)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

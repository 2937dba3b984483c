package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines the interface for JWT token operations.
// It issues access tokens for authenticated members and turns presented
// tokens back into member identity (token-to-member).
type JWTService interface {
	// GenerateToken creates a signed access token carrying the member's
	// identity. The email travels in the claims so profile operations can
	// be keyed by the authenticated email without an extra lookup.
	GenerateToken(ctx context.Context, memberID uuid.UUID, email string) (string, error)

	// ValidateToken validates a token string and returns the claims if the
	// token is valid. Returns ErrExpiredToken, ErrTokenNotYetValid,
	// ErrWrongTokenType or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the JWT claims for authentication tokens.
type Claims struct {
	// MemberID is the authenticated member's unique identifier.
	MemberID uuid.UUID `json:"uid,omitempty"`

	// Email is the authenticated member's email address.
	Email string `json:"email,omitempty"`

	// TokenType identifies what the token grants; access tokens carry "access".
	TokenType string `json:"type,omitempty"`

	// Standard JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

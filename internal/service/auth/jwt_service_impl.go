package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/config"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
)

const (
	// minSecretLength is the shortest signing secret NewJWTService accepts.
	// HS256 keys shorter than the hash output weaken the MAC.
	minSecretLength = 32

	// defaultClockSkew absorbs small clock drift between the token issuer
	// and the validating host.
	defaultClockSkew = 2 * time.Minute

	// accessTokenType is the value of the "type" claim on tokens this
	// service mints.
	accessTokenType = "access"
)

// hmacJWTService implements JWTService with HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

// jwtCustomClaims is the wire shape of the claims this service signs.
type jwtCustomClaims struct {
	MemberID  uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService builds a JWT service from the auth configuration.
// It rejects signing secrets shorter than minSecretLength.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}

	return &hmacJWTService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     defaultClockSkew,
	}, nil
}

// GenerateToken mints a signed access token for the member. The email
// rides along in the claims so later requests can be keyed by it without
// a member lookup.
func (s *hmacJWTService) GenerateToken(
	ctx context.Context,
	memberID uuid.UUID,
	email string,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		MemberID:  memberID,
		Email:     email,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT access token",
			"error", err,
			"member_id", memberID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken parses and verifies a token string, returning its claims.
// Tokens whose "type" claim is not "access" fail with ErrWrongTokenType.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			// The injected clock governs expiry checks too.
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		return nil, classifyParseError(log, err)
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	if claims.TokenType != accessTokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", accessTokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	log.Debug("access token validated successfully",
		"member_id", claims.MemberID,
		"token_id", claims.ID,
		"expiry", claims.ExpiresAt.Time)

	return &Claims{
		MemberID:  claims.MemberID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}

// classifyParseError maps jwt parsing failures onto the package's
// sentinel errors. Anything unrecognized degrades to ErrInvalidToken.
func classifyParseError(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		log.Debug("access token validation failed: token expired", "error", err)
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		log.Debug("access token validation failed: token not yet valid", "error", err)
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed):
		log.Debug("access token validation failed: malformed token", "error", err)
		return ErrInvalidToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		log.Debug("access token validation failed: invalid signature", "error", err)
		return ErrInvalidToken
	default:
		log.Debug("access token validation failed: other validation error",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return ErrInvalidToken
	}
}

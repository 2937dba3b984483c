package auth

import "errors"

// Sentinel errors returned by token validation and login. Handlers map
// these onto HTTP status codes, so new failure modes need a variant here
// rather than an ad hoc error string.
var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken marks a token past its expiry (outside clock skew).
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid marks a token whose nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when a request carries no token at all.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWrongTokenType indicates the token is valid but of the wrong type,
	// e.g. a token minted for another purpose presented as an access token.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or a non-matching password. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

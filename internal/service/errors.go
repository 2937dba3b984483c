// Package service provides application-level services for members, products,
// and shopping carts.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrMemberWithdrawn indicates the member account has been closed.
	// Every profile operation on a withdrawn account fails with this error.
	// API layer should map this to HTTP 403 Forbidden.
	ErrMemberWithdrawn = errors.New("member account is withdrawn")

	// ErrPasswordMismatch indicates the supplied current password does not
	// match the stored credential during a profile update.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrPasswordMismatch = errors.New("current password does not match")
)

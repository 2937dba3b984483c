package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/service"
	"github.com/hyeonm/finmart-api/internal/service/auth"
	"github.com/hyeonm/finmart-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrMemberWithdrawn):
		return http.StatusForbidden

	// Not found errors (member, product, cart item, search history)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors (duplicate email, keyword, cart item)
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		isDomainValidationError(err),
		isFieldValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// domainValidationSentinels are the domain entity validation errors that can
// escape through a service call, e.g. a future birth date or an over-long
// keyword. These are client mistakes, not server failures, and their
// messages are already phrased for clients.
var domainValidationSentinels = []error{
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrEmptyName,
	domain.ErrEmptyBirthDate,
	domain.ErrBirthDateInFuture,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
	domain.ErrEmptyKeyword,
	domain.ErrKeywordTooLong,
}

// isFieldValidationError reports whether the error chain carries a
// field-level domain.ValidationError.
func isFieldValidationError(err error) bool {
	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}

// isDomainValidationError reports whether the error matches one of the
// domain entity validation sentinels.
func isDomainValidationError(err error) bool {
	for _, sentinel := range domainValidationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// domainValidationMessage returns the matched sentinel's own message,
// stripped of any service-layer wrapping.
func domainValidationMessage(err error) string {
	for _, sentinel := range domainValidationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Invalid request data"
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, service.ErrPasswordMismatch):
		return "Current password does not match"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Authorization errors
	case errors.Is(err, service.ErrMemberWithdrawn):
		return "Member account is withdrawn"

	// Not found errors
	case errors.Is(err, store.ErrMemberNotFound):
		return "Member not found"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrCartItemNotFound):
		return "Cart item not found"

	case errors.Is(err, store.ErrSearchHistoryNotFound):
		return "Search history not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicateKeyword):
		return "Keyword already saved"

	case errors.Is(err, store.ErrDuplicateCartItem):
		return "Product already in cart"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case isDomainValidationError(err):
		return domainValidationMessage(err)

	// Default case for unknown errors
	default:
		// Field-level validation failures are already phrased for clients.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes the uniform
// error response, logging the full error detail. When userMessage is empty
// the sanitized message is derived from the error type.
func HandleAPIError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	userMessage string,
	opts ...shared.ResponseOption,
) {
	statusCode := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, userMessage, err, opts...)
}

// HandleValidationError writes a 400 response with a sanitized message for
// request validation failures.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	// Field-level domain validation errors already carry client-safe text.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	errMsg := err.Error()

	// Check if this is likely a validator package error message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "datetime":
		return "invalid date format"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

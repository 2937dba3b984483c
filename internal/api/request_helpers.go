package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
)

// getMemberIDFromContext extracts the authenticated member's UUID from the
// request context. The ID is placed there by the authentication middleware.
//
// Returns:
//   - (uuid.UUID, true): The member's UUID if successfully extracted
//   - (uuid.Nil, false): A zero UUID and false if not found or invalid
func getMemberIDFromContext(r *http.Request) (uuid.UUID, bool) {
	memberID, ok := r.Context().Value(shared.MemberIDContextKey).(uuid.UUID)
	if !ok || memberID == uuid.Nil {
		return uuid.Nil, false
	}
	return memberID, true
}

// getMemberEmailFromContext extracts the authenticated member's email from
// the request context. The email is placed there by the authentication
// middleware alongside the member ID.
func getMemberEmailFromContext(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(shared.MemberEmailContextKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
//
// Returns:
//   - (uuid.UUID, nil): The parsed UUID if valid
//   - (uuid.Nil, error): A zero UUID and appropriate error if the parameter
//     is missing or invalid
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleMemberIDAndPathUUID is a composite helper that extracts both the
// authenticated member ID from the context and a UUID from the path
// parameters. It writes an error response if either extraction fails.
//
// Returns:
//   - (memberID, pathID, true): Both UUIDs if extraction succeeded
//   - (uuid.Nil, uuid.Nil, false): Zero UUIDs and false if extraction failed
//     and an error response was written
func handleMemberIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	memberID, ok := getMemberIDFromContext(r)
	if !ok {
		log.Warn("member ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		logMsg := "invalid path parameter"
		if paramName != "" {
			logMsg = "invalid " + paramName
		}
		log.Warn(logMsg, slog.String("param_name", paramName), slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return memberID, pathID, true
}

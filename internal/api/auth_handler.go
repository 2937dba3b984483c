package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/redact"
	"github.com/hyeonm/finmart-api/internal/service"
	"github.com/hyeonm/finmart-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	memberService service.MemberService
	jwtService    auth.JWTService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	memberService service.MemberService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		memberService: memberService,
		jwtService:    jwtService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid registration request format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	// Already validated against the date layout, so this cannot fail.
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: invalid date format")
		return
	}

	member, err := h.memberService.Register(
		r.Context(),
		req.Email,
		req.Password,
		req.Name,
		birthDate,
		req.Tags,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), member.ID, member.Email)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", redact.Error(err)),
			slog.String("member_id", member.ID.String()))
		shared.RespondWithErrorAndLog(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Status:      shared.StatusSuccess,
		MemberID:    member.ID,
		AccessToken: token,
	})
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid login request format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	member, err := h.memberService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Failed logins carry WARN visibility so repeated attempts stand
		// out in the logs.
		HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), member.ID, member.Email)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", redact.Error(err)),
			slog.String("member_id", member.ID.String()))
		shared.RespondWithErrorAndLog(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Status:      shared.StatusSuccess,
		MemberID:    member.ID,
		AccessToken: token,
	})
}

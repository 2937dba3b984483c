package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/redact"
	"github.com/hyeonm/finmart-api/internal/service"
)

// MemberHandler handles member profile and search-history HTTP requests.
// Profile operations are keyed by the authenticated email; keyword and
// closure operations by the authenticated member ID.
type MemberHandler struct {
	memberInfoService service.MemberInfoService
	memberService     service.MemberService
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(
	memberInfoService service.MemberInfoService,
	memberService service.MemberService,
	logger *slog.Logger,
) *MemberHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemberHandler{
		memberInfoService: memberInfoService,
		memberService:     memberService,
		validator:         validator.New(),
		logger:            logger.With(slog.String("component", "member_handler")),
	}
}

// GetProfile handles GET /api/members/me requests.
// It returns the authenticated member's profile with the age computed from
// the stored birth date.
func (h *MemberHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email, ok := getMemberEmailFromContext(r)
	if !ok {
		log.Warn("member email not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member identity not found")
		return
	}

	profile, err := h.memberInfoService.GetProfile(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("profile retrieved successfully")
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Status: shared.StatusSuccess,
		Email:  profile.Email,
		Name:   profile.Name,
		Age:    profile.Age,
		Tags:   profile.Tags,
	})
}

// UpdateProfile handles PUT /api/members/me requests.
// The member's current password must accompany every update.
func (h *MemberHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email, ok := getMemberEmailFromContext(r)
	if !ok {
		log.Warn("member email not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member identity not found")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid profile update format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	params := service.UpdateProfileParams{
		CurrentPassword: req.CurrentPassword,
		Name:            req.Name,
		Tags:            req.Tags,
		NewPassword:     req.NewPassword,
	}

	if req.BirthDate != "" {
		// Already validated against the date layout.
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: invalid date format")
			return
		}
		params.BirthDate = birthDate
	}

	if err := h.memberInfoService.UpdateProfile(r.Context(), email, params); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("profile updated successfully")
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse())
}

// Close handles POST /api/members/me/close requests.
// It withdraws the authenticated member's account.
func (h *MemberHandler) Close(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, ok := getMemberIDFromContext(r)
	if !ok {
		log.Warn("member ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member ID not found or invalid")
		return
	}

	if err := h.memberService.Close(r.Context(), memberID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("member account closed",
		slog.String("member_id", memberID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse())
}

// ListKeywords handles GET /api/members/me/keywords requests.
// It returns the member's recent search keywords, most recent first.
func (h *MemberHandler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, ok := getMemberIDFromContext(r)
	if !ok {
		log.Warn("member ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member ID not found or invalid")
		return
	}

	entries, err := h.memberInfoService.RecentKeywords(r.Context(), memberID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list recent keywords")
		return
	}

	log.Debug("recent keywords retrieved",
		slog.String("member_id", memberID.String()),
		slog.Int("count", len(entries)))
	shared.RespondWithJSON(w, r, http.StatusOK, keywordsToResponse(entries))
}

// AddKeyword handles POST /api/members/me/keywords requests.
// A keyword the member already holds is rejected; at capacity the oldest
// entry is evicted to make room.
func (h *MemberHandler) AddKeyword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	memberID, ok := getMemberIDFromContext(r)
	if !ok {
		log.Warn("member ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Member ID not found or invalid")
		return
	}

	var req AddKeywordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid keyword request format",
			slog.String("error", redact.Error(err)),
			slog.String("member_id", memberID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if err := h.memberInfoService.AddRecentKeyword(r.Context(), memberID, req.Keyword); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("recent keyword recorded",
		slog.String("member_id", memberID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, shared.SuccessResponse())
}

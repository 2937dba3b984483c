package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyeonm/finmart-api/internal/api/shared"
	"github.com/hyeonm/finmart-api/internal/domain"
)

// Common request/response structures. Every response body carries the
// uniform status field ("success", "fail", or "failed:<reason>").

// RegisterRequest defines the payload for the member registration endpoint.
// BirthDate is a calendar date without time or zone.
type RegisterRequest struct {
	Email     string   `json:"email"      validate:"required,email"`
	Password  string   `json:"password"   validate:"required,min=8,max=72"`
	Name      string   `json:"name"       validate:"required,min=1,max=100"`
	BirthDate string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Tags      []string `json:"tags"       validate:"omitempty,dive,min=1,max=50"`
}

// LoginRequest defines the payload for the member login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Status string `json:"status"`

	// MemberID is the unique identifier for the authenticated member
	MemberID uuid.UUID `json:"member_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}

// ProfileResponse defines the response for the profile read endpoint.
// Age is computed from the stored birth date as of today.
type ProfileResponse struct {
	Status string   `json:"status"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Age    int      `json:"age"`
	Tags   []string `json:"tags"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// CurrentPassword is always required; the remaining fields are applied only
// when present (absent fields leave the stored values unchanged).
type UpdateProfileRequest struct {
	CurrentPassword string   `json:"current_password" validate:"required"`
	Name            string   `json:"name"             validate:"omitempty,min=1,max=100"`
	BirthDate       string   `json:"birth_date"       validate:"omitempty,datetime=2006-01-02"`
	Tags            []string `json:"tags"             validate:"omitempty,dive,min=1,max=50"`
	NewPassword     string   `json:"new_password"     validate:"omitempty,min=8,max=72"`
}

// AddKeywordRequest defines the payload for recording a search keyword.
type AddKeywordRequest struct {
	Keyword string `json:"keyword" validate:"required,min=1,max=100"`
}

// KeywordEntry is one recorded search keyword in a listing response.
type KeywordEntry struct {
	Keyword    string    `json:"keyword"`
	SearchedAt time.Time `json:"searched_at"`
}

// KeywordsResponse defines the response for the recent-keyword listing,
// most recent first.
type KeywordsResponse struct {
	Status   string         `json:"status"`
	Count    int            `json:"count"`
	Keywords []KeywordEntry `json:"keywords"`
}

// CartResponse defines the response for the cart listing. Each item is the
// variant-specific summary of the product in the cart.
type CartResponse struct {
	Status string                  `json:"status"`
	Count  int                     `json:"count"`
	Items  []domain.ProductSummary `json:"items"`
}

// ProductResponse defines the response for a single product retrieval.
type ProductResponse struct {
	Status  string                `json:"status"`
	Product domain.ProductSummary `json:"product"`
}

// keywordsToResponse maps search history entries to the listing response.
func keywordsToResponse(entries []*domain.SearchHistory) KeywordsResponse {
	keywords := make([]KeywordEntry, 0, len(entries))
	for _, entry := range entries {
		keywords = append(keywords, KeywordEntry{
			Keyword:    entry.Keyword,
			SearchedAt: entry.CreatedAt,
		})
	}
	return KeywordsResponse{
		Status:   shared.StatusSuccess,
		Count:    len(keywords),
		Keywords: keywords,
	}
}

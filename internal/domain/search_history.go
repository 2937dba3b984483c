package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecentKeywordLimit is the maximum number of search history entries kept
// per member. Adding a keyword beyond the limit evicts the oldest entry in
// the same transaction, so the count never exceeds the limit.
const RecentKeywordLimit = 10

// MaxKeywordLength bounds a single search keyword.
const MaxKeywordLength = 100

// Common validation errors for SearchHistory
var (
	ErrEmptySearchHistoryID = errors.New("search history ID cannot be empty")
	ErrEmptyKeyword         = errors.New("keyword cannot be empty")
	ErrKeywordTooLong       = errors.New("keyword exceeds maximum length")
)

// SearchHistory records a single keyword a member recently searched for.
// Each member keeps at most RecentKeywordLimit entries, and a keyword
// appears at most once per member.
type SearchHistory struct {
	ID        uuid.UUID `json:"id"`
	MemberID  uuid.UUID `json:"member_id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSearchHistory creates a new SearchHistory entry for the given member
// and keyword. The keyword is trimmed of surrounding whitespace before
// validation. Returns an error if validation fails.
func NewSearchHistory(memberID uuid.UUID, keyword string) (*SearchHistory, error) {
	entry := &SearchHistory{
		ID:        uuid.New(),
		MemberID:  memberID,
		Keyword:   strings.TrimSpace(keyword),
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the SearchHistory has valid data.
func (s *SearchHistory) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySearchHistoryID
	}

	if s.MemberID == uuid.Nil {
		return ErrEmptyMemberID
	}

	if s.Keyword == "" {
		return ErrEmptyKeyword
	}

	if len(s.Keyword) > MaxKeywordLength {
		return ErrKeywordTooLong
	}

	return nil
}

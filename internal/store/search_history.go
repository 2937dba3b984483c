package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
)

// SearchHistoryStore defines the interface for recent-keyword persistence.
// The per-member cap and duplicate rejection are enforced by the service
// inside a transaction; the store exposes the primitive operations the
// service composes.
type SearchHistoryStore interface {
	// Create saves a new search history entry.
	// Returns ErrDuplicateKeyword if the member already has the keyword.
	// Returns validation errors from the domain SearchHistory if data is invalid.
	Create(ctx context.Context, entry *domain.SearchHistory) error

	// Exists reports whether the member's history already holds the keyword.
	Exists(ctx context.Context, memberID uuid.UUID, keyword string) (bool, error)

	// CountByMember returns the number of history entries the member holds.
	CountByMember(ctx context.Context, memberID uuid.UUID) (int, error)

	// DeleteOldest removes the member's single oldest history entry.
	// Returns ErrSearchHistoryNotFound if the member has no entries.
	DeleteOldest(ctx context.Context, memberID uuid.UUID) error

	// ListByMember retrieves the member's history entries, most recent first.
	// Returns an empty slice if the member has no entries.
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.SearchHistory, error)

	// WithTx returns a new SearchHistoryStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) SearchHistoryStore
}

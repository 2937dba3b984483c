package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
)

// NewSearchHistoryRepositoryAdapter creates a new adapter that allows a
// store.SearchHistoryStore to be used where a SearchHistoryRepository is expected.
func NewSearchHistoryRepositoryAdapter(
	historyStore store.SearchHistoryStore,
	db *sql.DB,
) SearchHistoryRepository {
	return &searchHistoryRepositoryAdapter{
		historyStore: historyStore,
		db:           db,
	}
}

// searchHistoryRepositoryAdapter adapts a store.SearchHistoryStore to the
// SearchHistoryRepository interface
type searchHistoryRepositoryAdapter struct {
	historyStore store.SearchHistoryStore
	db           *sql.DB
}

// Create implements SearchHistoryRepository.Create
func (a *searchHistoryRepositoryAdapter) Create(ctx context.Context, entry *domain.SearchHistory) error {
	return a.historyStore.Create(ctx, entry)
}

// Exists implements SearchHistoryRepository.Exists
func (a *searchHistoryRepositoryAdapter) Exists(
	ctx context.Context,
	memberID uuid.UUID,
	keyword string,
) (bool, error) {
	return a.historyStore.Exists(ctx, memberID, keyword)
}

// CountByMember implements SearchHistoryRepository.CountByMember
func (a *searchHistoryRepositoryAdapter) CountByMember(
	ctx context.Context,
	memberID uuid.UUID,
) (int, error) {
	return a.historyStore.CountByMember(ctx, memberID)
}

// DeleteOldest implements SearchHistoryRepository.DeleteOldest
func (a *searchHistoryRepositoryAdapter) DeleteOldest(ctx context.Context, memberID uuid.UUID) error {
	return a.historyStore.DeleteOldest(ctx, memberID)
}

// ListByMember implements SearchHistoryRepository.ListByMember
func (a *searchHistoryRepositoryAdapter) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.SearchHistory, error) {
	return a.historyStore.ListByMember(ctx, memberID)
}

// WithTx implements SearchHistoryRepository.WithTx
func (a *searchHistoryRepositoryAdapter) WithTx(tx *sql.Tx) SearchHistoryRepository {
	return &searchHistoryRepositoryAdapter{
		historyStore: a.historyStore.WithTx(tx),
		db:           a.db,
	}
}

// DB implements SearchHistoryRepository.DB
func (a *searchHistoryRepositoryAdapter) DB() *sql.DB {
	return a.db
}

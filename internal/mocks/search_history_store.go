package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// SearchHistoryStore is a mock of store.SearchHistoryStore interface for use with testify/mock
type SearchHistoryStore struct {
	mock.Mock
}

// Create is a mock implementation of store.SearchHistoryStore.Create
func (m *SearchHistoryStore) Create(ctx context.Context, entry *domain.SearchHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Exists is a mock implementation of store.SearchHistoryStore.Exists
func (m *SearchHistoryStore) Exists(
	ctx context.Context,
	memberID uuid.UUID,
	keyword string,
) (bool, error) {
	args := m.Called(ctx, memberID, keyword)
	return args.Bool(0), args.Error(1)
}

// CountByMember is a mock implementation of store.SearchHistoryStore.CountByMember
func (m *SearchHistoryStore) CountByMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

// DeleteOldest is a mock implementation of store.SearchHistoryStore.DeleteOldest
func (m *SearchHistoryStore) DeleteOldest(ctx context.Context, memberID uuid.UUID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// ListByMember is a mock implementation of store.SearchHistoryStore.ListByMember
func (m *SearchHistoryStore) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.SearchHistory, error) {
	args := m.Called(ctx, memberID)
	if entries, ok := args.Get(0).([]*domain.SearchHistory); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.SearchHistoryStore.WithTx
func (m *SearchHistoryStore) WithTx(tx *sql.Tx) store.SearchHistoryStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.SearchHistoryStore); ok {
		return ret
	}
	return m
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CartItemStore is a mock of store.CartItemStore interface for use with testify/mock
type CartItemStore struct {
	mock.Mock
}

// Create is a mock implementation of store.CartItemStore.Create
func (m *CartItemStore) Create(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Exists is a mock implementation of store.CartItemStore.Exists
func (m *CartItemStore) Exists(
	ctx context.Context,
	memberID, productID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, memberID, productID)
	return args.Bool(0), args.Error(1)
}

// ListByMember is a mock implementation of store.CartItemStore.ListByMember
func (m *CartItemStore) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.CartItem, error) {
	args := m.Called(ctx, memberID)
	if items, ok := args.Get(0).([]*domain.CartItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.CartItemStore.Delete
func (m *CartItemStore) Delete(ctx context.Context, memberID, productID uuid.UUID) error {
	args := m.Called(ctx, memberID, productID)
	return args.Error(0)
}

// WithTx is a mock implementation of store.CartItemStore.WithTx
func (m *CartItemStore) WithTx(tx *sql.Tx) store.CartItemStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.CartItemStore); ok {
		return ret
	}
	return m
}

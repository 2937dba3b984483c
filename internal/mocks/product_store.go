package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ProductStore is a mock of store.ProductStore interface for use with testify/mock
type ProductStore struct {
	mock.Mock
}

// Create is a mock implementation of store.ProductStore.Create
func (m *ProductStore) Create(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ProductStore.GetByID
func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(domain.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.ProductStore.List
func (m *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.ProductStore.WithTx
func (m *ProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.ProductStore); ok {
		return ret
	}
	return m
}

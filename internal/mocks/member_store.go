package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MemberStore is a mock of store.MemberStore interface for use with testify/mock
type MemberStore struct {
	mock.Mock
}

// Create is a mock implementation of store.MemberStore.Create
func (m *MemberStore) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// GetByID is a mock implementation of store.MemberStore.GetByID
func (m *MemberStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.MemberStore.GetByEmail
func (m *MemberStore) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.MemberStore.Update
func (m *MemberStore) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// Delete is a mock implementation of store.MemberStore.Delete
func (m *MemberStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.MemberStore.WithTx
func (m *MemberStore) WithTx(tx *sql.Tx) store.MemberStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.MemberStore); ok {
		return ret
	}
	return m
}

package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepository mocks the MemberRepository interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) WithTx(tx *sql.Tx) MemberRepository {
	args := m.Called(tx)
	return args.Get(0).(MemberRepository)
}

func (m *MockMemberRepository) DB() *sql.DB {
	args := m.Called()
	return args.Get(0).(*sql.DB)
}

// MockSearchHistoryRepository mocks the SearchHistoryRepository interface
type MockSearchHistoryRepository struct {
	mock.Mock
}

func (m *MockSearchHistoryRepository) Create(
	ctx context.Context,
	entry *domain.SearchHistory,
) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSearchHistoryRepository) Exists(
	ctx context.Context,
	memberID uuid.UUID,
	keyword string,
) (bool, error) {
	args := m.Called(ctx, memberID, keyword)
	return args.Bool(0), args.Error(1)
}

func (m *MockSearchHistoryRepository) CountByMember(
	ctx context.Context,
	memberID uuid.UUID,
) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockSearchHistoryRepository) DeleteOldest(ctx context.Context, memberID uuid.UUID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockSearchHistoryRepository) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.SearchHistory, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SearchHistory), args.Error(1)
}

func (m *MockSearchHistoryRepository) WithTx(tx *sql.Tx) SearchHistoryRepository {
	args := m.Called(tx)
	return args.Get(0).(SearchHistoryRepository)
}

func (m *MockSearchHistoryRepository) DB() *sql.DB {
	args := m.Called()
	return args.Get(0).(*sql.DB)
}

// MockCartRepository mocks the CartRepository interface
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Exists(
	ctx context.Context,
	memberID, productID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, memberID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.CartItem, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, memberID, productID uuid.UUID) error {
	args := m.Called(ctx, memberID, productID)
	return args.Error(0)
}

// MockProductRepository mocks the ProductRepository interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/store"
)

// NewMemberRepositoryAdapter creates a new adapter that allows a store.MemberStore
// to be used where a MemberRepository is expected.
func NewMemberRepositoryAdapter(memberStore store.MemberStore, db *sql.DB) MemberRepository {
	return &memberRepositoryAdapter{
		memberStore: memberStore,
		db:          db,
	}
}

// memberRepositoryAdapter adapts a store.MemberStore to the MemberRepository interface
type memberRepositoryAdapter struct {
	memberStore store.MemberStore
	db          *sql.DB
}

// GetByID implements MemberRepository.GetByID
func (a *memberRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	return a.memberStore.GetByID(ctx, id)
}

// GetByEmail implements MemberRepository.GetByEmail
func (a *memberRepositoryAdapter) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return a.memberStore.GetByEmail(ctx, email)
}

// Update implements MemberRepository.Update
func (a *memberRepositoryAdapter) Update(ctx context.Context, member *domain.Member) error {
	return a.memberStore.Update(ctx, member)
}

// WithTx implements MemberRepository.WithTx
func (a *memberRepositoryAdapter) WithTx(tx *sql.Tx) MemberRepository {
	return &memberRepositoryAdapter{
		memberStore: a.memberStore.WithTx(tx),
		db:          a.db,
	}
}

// DB implements MemberRepository.DB
func (a *memberRepositoryAdapter) DB() *sql.DB {
	return a.db
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/service/auth"
	"github.com/hyeonm/finmart-api/internal/store"
)

// MemberService provides account-level member operations: registration,
// credential checks, lookups, and account closure. Profile-level operations
// live in MemberInfoService.
type MemberService interface {
	// Register creates a new open member account. The plaintext password is
	// hashed by the store before persistence.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(
		ctx context.Context,
		email, password, name string,
		birthDate time.Time,
		tags []string,
	) (*domain.Member, error)

	// Authenticate verifies the email/password pair and returns the member
	// on success. Unknown email and wrong password both return
	// auth.ErrInvalidCredentials so callers cannot probe for accounts.
	// A withdrawn account returns ErrMemberWithdrawn.
	Authenticate(ctx context.Context, email, password string) (*domain.Member, error)

	// GetByID retrieves a member by their ID
	GetByID(ctx context.Context, memberID uuid.UUID) (*domain.Member, error)

	// GetByEmail retrieves a member by their email address
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)

	// IsOpen reports whether the member account is open. A nil member is
	// never open.
	IsOpen(member *domain.Member) bool

	// MatchPassword reports whether the plaintext password matches the hash.
	MatchPassword(hashedPassword, password string) bool

	// EncodePassword hashes a plaintext password for storage or seeding.
	EncodePassword(password string) (string, error)

	// Close withdraws the member account. Closing an already-withdrawn
	// account returns ErrMemberWithdrawn.
	Close(ctx context.Context, memberID uuid.UUID) error
}

// MemberServiceImpl implements the MemberService interface
type MemberServiceImpl struct {
	memberStore store.MemberStore
	db          *sql.DB
	verifier    auth.PasswordVerifier
	hasher      auth.PasswordHasher
	logger      *slog.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(
	memberStore store.MemberStore,
	db *sql.DB,
	verifier auth.PasswordVerifier,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) MemberService {
	return &MemberServiceImpl{
		memberStore: memberStore,
		db:          db,
		verifier:    verifier,
		hasher:      hasher,
		logger:      logger.With("component", "member_service"),
	}
}

// Register creates a new member with the given profile fields.
// Uses a transaction to ensure atomicity of the operation.
func (s *MemberServiceImpl) Register(
	ctx context.Context,
	email, password, name string,
	birthDate time.Time,
	tags []string,
) (*domain.Member, error) {
	member, err := domain.NewMember(email, password, name, birthDate, tags)
	if err != nil {
		s.logger.Error("failed to create member object",
			"error", err)
		return nil, fmt.Errorf("failed to register member: %w", err)
	}

	// Use a transaction for the member creation
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Get a transaction-aware store
		txStore := s.memberStore.WithTx(tx)

		// Create the member within the transaction
		return txStore.Create(ctx, member)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
		} else {
			s.logger.Error("failed to save member to database",
				"error", err)
		}
		return nil, fmt.Errorf("failed to register member: %w", err)
	}

	s.logger.Info("member registered successfully",
		"member_id", member.ID)

	return member, nil
}

// Authenticate verifies credentials and returns the member on success.
func (s *MemberServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.Member, error) {
	member, err := s.memberStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve member for login",
			"error", err)
		return nil, fmt.Errorf("failed to authenticate member: %w", err)
	}

	if err := s.verifier.Compare(member.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"member_id", member.ID)
		return nil, auth.ErrInvalidCredentials
	}

	if !member.IsOpen() {
		s.logger.Debug("login attempt on withdrawn account",
			"member_id", member.ID)
		return nil, ErrMemberWithdrawn
	}

	s.logger.Info("member authenticated successfully",
		"member_id", member.ID)

	return member, nil
}

// GetByID retrieves a member by their ID
func (s *MemberServiceImpl) GetByID(
	ctx context.Context,
	memberID uuid.UUID,
) (*domain.Member, error) {
	member, err := s.memberStore.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			s.logger.Debug("member not found",
				"member_id", memberID)
		} else {
			s.logger.Error("failed to retrieve member",
				"error", err,
				"member_id", memberID)
		}
		return nil, fmt.Errorf("failed to retrieve member: %w", err)
	}

	return member, nil
}

// GetByEmail retrieves a member by their email address
func (s *MemberServiceImpl) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Member, error) {
	member, err := s.memberStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			s.logger.Debug("member not found by email")
		} else {
			s.logger.Error("failed to retrieve member by email",
				"error", err)
		}
		return nil, fmt.Errorf("failed to retrieve member by email: %w", err)
	}

	return member, nil
}

// IsOpen reports whether the member account is open.
func (s *MemberServiceImpl) IsOpen(member *domain.Member) bool {
	if member == nil {
		return false
	}
	return member.IsOpen()
}

// MatchPassword reports whether the plaintext password matches the hash.
func (s *MemberServiceImpl) MatchPassword(hashedPassword, password string) bool {
	return s.verifier.Compare(hashedPassword, password) == nil
}

// EncodePassword hashes a plaintext password for storage or seeding.
func (s *MemberServiceImpl) EncodePassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// Close withdraws the member account.
// Following the pattern of getting the complete member first, then updating
// the status field. Uses a transaction to ensure atomicity of the operation.
func (s *MemberServiceImpl) Close(ctx context.Context, memberID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Get a transaction-aware store
		txStore := s.memberStore.WithTx(tx)

		member, err := txStore.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, store.ErrMemberNotFound) {
				s.logger.Debug("attempted to close non-existent member",
					"member_id", memberID)
			} else {
				s.logger.Error("failed to retrieve member for closure",
					"error", err,
					"member_id", memberID)
			}
			return fmt.Errorf("failed to close member account: %w", err)
		}

		if !member.IsOpen() {
			s.logger.Debug("attempted to close already-withdrawn member",
				"member_id", memberID)
			return ErrMemberWithdrawn
		}

		if err := member.Withdraw(); err != nil {
			return fmt.Errorf("failed to close member account: %w", err)
		}

		if err := txStore.Update(ctx, member); err != nil {
			s.logger.Error("failed to persist member closure",
				"error", err,
				"member_id", memberID)
			return fmt.Errorf("failed to close member account: %w", err)
		}

		s.logger.Info("member account closed successfully",
			"member_id", memberID)

		return nil
	})
}

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

// MemberRepository defines the repository interface for the service layer.
// This is aligned with store.MemberStore to ensure proper separation of concerns.
type MemberRepository interface {
	// GetByID retrieves a member by their unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)

	// GetByEmail retrieves a member by their email address
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)

	// Update saves changes to an existing member
	Update(ctx context.Context, member *domain.Member) error

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) MemberRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// SearchHistoryRepository defines the repository interface for recent-keyword
// persistence at the service layer, aligned with store.SearchHistoryStore.
type SearchHistoryRepository interface {
	// Create saves a new search history entry
	Create(ctx context.Context, entry *domain.SearchHistory) error

	// Exists reports whether the member's history already holds the keyword
	Exists(ctx context.Context, memberID uuid.UUID, keyword string) (bool, error)

	// CountByMember returns the number of history entries the member holds
	CountByMember(ctx context.Context, memberID uuid.UUID) (int, error)

	// DeleteOldest removes the member's single oldest history entry
	DeleteOldest(ctx context.Context, memberID uuid.UUID) error

	// ListByMember retrieves the member's history entries, most recent first
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.SearchHistory, error)

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) SearchHistoryRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// MemberProfile is the view of a member returned by profile reads:
// no credentials, and age precomputed from the birth date.
type MemberProfile struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Age   int      `json:"age"`
	Tags  []string `json:"tags"`
}

// UpdateProfileParams carries the changes for a profile update.
// CurrentPassword is always required; the remaining fields are applied only
// when set (zero values and a nil Tags slice leave the stored value unchanged).
type UpdateProfileParams struct {
	CurrentPassword string
	Name            string
	BirthDate       time.Time
	Tags            []string
	NewPassword     string
}

// MemberInfoService provides profile-level member operations keyed by the
// authenticated identity the caller supplies explicitly.
type MemberInfoService interface {
	// GetMember resolves an open member by email.
	// Returns store.ErrMemberNotFound when absent and ErrMemberWithdrawn
	// when the account is closed.
	GetMember(ctx context.Context, email string) (*domain.Member, error)

	// GetProfile returns the member's profile view with the age computed
	// as of today.
	GetProfile(ctx context.Context, email string) (*MemberProfile, error)

	// UpdateProfile applies the given changes after verifying the member's
	// current password. Returns ErrPasswordMismatch when the verification
	// fails; nothing is persisted in that case.
	UpdateProfile(ctx context.Context, email string, params UpdateProfileParams) error

	// AddRecentKeyword records a keyword in the member's search history.
	// Returns store.ErrDuplicateKeyword if the member already holds the
	// keyword. When the history is at capacity the single oldest entry is
	// evicted in the same transaction.
	AddRecentKeyword(ctx context.Context, memberID uuid.UUID, keyword string) error

	// RecentKeywords lists the member's search history, most recent first.
	RecentKeywords(ctx context.Context, memberID uuid.UUID) ([]*domain.SearchHistory, error)
}

// MemberInfoServiceError wraps errors from the member info service with context.
type MemberInfoServiceError struct {
	// Operation is the operation that failed (e.g., "update_profile", "add_recent_keyword")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for MemberInfoServiceError.
func (e *MemberInfoServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("member info service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("member info service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MemberInfoServiceError) Unwrap() error {
	return e.Err
}

// NewMemberInfoServiceError creates a new MemberInfoServiceError.
// It returns known sentinel errors directly without wrapping so callers can
// keep matching on the entity-specific store sentinels.
func NewMemberInfoServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-defined sentinel errors
	if errors.Is(err, ErrMemberWithdrawn) {
		return ErrMemberWithdrawn
	}
	if errors.Is(err, ErrPasswordMismatch) {
		return ErrPasswordMismatch
	}

	// Store-level sentinels pass through unchanged; the API layer maps the
	// not-found and duplicate families to status codes.
	if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
		return err
	}

	// If not a sentinel to be returned directly, wrap it
	return &MemberInfoServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// memberInfoServiceImpl implements the MemberInfoService interface
type memberInfoServiceImpl struct {
	memberRepo  MemberRepository
	historyRepo SearchHistoryRepository
	verifier    auth.PasswordVerifier
	logger      *slog.Logger
}

// NewMemberInfoService creates a new MemberInfoService
// It returns an error if any of the required dependencies are nil.
func NewMemberInfoService(
	memberRepo MemberRepository,
	historyRepo SearchHistoryRepository,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (MemberInfoService, error) {
	// Validate dependencies
	if memberRepo == nil {
		return nil, &MemberInfoServiceError{
			Operation: "create_service",
			Message:   "memberRepo cannot be nil",
			Err:       nil,
		}
	}
	if historyRepo == nil {
		return nil, &MemberInfoServiceError{
			Operation: "create_service",
			Message:   "historyRepo cannot be nil",
			Err:       nil,
		}
	}
	if verifier == nil {
		return nil, &MemberInfoServiceError{
			Operation: "create_service",
			Message:   "verifier cannot be nil",
			Err:       nil,
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &memberInfoServiceImpl{
		memberRepo:  memberRepo,
		historyRepo: historyRepo,
		verifier:    verifier,
		logger:      logger.With("component", "member_info_service"),
	}, nil
}

// GetMember resolves an open member by email.
func (s *memberInfoServiceImpl) GetMember(
	ctx context.Context,
	email string,
) (*domain.Member, error) {
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			s.logger.Debug("member not found for profile lookup")
			return nil, store.ErrMemberNotFound
		}
		s.logger.Error("failed to retrieve member for profile lookup",
			"error", err)
		return nil, NewMemberInfoServiceError("get_member", "failed to retrieve member", err)
	}

	if !member.IsOpen() {
		s.logger.Debug("profile lookup on withdrawn account",
			"member_id", member.ID)
		return nil, ErrMemberWithdrawn
	}

	return member, nil
}

// GetProfile returns the member's profile view with the age computed as of today.
func (s *memberInfoServiceImpl) GetProfile(
	ctx context.Context,
	email string,
) (*MemberProfile, error) {
	member, err := s.GetMember(ctx, email)
	if err != nil {
		return nil, err
	}

	return &MemberProfile{
		Email: member.Email,
		Name:  member.Name,
		Age:   member.AgeOn(time.Now().UTC()),
		Tags:  member.Tags,
	}, nil
}

// UpdateProfile applies profile changes after verifying the current password.
// The resolve, verification, and save all run inside one transaction so the
// password check and the write see the same row.
func (s *memberInfoServiceImpl) UpdateProfile(
	ctx context.Context,
	email string,
	params UpdateProfileParams,
) error {
	return store.RunInTransaction(
		ctx,
		s.memberRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			// Get a transactional repo
			txRepo := s.memberRepo.WithTx(tx)

			member, err := txRepo.GetByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, store.ErrMemberNotFound) {
					s.logger.Debug("member not found for profile update")
					return store.ErrMemberNotFound
				}
				s.logger.Error("failed to retrieve member for profile update",
					"error", err)
				return NewMemberInfoServiceError(
					"update_profile",
					"failed to retrieve member",
					err,
				)
			}

			if !member.IsOpen() {
				s.logger.Debug("profile update on withdrawn account",
					"member_id", member.ID)
				return ErrMemberWithdrawn
			}

			if err := s.verifier.Compare(member.HashedPassword, params.CurrentPassword); err != nil {
				s.logger.Debug("profile update with wrong current password",
					"member_id", member.ID)
				return ErrPasswordMismatch
			}

			if params.Name != "" {
				member.Name = params.Name
			}
			if !params.BirthDate.IsZero() {
				member.BirthDate = params.BirthDate
			}
			if params.Tags != nil {
				member.Tags = params.Tags
			}
			if params.NewPassword != "" {
				// The store hashes any plaintext password on update.
				member.Password = params.NewPassword
			}

			if err := txRepo.Update(ctx, member); err != nil {
				s.logger.Error("failed to save profile update",
					"error", err,
					"member_id", member.ID)
				return NewMemberInfoServiceError("update_profile", "failed to save member", err)
			}

			s.logger.Info("member profile updated successfully",
				"member_id", member.ID)
			return nil
		},
	)
}

// AddRecentKeyword records a keyword in the member's search history.
// The duplicate check, capacity check, eviction, and insert run inside one
// transaction so concurrent submissions for the same member cannot
// transiently exceed the per-member cap.
func (s *memberInfoServiceImpl) AddRecentKeyword(
	ctx context.Context,
	memberID uuid.UUID,
	keyword string,
) error {
	entry, err := domain.NewSearchHistory(memberID, keyword)
	if err != nil {
		s.logger.Error("failed to create search history object",
			"error", err,
			"member_id", memberID)
		return NewMemberInfoServiceError(
			"add_recent_keyword",
			"failed to create search history object",
			err,
		)
	}

	return store.RunInTransaction(
		ctx,
		s.historyRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			// Get a transactional repo
			txRepo := s.historyRepo.WithTx(tx)

			exists, err := txRepo.Exists(ctx, memberID, entry.Keyword)
			if err != nil {
				s.logger.Error("failed to check for duplicate keyword",
					"error", err,
					"member_id", memberID)
				return NewMemberInfoServiceError(
					"add_recent_keyword",
					"failed to check for duplicate keyword",
					err,
				)
			}
			if exists {
				s.logger.Debug("attempted to add duplicate keyword",
					"member_id", memberID)
				return store.ErrDuplicateKeyword
			}

			count, err := txRepo.CountByMember(ctx, memberID)
			if err != nil {
				s.logger.Error("failed to count search history entries",
					"error", err,
					"member_id", memberID)
				return NewMemberInfoServiceError(
					"add_recent_keyword",
					"failed to count search history entries",
					err,
				)
			}

			if count >= domain.RecentKeywordLimit {
				if err := txRepo.DeleteOldest(ctx, memberID); err != nil {
					s.logger.Error("failed to evict oldest keyword",
						"error", err,
						"member_id", memberID)
					return NewMemberInfoServiceError(
						"add_recent_keyword",
						"failed to evict oldest keyword",
						err,
					)
				}
			}

			if err := txRepo.Create(ctx, entry); err != nil {
				s.logger.Error("failed to save search history entry",
					"error", err,
					"member_id", memberID)
				return NewMemberInfoServiceError(
					"add_recent_keyword",
					"failed to save search history entry",
					err,
				)
			}

			s.logger.Info("recent keyword added successfully",
				"member_id", memberID,
				"history_id", entry.ID)
			return nil
		},
	)
}

// RecentKeywords lists the member's search history, most recent first.
func (s *memberInfoServiceImpl) RecentKeywords(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.SearchHistory, error) {
	entries, err := s.historyRepo.ListByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("failed to list search history",
			"error", err,
			"member_id", memberID)
		return nil, NewMemberInfoServiceError(
			"recent_keywords",
			"failed to list search history",
			err,
		)
	}

	s.logger.Debug("retrieved search history successfully",
		"member_id", memberID,
		"count", len(entries))

	return entries, nil
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
)

// MemberStore defines the interface for member data persistence.
type MemberStore interface {
	// Create saves a new member to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Member if data is invalid.
	Create(ctx context.Context, member *domain.Member) error

	// GetByID retrieves a member by their unique ID.
	// Returns ErrMemberNotFound if the member does not exist.
	// The returned member contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)

	// GetByEmail retrieves a member by their email address.
	// Returns ErrMemberNotFound if the member does not exist.
	// The returned member contains all fields except the plaintext password.
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)

	// Update modifies an existing member's details.
	// The caller MUST provide a complete member object including HashedPassword.
	// If a new plain text Password is provided, it will be hashed and the HashedPassword will be updated.
	// Returns ErrMemberNotFound if the member does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	// Returns validation errors from the domain Member if data is invalid.
	Update(ctx context.Context, member *domain.Member) error

	// Delete removes a member from the store by their ID.
	// Returns ErrMemberNotFound if the member does not exist.
	// This operation is permanent and cannot be undone; account closure
	// normally goes through Update with a withdrawn status instead.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new MemberStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) MemberStore
}

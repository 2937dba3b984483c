package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresMemberStore implements the store.MemberStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMemberStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresMemberStore creates a new PostgreSQL implementation of the MemberStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// The bcryptCost parameter controls the work factor used when hashing passwords;
// values outside the valid bcrypt range fall back to bcrypt.DefaultCost.
// If logger is nil, a default logger will be used.
func NewPostgresMemberStore(db store.DBTX, logger *slog.Logger, bcryptCost int) *PostgresMemberStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresMemberStore{
		db:         db,
		logger:     logger.With(slog.String("component", "member_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresMemberStore implements store.MemberStore interface
var _ store.MemberStore = (*PostgresMemberStore)(nil)

// hashPassword hashes a plaintext password using bcrypt with the store's
// configured cost factor.
func (s *PostgresMemberStore) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Create implements store.MemberStore.Create
// It saves a new member to the database, handling domain validation and
// password hashing internally. On success the plaintext Password field is
// cleared and HashedPassword holds the bcrypt hash.
// Returns store.ErrEmailExists if the email is already taken.
// Returns validation errors from the domain Member if data is invalid.
func (s *PostgresMemberStore) Create(ctx context.Context, member *domain.Member) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate member data
	if err := member.Validate(); err != nil {
		log.Warn("member validation failed during create",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	if member.Password == "" {
		log.Warn("member creation attempted without a password",
			slog.String("member_id", member.ID.String()))
		return domain.ErrEmptyPassword
	}

	// Hash the password before storing
	hashedPassword, err := s.hashPassword(member.Password)
	if err != nil {
		log.Error("failed to hash member password",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	tagsJSON, err := json.Marshal(normalizeTags(member.Tags))
	if err != nil {
		log.Error("failed to marshal member tags",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	query := `
		INSERT INTO members (id, email, hashed_password, name, birth_date, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		member.ID,
		member.Email,
		hashedPassword,
		member.Name,
		member.BirthDate,
		tagsJSON,
		member.Status,
		member.CreatedAt,
		member.UpdatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during member creation",
				slog.String("error", err.Error()),
				slog.String("member_id", member.ID.String()))
			return MapUniqueViolation(err, "email", "", store.ErrEmailExists)
		}

		// Log the error
		log.Error("failed to create member",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))

		// Return the original error
		return err
	}

	// Keep the in-memory entity consistent with what was stored
	member.HashedPassword = hashedPassword
	member.Password = ""

	log.Info("member created successfully",
		slog.String("member_id", member.ID.String()),
		slog.String("status", string(member.Status)))
	return nil
}

// GetByID implements store.MemberStore.GetByID
// It retrieves a member by their unique ID.
// Returns store.ErrMemberNotFound if the member does not exist.
func (s *PostgresMemberStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving member by ID", slog.String("member_id", id.String()))

	query := `
		SELECT id, email, hashed_password, name, birth_date, tags, status, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	member, err := s.scanMember(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("member not found", slog.String("member_id", id.String()))
			return nil, store.ErrMemberNotFound
		}
		log.Error("failed to get member by ID",
			slog.String("error", err.Error()),
			slog.String("member_id", id.String()))
		return nil, err
	}

	log.Debug("member retrieved successfully",
		slog.String("member_id", id.String()),
		slog.String("status", string(member.Status)))
	return member, nil
}

// GetByEmail implements store.MemberStore.GetByEmail
// It retrieves a member by their email address.
// Returns store.ErrMemberNotFound if the member does not exist.
func (s *PostgresMemberStore) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving member by email")

	query := `
		SELECT id, email, hashed_password, name, birth_date, tags, status, created_at, updated_at
		FROM members
		WHERE email = $1
	`

	member, err := s.scanMember(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("member not found by email")
			return nil, store.ErrMemberNotFound
		}
		log.Error("failed to get member by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("member retrieved successfully",
		slog.String("member_id", member.ID.String()),
		slog.String("status", string(member.Status)))
	return member, nil
}

// Update implements store.MemberStore.Update
// It modifies an existing member's details. If a new plaintext Password is
// set, it is hashed and replaces the stored hash; otherwise the provided
// HashedPassword is written back unchanged.
// Returns store.ErrMemberNotFound if the member does not exist.
// Returns store.ErrEmailExists if updating to an email that is already taken.
// Returns validation errors from the domain Member if data is invalid.
func (s *PostgresMemberStore) Update(ctx context.Context, member *domain.Member) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate member data
	if err := member.Validate(); err != nil {
		log.Warn("member validation failed during update",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	hashedPassword := member.HashedPassword
	if member.Password != "" {
		hashed, err := s.hashPassword(member.Password)
		if err != nil {
			log.Error("failed to hash member password",
				slog.String("error", err.Error()),
				slog.String("member_id", member.ID.String()))
			return err
		}
		hashedPassword = hashed
	}

	tagsJSON, err := json.Marshal(normalizeTags(member.Tags))
	if err != nil {
		log.Error("failed to marshal member tags",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE members
		SET email = $1, hashed_password = $2, name = $3, birth_date = $4, tags = $5, status = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		member.Email,
		hashedPassword,
		member.Name,
		member.BirthDate,
		tagsJSON,
		member.Status,
		updatedAt,
		member.ID,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during member update",
				slog.String("error", err.Error()),
				slog.String("member_id", member.ID.String()))
			return MapUniqueViolation(err, "email", "", store.ErrEmailExists)
		}

		log.Error("failed to update member",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	// Check if a row was actually updated
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("member_id", member.ID.String()))
		return err
	}

	// If no rows were affected, the member didn't exist
	if rowsAffected == 0 {
		log.Debug("member not found for update",
			slog.String("member_id", member.ID.String()))
		return store.ErrMemberNotFound
	}

	// Keep the in-memory entity consistent with what was stored
	member.HashedPassword = hashedPassword
	member.Password = ""
	member.UpdatedAt = updatedAt

	log.Info("member updated successfully",
		slog.String("member_id", member.ID.String()),
		slog.String("status", string(member.Status)))
	return nil
}

// Delete implements store.MemberStore.Delete
// It permanently removes a member from the database by their ID.
// Returns store.ErrMemberNotFound if the member does not exist.
func (s *PostgresMemberStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting member", slog.String("member_id", id.String()))

	query := `
		DELETE FROM members
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete member",
			slog.String("error", err.Error()),
			slog.String("member_id", id.String()))
		return err
	}

	// Check if a row was actually deleted
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("member_id", id.String()))
		return err
	}

	// If no rows were affected, the member didn't exist
	if rowsAffected == 0 {
		log.Debug("member not found for delete",
			slog.String("member_id", id.String()))
		return store.ErrMemberNotFound
	}

	log.Info("member deleted successfully",
		slog.String("member_id", id.String()))
	return nil
}

// WithTx implements store.MemberStore.WithTx
// It returns a new MemberStore instance that uses the provided transaction.
// This allows multiple operations to be executed within a single transaction.
func (s *PostgresMemberStore) WithTx(tx *sql.Tx) store.MemberStore {
	return &PostgresMemberStore{
		db:         tx,
		logger:     s.logger,
		bcryptCost: s.bcryptCost,
	}
}

// scanMember scans a single member row into a domain.Member.
// The caller is responsible for mapping sql.ErrNoRows.
func (s *PostgresMemberStore) scanMember(row *sql.Row) (*domain.Member, error) {
	var member domain.Member
	var status string
	var tagsJSON []byte

	err := row.Scan(
		&member.ID,
		&member.Email,
		&member.HashedPassword,
		&member.Name,
		&member.BirthDate,
		&tagsJSON,
		&status,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	member.Status = domain.MemberStatus(status)

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &member.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member tags: %w", err)
		}
	}
	member.Tags = normalizeTags(member.Tags)

	return &member, nil
}

// normalizeTags ensures stored and returned tag slices are never nil.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

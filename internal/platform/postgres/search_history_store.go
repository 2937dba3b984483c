package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/store"
)

// PostgresSearchHistoryStore implements the store.SearchHistoryStore interface
// using a PostgreSQL database as the storage backend.
//
// The search_history table carries a monotonically increasing seq column
// assigned by the database. DeleteOldest and ListByMember order by seq rather
// than created_at so that entries inserted within the same clock tick still
// have a well-defined FIFO order.
type PostgresSearchHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSearchHistoryStore creates a new PostgreSQL implementation of the
// SearchHistoryStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSearchHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresSearchHistoryStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSearchHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "search_history_store")),
	}
}

// Ensure PostgresSearchHistoryStore implements store.SearchHistoryStore interface
var _ store.SearchHistoryStore = (*PostgresSearchHistoryStore)(nil)

// Create implements store.SearchHistoryStore.Create
// It saves a new search history entry, handling domain validation.
// Returns store.ErrDuplicateKeyword if the member already has the keyword.
// Returns store.ErrInvalidEntity if the member ID doesn't exist (foreign key violation).
// Returns validation errors from the domain SearchHistory if data is invalid.
func (s *PostgresSearchHistoryStore) Create(ctx context.Context, entry *domain.SearchHistory) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate entry data
	if err := entry.Validate(); err != nil {
		log.Warn("search history validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO search_history (id, member_id, keyword, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.MemberID,
		entry.Keyword,
		entry.CreatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (member already has the keyword)
		if IsUniqueViolation(err) {
			log.Debug("duplicate keyword during search history creation",
				slog.String("entry_id", entry.ID.String()),
				slog.String("member_id", entry.MemberID.String()))
			return MapUniqueViolation(err, "keyword", "", store.ErrDuplicateKeyword)
		}

		// Check for foreign key violation (member doesn't exist)
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during search history creation",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()),
				slog.String("member_id", entry.MemberID.String()))
			return fmt.Errorf("%w: member with ID %s not found",
				store.ErrInvalidEntity, entry.MemberID)
		}

		// Log the error
		log.Error("failed to create search history entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("member_id", entry.MemberID.String()))

		// Return the original error
		return err
	}

	log.Info("search history entry created successfully",
		slog.String("entry_id", entry.ID.String()),
		slog.String("member_id", entry.MemberID.String()))
	return nil
}

// Exists implements store.SearchHistoryStore.Exists
// It reports whether the member's history already holds the given keyword.
func (s *PostgresSearchHistoryStore) Exists(
	ctx context.Context,
	memberID uuid.UUID,
	keyword string,
) (bool, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM search_history
			WHERE member_id = $1 AND keyword = $2
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, memberID, keyword).Scan(&exists)
	if err != nil {
		log.Error("failed to check search history existence",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return false, err
	}

	return exists, nil
}

// CountByMember implements store.SearchHistoryStore.CountByMember
// It returns the number of history entries the member currently holds.
func (s *PostgresSearchHistoryStore) CountByMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM search_history
		WHERE member_id = $1
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	if err != nil {
		log.Error("failed to count search history entries",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return 0, err
	}

	return count, nil
}

// DeleteOldest implements store.SearchHistoryStore.DeleteOldest
// It removes the member's single oldest history entry, determined by the
// database-assigned seq column.
// Returns store.ErrSearchHistoryNotFound if the member has no entries.
func (s *PostgresSearchHistoryStore) DeleteOldest(ctx context.Context, memberID uuid.UUID) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting oldest search history entry",
		slog.String("member_id", memberID.String()))

	query := `
		DELETE FROM search_history
		WHERE id = (
			SELECT id
			FROM search_history
			WHERE member_id = $1
			ORDER BY seq ASC
			LIMIT 1
		)
	`

	result, err := s.db.ExecContext(ctx, query, memberID)
	if err != nil {
		log.Error("failed to delete oldest search history entry",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return err
	}

	// Check if a row was actually deleted
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return err
	}

	// If no rows were affected, the member had no entries
	if rowsAffected == 0 {
		log.Debug("no search history entries to delete",
			slog.String("member_id", memberID.String()))
		return store.ErrSearchHistoryNotFound
	}

	log.Debug("oldest search history entry deleted",
		slog.String("member_id", memberID.String()))
	return nil
}

// ListByMember implements store.SearchHistoryStore.ListByMember
// It retrieves the member's history entries, most recent first.
// Returns an empty slice if the member has no entries.
func (s *PostgresSearchHistoryStore) ListByMember(
	ctx context.Context,
	memberID uuid.UUID,
) ([]*domain.SearchHistory, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing search history entries",
		slog.String("member_id", memberID.String()))

	query := `
		SELECT id, member_id, keyword, created_at
		FROM search_history
		WHERE member_id = $1
		ORDER BY seq DESC
	`

	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		log.Error("failed to query search history entries",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return nil, err
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var entries []*domain.SearchHistory
	for rows.Next() {
		var entry domain.SearchHistory

		err := rows.Scan(
			&entry.ID,
			&entry.MemberID,
			&entry.Keyword,
			&entry.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan search history row",
				slog.String("error", err.Error()))
			return nil, err
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no entries found
	if entries == nil {
		entries = []*domain.SearchHistory{}
	}

	log.Debug("listed search history entries",
		slog.String("member_id", memberID.String()),
		slog.Int("count", len(entries)))
	return entries, nil
}

// WithTx implements store.SearchHistoryStore.WithTx
// It returns a new SearchHistoryStore instance that uses the provided transaction.
// This allows multiple operations to be executed within a single transaction.
func (s *PostgresSearchHistoryStore) WithTx(tx *sql.Tx) store.SearchHistoryStore {
	return &PostgresSearchHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

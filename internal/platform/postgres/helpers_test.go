package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mustInsertMember inserts a member fixture directly with SQL so store tests
// do not depend on the code under test for their setup.
// The function will fail the test if the insert operation fails.
func mustInsertMember(ctx context.Context, t *testing.T, db store.DBTX, email string) uuid.UUID {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPassword123!"), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash password")

	id := uuid.New()
	now := time.Now().UTC()

	_, err = db.ExecContext(ctx, `
		INSERT INTO members (id, email, hashed_password, name, birth_date, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, email, string(hashedPassword), "Test Member",
		time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC), []byte(`["tester"]`), "open", now, now)
	require.NoError(t, err, "Failed to insert test member")

	return id
}

// mustInsertProductRow inserts a raw product row, bypassing the variant
// encoders. Useful for seeding rows with arbitrary kinds and payloads.
func mustInsertProductRow(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	name, kind, details string,
	createdAt time.Time,
) uuid.UUID {
	t.Helper()

	id := uuid.New()

	_, err := db.ExecContext(ctx, `
		INSERT INTO products (id, name, kind, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, name, kind, []byte(details), createdAt, createdAt)
	require.NoError(t, err, "Failed to insert test product row")

	return id
}

// countRows counts rows in the given table matching the optional WHERE clause.
func countRows(ctx context.Context, t *testing.T, db store.DBTX, table, whereClause string, args ...interface{}) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int
	err := db.QueryRowContext(ctx, query, args...).Scan(&count)
	require.NoError(t, err, "Failed to count rows")

	return count
}

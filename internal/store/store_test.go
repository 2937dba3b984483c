package store_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/hyeonm/finmart-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// Compile-time checks that both *sql.DB and *sql.Tx satisfy DBTX, so stores
// can run the same queries inside and outside a transaction.
var (
	_ store.DBTX = (*sql.DB)(nil)
	_ store.DBTX = (*sql.Tx)(nil)
)

// TestErrorDefinitions ensures that the error definitions in the store
// package are defined as expected and can be used with errors.Is.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	// Create functions that return the standard errors
	// This simulates how store implementations might return these errors
	memberNotFoundFn := func() error {
		return store.ErrMemberNotFound
	}

	emailExistsFn := func() error {
		return store.ErrEmailExists
	}

	// Test ErrMemberNotFound
	t.Run("ErrMemberNotFound", func(t *testing.T) {
		t.Parallel()

		// Get the error from the function
		err := memberNotFoundFn()

		// Verify it can be detected with errors.Is
		assert.True(t, errors.Is(err, store.ErrMemberNotFound))
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, errors.Is(err, store.ErrEmailExists))

		// Verify the error message
		assert.Equal(t, "entity not found: member", err.Error())
	})

	// Test ErrEmailExists
	t.Run("ErrEmailExists", func(t *testing.T) {
		t.Parallel()

		// Get the error from the function
		err := emailExistsFn()

		// Verify it can be detected with errors.Is
		assert.True(t, errors.Is(err, store.ErrEmailExists))
		assert.True(t, errors.Is(err, store.ErrDuplicate))
		assert.False(t, errors.Is(err, store.ErrMemberNotFound))

		// Verify the error message
		assert.Equal(t, "entity already exists: email", err.Error())
	})

	// The entity-specific sentinels must not satisfy each other even though
	// they share a base sentinel.
	t.Run("sentinels_are_distinct", func(t *testing.T) {
		t.Parallel()

		assert.False(t, errors.Is(store.ErrDuplicateKeyword, store.ErrDuplicateCartItem))
		assert.False(t, errors.Is(store.ErrProductNotFound, store.ErrMemberNotFound))
	})
}

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unrelated error", errors.New("some error"), false},
		{"wrapped unrelated error", fmt.Errorf("lookup: %w", errors.New("some error")), false},
		{"category error", ErrNotFound, true},
		{"wrapped category error", fmt.Errorf("lookup: %w", ErrNotFound), true},
		{"member variant", ErrMemberNotFound, true},
		{"wrapped member variant", fmt.Errorf("get member: %w", ErrMemberNotFound), true},
		{"product variant", ErrProductNotFound, true},
		{"cart item variant", ErrCartItemNotFound, true},
		{"search history variant", ErrSearchHistoryNotFound, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unrelated error", errors.New("some error"), false},
		{"not found is not duplicate", ErrMemberNotFound, false},
		{"category error", ErrDuplicate, true},
		{"wrapped category error", fmt.Errorf("create: %w", ErrDuplicate), true},
		{"email variant", ErrEmailExists, true},
		{"wrapped email variant", fmt.Errorf("register: %w", ErrEmailExists), true},
		{"keyword variant", ErrDuplicateKeyword, true},
		{"cart item variant", fmt.Errorf("add to cart: %w", ErrDuplicateCartItem), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateError(tc.err))
		})
	}
}

func TestEntityVariantsCarryTheirEntity(t *testing.T) {
	assert.Contains(t, ErrMemberNotFound.Error(), "member")
	assert.Contains(t, ErrProductNotFound.Error(), "product")
	assert.Contains(t, ErrCartItemNotFound.Error(), "cart item")
	assert.Contains(t, ErrSearchHistoryNotFound.Error(), "search history")
	assert.Contains(t, ErrEmailExists.Error(), "email")
	assert.Contains(t, ErrDuplicateKeyword.Error(), "keyword")
	assert.Contains(t, ErrDuplicateCartItem.Error(), "cart item")
}

func TestStoreError(t *testing.T) {
	t.Run("formats with wrapped error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewStoreError("member", "create", "insert failed", cause)

		assert.Equal(t,
			"create operation on member failed: insert failed: connection refused",
			err.Error())
	})

	t.Run("formats without wrapped error", func(t *testing.T) {
		err := NewStoreError("product", "get", "scan failed", nil)

		assert.Equal(t, "get operation on product failed: scan failed", err.Error())
	})

	t.Run("unwraps through the chain", func(t *testing.T) {
		err := NewStoreError("member", "get", "lookup failed", ErrMemberNotFound)

		assert.True(t, errors.Is(err, ErrMemberNotFound))
		assert.True(t, errors.Is(err, ErrNotFound), "the category should stay reachable")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("matches errors.As", func(t *testing.T) {
		wrapped := fmt.Errorf("service: %w", NewStoreError("cart item", "delete", "timeout", nil))

		var storeErr *StoreError
		require.True(t, errors.As(wrapped, &storeErr))
		assert.Equal(t, "cart item", storeErr.Entity)
		assert.Equal(t, "delete", storeErr.Operation)
	})
}

package postgres

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// TestMemberStoreWithTx tests the WithTx method for the member store
func TestMemberStoreWithTx(t *testing.T) {
	// Create a member store
	db := &sql.DB{}
	logger := slog.Default()
	memberStore := NewPostgresMemberStore(db, logger, bcrypt.MinCost)

	// Create a mock transaction
	tx := &sql.Tx{}

	// Test WithTx returns a new store instance
	result := memberStore.WithTx(tx)
	assert.NotNil(t, result)

	// Verify it returns a MemberStore interface
	resultStore, ok := result.(*PostgresMemberStore)
	assert.True(t, ok, "WithTx should return a PostgresMemberStore instance")

	// The new store should use the transaction as its db
	assert.Equal(t, tx, resultStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, memberStore.logger, resultStore.logger, "WithTx store should preserve the logger")
	assert.Equal(t, memberStore.bcryptCost, resultStore.bcryptCost, "WithTx store should preserve the bcrypt cost")
}

// TestSearchHistoryStoreWithTx tests the WithTx method for the search history store
func TestSearchHistoryStoreWithTx(t *testing.T) {
	// Create a search history store
	db := &sql.DB{}
	logger := slog.Default()
	historyStore := NewPostgresSearchHistoryStore(db, logger)

	// Create a mock transaction
	tx := &sql.Tx{}

	// Test WithTx returns a new store instance
	result := historyStore.WithTx(tx)
	assert.NotNil(t, result)

	// Verify it returns a SearchHistoryStore interface
	resultStore, ok := result.(*PostgresSearchHistoryStore)
	assert.True(t, ok, "WithTx should return a PostgresSearchHistoryStore instance")

	// The new store should use the transaction as its db
	assert.Equal(t, tx, resultStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, historyStore.logger, resultStore.logger, "WithTx store should preserve the logger")
}

// TestCartItemStoreWithTx tests the WithTx method for the cart store
func TestCartItemStoreWithTx(t *testing.T) {
	// Create a cart store
	db := &sql.DB{}
	logger := slog.Default()
	cartStore := NewPostgresCartItemStore(db, logger)

	// Create a mock transaction
	tx := &sql.Tx{}

	// Test WithTx returns a new store instance
	result := cartStore.WithTx(tx)
	assert.NotNil(t, result)

	// Verify it returns a CartItemStore interface
	resultStore, ok := result.(*PostgresCartItemStore)
	assert.True(t, ok, "WithTx should return a PostgresCartItemStore instance")

	// The new store should use the transaction as its db
	assert.Equal(t, tx, resultStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, cartStore.logger, resultStore.logger, "WithTx store should preserve the logger")
}

// TestProductStoreWithTx tests the WithTx method for the product store
func TestProductStoreWithTx(t *testing.T) {
	// Create a product store
	db := &sql.DB{}
	logger := slog.Default()
	productStore := NewPostgresProductStore(db, logger)

	// Create a mock transaction
	tx := &sql.Tx{}

	// Test WithTx returns a new store instance
	result := productStore.WithTx(tx)
	assert.NotNil(t, result)

	// Verify it returns a ProductStore interface
	resultStore, ok := result.(*PostgresProductStore)
	assert.True(t, ok, "WithTx should return a PostgresProductStore instance")

	// The new store should use the transaction as its db
	assert.Equal(t, tx, resultStore.db, "WithTx store should use the provided transaction")
	assert.Equal(t, productStore.logger, resultStore.logger, "WithTx store should preserve the logger")
}

// TestStoreConstructorsRejectNilDB verifies the nil-db panic guard on every
// store constructor.
func TestStoreConstructorsRejectNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresMemberStore(nil, nil, bcrypt.DefaultCost) })
	assert.Panics(t, func() { NewPostgresSearchHistoryStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresCartItemStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresProductStore(nil, nil) })
}

// TestMemberStoreBcryptCostFallback verifies out-of-range cost values fall
// back to the bcrypt default.
func TestMemberStoreBcryptCostFallback(t *testing.T) {
	db := &sql.DB{}

	tooLow := NewPostgresMemberStore(db, nil, bcrypt.MinCost-1)
	assert.Equal(t, bcrypt.DefaultCost, tooLow.bcryptCost)

	tooHigh := NewPostgresMemberStore(db, nil, bcrypt.MaxCost+1)
	assert.Equal(t, bcrypt.DefaultCost, tooHigh.bcryptCost)

	valid := NewPostgresMemberStore(db, nil, bcrypt.MinCost)
	assert.Equal(t, bcrypt.MinCost, valid.bcryptCost)
}

package store

import (
	"errors"
	"fmt"
)

// Category errors. Stores wrap these so callers can branch on the kind of
// failure without knowing which entity was involved.
var (
	// ErrNotFound is the category for lookups that matched nothing.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is the category for writes that would violate a
	// uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity marks rows a database constraint rejected before
	// they were stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed marks transactions that could not begin or
	// commit. The driver error stays wrapped underneath.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific variants. Each wraps its category so errors.Is matches
// at either granularity.
var (
	// ErrMemberNotFound reports that no member row matched.
	ErrMemberNotFound = fmt.Errorf("%w: member", ErrNotFound)

	// ErrProductNotFound reports that no product row matched.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrCartItemNotFound reports that the member's cart does not hold the
	// product.
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)

	// ErrSearchHistoryNotFound reports that no search history entry matched.
	ErrSearchHistoryNotFound = fmt.Errorf("%w: search history", ErrNotFound)

	// ErrEmailExists reports a registration against an email already in use.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrDuplicateKeyword reports that the member's search history already
	// holds the keyword. A repeated keyword is rejected, not refreshed.
	ErrDuplicateKeyword = fmt.Errorf("%w: keyword", ErrDuplicate)

	// ErrDuplicateCartItem reports that the member's cart already holds the
	// product.
	ErrDuplicateCartItem = fmt.Errorf("%w: cart item", ErrDuplicate)
)

// IsNotFoundError reports whether err is ErrNotFound or one of its
// entity-specific variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is ErrDuplicate or one of its
// entity-specific variants.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError carries the entity and operation a storage failure came from.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hyeonm/finmart-api/internal/store"
)

// PostgreSQL error codes the stores care about (appendix A of the
// PostgreSQL manual).
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// MapError translates low-level database errors into the store package's
// sentinel errors so callers never have to inspect driver internals. The
// original error stays wrapped for debugging. Errors with no specific
// translation pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case codeForeignKeyViolation:
		return fmt.Errorf(
			"%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err,
		)
	case codeCheckViolation:
		return fmt.Errorf(
			"%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err,
		)
	case codeNotNullViolation:
		return fmt.Errorf(
			"%w: not null violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err,
		)
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// for example a cart item or search history row pointing at a member that
// no longer exists.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// MapUniqueViolation converts a unique violation into specificError when
// one is given, or into store.ErrDuplicate tagged with entityName or
// constraintName otherwise. Any other error comes back unchanged.
func MapUniqueViolation(
	err error,
	entityName string,
	constraintName string,
	specificError error,
) error {
	if !IsUniqueViolation(err) {
		return err
	}

	if specificError != nil {
		return fmt.Errorf("%w: %v", specificError, err)
	}

	var msg string
	switch {
	case entityName != "":
		msg = fmt.Sprintf("%s already exists", entityName)
	case constraintName != "":
		msg = fmt.Sprintf("duplicate value for constraint: %s", constraintName)
	default:
		msg = "duplicate entry"
	}

	return fmt.Errorf("%w: %s: %v", store.ErrDuplicate, msg, err)
}

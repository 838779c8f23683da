package repository

import (
	"errors"

	"auroramart/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate into domain errors.
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeSerializationError  = "40001"
	pgCodeDeadlockDetected    = "40P01"
	pgCodeForeignKeyViolation = "23503"
)

// TranslateConflict maps serialization and deadlock failures onto the
// retryable domain error. Other errors pass through unchanged. Services use
// it on commit, where the storage layer reports conflicts last.
func TranslateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationError, pgCodeDeadlockDetected:
			return model.ErrTransactionConflict
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

// isForeignKeyViolation reports whether err is a foreign-key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation
}

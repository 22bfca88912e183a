package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// pgSentinels maps SQLSTATE codes to the domain error a caller can act on.
var pgSentinels = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
}

// MapError wraps err as "<entity> <key>: <cause>", replacing the cause with a
// domain sentinel when one applies. Context cancellation is kept as is so
// callers can tell a timeout from a data problem.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %v: %w", entity, key, cause(err))
}

func cause(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := pgSentinels[pgErr.Code]; ok {
			return sentinel
		}
	}
	return err
}

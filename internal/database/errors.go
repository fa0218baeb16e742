// internal/database/errors.go
package database

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	custom_errors "github-top-tracker/internal/errors"
)

// IsNotFound reports whether a :one query matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsConnectionError reports whether err means the database could not be reached,
// as opposed to the database rejecting a statement.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. 57P03: cannot connect now.
		return len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code == "57P03")
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	// pgxpool reports an acquire that ran out of time as a context error.
	return errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err)
}

// WrapError classifies a driver error so that pgx types do not leak past the
// package that issued the query.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectionError(err) {
		return &custom_errors.ConnectionError{Op: op, Err: err}
	}
	return &custom_errors.PersistenceError{Op: op, Err: err}
}

// internal/database/errors_test.go
package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	custom_errors "github-top-tracker/internal/errors"
)

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapError("op", nil))
	})

	t.Run("dial failures are connection errors", func(t *testing.T) {
		dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

		err := WrapError("list top repositories", fmt.Errorf("acquire: %w", dialErr))

		var connErr *custom_errors.ConnectionError
		assert.ErrorAs(t, err, &connErr)
		assert.ErrorIs(t, err, dialErr)
	})

	t.Run("acquire timeouts are connection errors", func(t *testing.T) {
		err := WrapError("list top repositories", context.DeadlineExceeded)

		var connErr *custom_errors.ConnectionError
		assert.ErrorAs(t, err, &connErr)
	})

	t.Run("server-side connection exceptions are connection errors", func(t *testing.T) {
		err := WrapError("upsert", &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"})

		var connErr *custom_errors.ConnectionError
		assert.ErrorAs(t, err, &connErr)
	})

	t.Run("statement failures keep the driver message", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23514", Message: "new row violates check constraint"}

		err := WrapError("insert commit activity", pgErr)

		var persistErr *custom_errors.PersistenceError
		assert.ErrorAs(t, err, &persistErr)
		assert.Contains(t, err.Error(), "violates check constraint")
	})

	t.Run("no rows is not a connection error", func(t *testing.T) {
		assert.True(t, IsNotFound(fmt.Errorf("get: %w", pgx.ErrNoRows)))
		assert.False(t, IsConnectionError(pgx.ErrNoRows))
	})
}

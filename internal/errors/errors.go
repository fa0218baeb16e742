// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested repository is not tracked.
var ErrNotFound = errors.New("not found")

// FetchError is returned when an upstream GitHub request does not answer with 200.
// StatusCode is zero when no response was received at all.
type FetchError struct {
	Op         string
	Owner      string
	Repo       string
	Page       int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d%s: %v", e.Op, e.StatusCode, location(e.Owner, e.Repo, e.Page), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is returned when an upstream response body is not valid JSON.
type ParseError struct {
	Op    string
	Owner string
	Repo  string
	Page  int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON response%s: %v", e.Op, location(e.Owner, e.Repo, e.Page), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError is returned when an upstream response parses but has the wrong shape,
// such as an unexpected number of search results or a missing required field.
type SchemaError struct {
	Op     string
	Owner  string
	Repo   string
	Page   int
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: unexpected response%s: %s", e.Op, location(e.Owner, e.Repo, e.Page), e.Reason)
}

// ValidationError is returned when client-supplied input is rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConnectionError is returned when the database cannot be reached.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: cannot connect to database: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// PersistenceError wraps any other database failure with the driver message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func location(owner, repo string, page int) string {
	if owner == "" && repo == "" {
		return ""
	}
	if page == 0 {
		return fmt.Sprintf(" (owner=%s repo=%s)", owner, repo)
	}
	return fmt.Sprintf(" (owner=%s repo=%s page=%d)", owner, repo, page)
}

package storage

import (
	"context"
	"errors"

	"github.com/mcoot/onboarding/internal/model"
)

// TableUsers is the table new accounts are inserted into
const TableUsers = "users"

// Store is the remote data store consumed by the registration flow.
// It only needs to accept inserts; uniqueness and other constraints are
// enforced by the backend and reported back as errors.
type Store interface {
	Insert(ctx context.Context, table string, record *model.RegistrationRecord) error
}

// Closer is implemented by stores holding connections
type Closer interface {
	Close() error
}

// Error codes reported by the backends
const (
	CodeUniqueViolation = "23505"
	CodeUnknownTable    = "42P01"
)

// ErrUnknownTable is returned when inserting into a table the store does not manage
var ErrUnknownTable = errors.New("unknown table")

// RemoteError is a failure reported by the remote store.
// Message is shown to the user verbatim when present.
type RemoteError struct {
	Code    string
	Message string
	Details string
	Err     error
}

// Error implements error interface
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "remote store error"
}

// Unwrap returns the underlying error
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewDuplicateEmailError reports a unique constraint violation on the email column
func NewDuplicateEmailError(email string) *RemoteError {
	return &RemoteError{
		Code:    CodeUniqueViolation,
		Message: `duplicate key value violates unique constraint "users_email_key"`,
		Details: "Key (email)=(" + email + ") already exists.",
		Err:     model.ErrDuplicateUser,
	}
}

// NewUnknownTableError reports an insert into an unmanaged table
func NewUnknownTableError(table string) *RemoteError {
	return &RemoteError{
		Code:    CodeUnknownTable,
		Message: `relation "` + table + `" does not exist`,
		Err:     ErrUnknownTable,
	}
}

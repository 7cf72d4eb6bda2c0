package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// mapError converts a pgx error into a RemoteError, keeping the server's
// message so it can be shown to the user.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		remote := &storage.RemoteError{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Err:     err,
		}
		if pgErr.Code == storage.CodeUniqueViolation {
			remote.Err = errors.Join(model.ErrDuplicateUser, err)
		}
		return remote
	}

	return &storage.RemoteError{Message: err.Error(), Err: err}
}

package sqlengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/AntonStoeckl/library-circulation-go/persistence"
)

const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

// isTransient reports whether a database error may go away on its own.
func isTransient(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff { // extended codes carry the primary code in the low byte
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}

		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCodeSerializationFailure || pgErr.Code == pgCodeDeadlockDetected
	}

	return pgconn.SafeToRetry(err)
}

// classify wraps err into persistence.ErrTransientFailure when it is worth a retry.
func classify(err error) error {
	if isTransient(err) {
		return errors.Join(persistence.ErrTransientFailure, err)
	}

	return err
}

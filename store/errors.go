package store

import (
	"strings"

	"github.com/teranos/langkit/errors"
)

// ErrDatabaseClosed is returned when a snapshot operation runs after the
// database was closed.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the connection is closed,
// either ErrDatabaseClosed or the raw database/sql message, which the
// driver returns unwrapped.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}

// classify maps driver errors onto package sentinels.
func classify(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if IsDatabaseClosed(err) && !errors.Is(err, ErrDatabaseClosed) {
		err = errors.CombineErrors(ErrDatabaseClosed, err)
	}
	return errors.Wrapf(err, format, args...)
}

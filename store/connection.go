// Package store persists n-gram count snapshots in SQLite so a counting
// run can be queried or replayed into a fresh counter later.
package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/sym"
)

// SQLiteBusyTimeoutMS is how long a writer waits on a locked database.
const SQLiteBusyTimeoutMS = 5000

var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode = WAL", "enable WAL mode"},
	{"PRAGMA foreign_keys = ON", "enable foreign keys"},
	{"PRAGMA busy_timeout = 5000", "set busy timeout"},
}

// Open opens the SQLite database at path with WAL, foreign keys and a busy
// timeout. A nil logger operates silently.
func Open(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	log = logger.OrNop(log)
	log.Debugw("Opening database", logger.FieldPath, path, logger.FieldSymbol, sym.DB)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", path)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to %s on %s", p.what, path)
		}
	}

	log.Infow("Database opened",
		logger.FieldPath, path,
		logger.FieldSymbol, sym.DB,
		"wal_mode", true,
		"foreign_keys", true,
	)
	return db, nil
}

// OpenWithMigrations opens path and brings its schema up to date.
func OpenWithMigrations(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	db, err := Open(path, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, log); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to migrate %s", path)
	}
	return db, nil
}

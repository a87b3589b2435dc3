package store

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/sym"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationDir = "sqlite/migrations"

// Migrate applies pending migrations in file-name order. Each one runs in
// its own transaction and is recorded in schema_migrations, which
// migration 000 creates.
func Migrate(db *sql.DB, log *zap.SugaredLogger) error {
	log = logger.OrNop(log)

	files, err := migrationFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		version := strings.SplitN(filename, "_", 2)[0]

		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&exists)
		if err != nil {
			if IsDatabaseClosed(err) {
				return classify(err, "check %s", filename)
			}
			if version != "000" {
				return errors.Newf("schema_migrations table missing, but migration is not 000: %s", filename)
			}
		} else if exists {
			log.Debugw("Skipping migration (already applied)", "migration", filename, "version", version)
			continue
		}

		body, err := migrations.ReadFile(path.Join(migrationDir, filename))
		if err != nil {
			return errors.Wrapf(err, "read %s", filename)
		}

		log.Infow("Applying migration", "migration", filename, "version", version)

		tx, err := db.Begin()
		if err != nil {
			return classify(err, "begin tx for %s", filename)
		}
		if _, err := tx.Exec(string(body)); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "execute %s", filename)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "record %s", filename)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit %s", filename)
		}
		applied++
	}

	log.Infow("Migrations complete",
		logger.FieldSymbol, sym.DB,
		"total_migrations", len(files),
		"applied", applied,
	)
	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir(migrationDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/ngram"
	"github.com/teranos/langkit/sym"
)

// tokenSep joins stored n-gram tokens.
const tokenSep = "\x1f"

// Query constants
const (
	RunInsertQuery = `
		INSERT INTO runs (id, corpus, backend, ngram_order, sentences, entries, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	RunEntriesUpdateQuery = `UPDATE runs SET entries = ? WHERE id = ?`

	CountInsertQuery = `
		INSERT INTO ngram_counts (run_id, ngram, n, count)
		VALUES (?, ?, ?, ?)`

	RunSelectQuery = `
		SELECT id, corpus, backend, ngram_order, sentences, entries, created_at
		FROM runs`

	CountLookupQuery = `SELECT count FROM ngram_counts WHERE run_id = ? AND ngram = ?`

	CountsByOrderQuery = `SELECT ngram, count FROM ngram_counts WHERE run_id = ? AND n = ?`
)

// Run describes one saved counting run.
type Run struct {
	ID        string    `json:"id"`
	Corpus    string    `json:"corpus"`
	Backend   string    `json:"backend"`
	Order     int       `json:"order"`
	Sentences int       `json:"sentences"`
	Entries   int       `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshots stores and replays counter contents.
type Snapshots struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewSnapshots wraps a migrated database. A nil logger operates silently.
func NewSnapshots(db *sql.DB, log *zap.SugaredLogger) *Snapshots {
	return &Snapshots{
		db:     db,
		logger: logger.AddSymbol(log, sym.DB),
		now:    time.Now,
	}
}

// Save writes every entry of source under a new run and returns the run
// with its ID, creation time and entry count filled in.
func (s *Snapshots) Save(ctx context.Context, run Run, source ngram.Enumerable) (Run, error) {
	if run.Order < 1 {
		return Run{}, errors.NewInvalidRequestError("run order must be at least 1, got %d", run.Order)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.CreatedAt = s.now().UTC()
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, classify(err, "begin snapshot %s", run.ID)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, RunInsertQuery,
		run.ID, run.Corpus, run.Backend, run.Order, run.Sentences, 0, run.CreatedAt,
	); err != nil {
		return Run{}, classify(err, "insert run %s", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx, CountInsertQuery)
	if err != nil {
		return Run{}, classify(err, "prepare count insert")
	}
	defer stmt.Close()

	entries := 0
	source.Range(func(g []string, count int) bool {
		if _, err = stmt.ExecContext(ctx, run.ID, strings.Join(g, tokenSep), len(g), count); err != nil {
			return false
		}
		entries++
		return true
	})
	if err != nil {
		return Run{}, classify(err, "insert counts for run %s", run.ID)
	}

	if _, err := tx.ExecContext(ctx, RunEntriesUpdateQuery, entries, run.ID); err != nil {
		return Run{}, classify(err, "update run %s", run.ID)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, classify(err, "commit run %s", run.ID)
	}
	run.Entries = entries

	s.logger.Infow("Snapshot saved",
		logger.FieldRunID, run.ID,
		logger.FieldCount, entries,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return run, nil
}

// Runs lists saved runs, newest first.
func (s *Snapshots) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, RunSelectQuery+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, classify(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Corpus, &r.Backend, &r.Order, &r.Sentences, &r.Entries, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, r)
	}
	return runs, classify(rows.Err(), "list runs")
}

// Get returns one run, or an ErrNotFound error.
func (s *Snapshots) Get(ctx context.Context, id string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, RunSelectQuery+" WHERE id = ?", id).
		Scan(&r.ID, &r.Corpus, &r.Backend, &r.Order, &r.Sentences, &r.Entries, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errors.WithHint(
			errors.NewNotFoundError("run %s", id),
			"list saved runs with: langkit db runs",
		)
	}
	if err != nil {
		return Run{}, classify(err, "get run %s", id)
	}
	return r, nil
}

// Lookup returns the stored count for tokens in a run. An n-gram the run
// never saw counts 0.
func (s *Snapshots) Lookup(ctx context.Context, runID string, tokens []string) (int, error) {
	if _, err := s.Get(ctx, runID); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRowContext(ctx, CountLookupQuery, runID, strings.Join(tokens, tokenSep)).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, classify(err, "lookup in run %s", runID)
	}
	return count, nil
}

// Replay inserts every stored n-gram of length order into c, count times
// each, and returns the number of insertions. Shorter prefixes a trie
// stored alongside are skipped; the counter rebuilds them itself.
func (s *Snapshots) Replay(ctx context.Context, runID string, order int, c ngram.Counter) (int, error) {
	if _, err := s.Get(ctx, runID); err != nil {
		return 0, err
	}
	rows, err := s.db.QueryContext(ctx, CountsByOrderQuery, runID, order)
	if err != nil {
		return 0, classify(err, "replay run %s", runID)
	}
	defer rows.Close()

	inserted := 0
	for rows.Next() {
		var joined string
		var count int
		if err := rows.Scan(&joined, &count); err != nil {
			return inserted, errors.Wrap(err, "scan count")
		}
		g := strings.Split(joined, tokenSep)
		for range count {
			c.Insert(g)
		}
		inserted += count
	}
	if err := rows.Err(); err != nil {
		return inserted, classify(err, "replay run %s", runID)
	}

	s.logger.Debugw("Snapshot replayed",
		logger.FieldRunID, runID,
		logger.FieldOrder, order,
		logger.FieldCount, inserted,
	)
	return inserted, nil
}

package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/ngram"
	"github.com/teranos/langkit/sym"
)

// DbCmd represents the db (snapshot store) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: sym.Short("db", "Manage the snapshot store"),
	Long: sym.DB + ` db - Manage the snapshot store

Examples:
  langkit db runs                       # List saved counting runs
  langkit db replay 4f0c...             # Rebuild a counter from a run
  langkit db replay 4f0c... --backend hash --lookup "the cat"`,
}

var dbRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved counting runs, newest first",
	RunE:  runDbRuns,
}

var dbReplayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Rebuild a counter from a saved run",
	Long: `Rebuild a counter from a saved run.

The stored n-grams of the run's order are inserted again into a fresh
counter, which may use a different backend than the one that produced
the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runDbReplay,
}

func init() {
	DbCmd.PersistentFlags().String("db", "", "Snapshot database path (default from config)")

	dbReplayCmd.Flags().String("backend", "", "Counter backend for the rebuilt counter (default: the run's backend)")
	dbReplayCmd.Flags().StringArrayP("lookup", "l", nil, "Sequence to look up in the rebuilt counter (repeatable)")

	DbCmd.AddCommand(dbRunsCmd)
	DbCmd.AddCommand(dbReplayCmd)
}

func runDbRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snapshots, closeDB, err := openSnapshots(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := snapshots.Runs(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs in %s\n", cfg.GetStorePath())
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			r.Backend,
			strconv.Itoa(r.Order),
			strconv.Itoa(r.Sentences),
			strconv.Itoa(r.Entries),
			r.Corpus,
		}
	}
	return display.Table(out, []string{"id", "created", "backend", "order", "sentences", "entries", "corpus"}, rows)
}

func runDbReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snapshots, closeDB, err := openSnapshots(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := cmd.Context()
	run, err := snapshots.Get(ctx, args[0])
	if err != nil {
		return err
	}

	name := run.Backend
	if cmd.Flags().Changed("backend") {
		name, _ = cmd.Flags().GetString("backend")
	}
	backend, err := ngram.ParseBackend(name)
	if err != nil {
		return err
	}
	c, err := ngram.New(backend, cfg.Counter.Capacity)
	if err != nil {
		return err
	}

	inserted, err := snapshots.Replay(ctx, run.ID, run.Order, c)
	if err != nil {
		return errors.Wrapf(err, "failed to replay run %s", run.ID)
	}
	logger.For("db", sym.DB).Infow("Run replayed",
		logger.FieldRunID, run.ID,
		logger.FieldBackend, backend,
		logger.FieldNgrams, inserted,
	)

	tokenize := cfg.Tokenizer()
	lookups, _ := cmd.Flags().GetStringArray("lookup")
	results := make([]lookupResult, 0, len(lookups))
	for _, q := range lookups {
		toks := tokenize(q)
		results = append(results, lookupResult{Ngram: strings.Join(toks, " "), Count: c.Lookup(toks)})
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, map[string]interface{}{
			"run_id":   run.ID,
			"backend":  backend,
			"ngrams":   inserted,
			"distinct": c.DistinctEntries(),
			"lookups":  results,
		})
	}
	pairs := [][2]string{
		{"run", run.ID},
		{"backend", string(backend)},
		{"ngrams", strconv.Itoa(inserted)},
		{"distinct", strconv.Itoa(c.DistinctEntries())},
	}
	for _, l := range results {
		pairs = append(pairs, [2]string{l.Ngram, strconv.Itoa(l.Count)})
	}
	return display.KeyValues(out, pairs)
}

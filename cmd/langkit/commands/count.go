package commands

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/ngram"
	"github.com/teranos/langkit/store"
	"github.com/teranos/langkit/sym"
)

// CountCmd counts the n-grams of a corpus
var CountCmd = &cobra.Command{
	Use:   "count <corpus>",
	Short: sym.Short("count", "Count n-grams in a corpus"),
	Long: sym.Count + ` count - Count n-grams in a corpus

Every sentence is padded with <s> and </s> markers and each window of
the configured order is inserted into the counter. Use --lookup to print
the count of specific sequences and --save to keep the counts in the
snapshot store for later lookups.

Examples:
  langkit count corpus.txt
  langkit count corpus.txt --order 2 --backend hash --lookup "<s> the"
  langkit count corpus.txt --save -v`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

func init() {
	addCounterFlags(CountCmd)
	addStoreFlag(CountCmd)
	CountCmd.Flags().StringArrayP("lookup", "l", nil, "Sequence to look up after counting (repeatable)")
	CountCmd.Flags().Bool("save", false, "Save the counts as a snapshot")
}

// countResult is the JSON shape of a count run.
type countResult struct {
	Corpus     string         `json:"corpus"`
	Backend    string         `json:"backend"`
	Order      int            `json:"order"`
	Sentences  int            `json:"sentences"`
	Ngrams     int            `json:"ngrams"`
	Distinct   int            `json:"distinct"`
	Lookups    []lookupResult `json:"lookups,omitempty"`
	RunID      string         `json:"run_id,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

type lookupResult struct {
	Ngram string `json:"ngram"`
	Count int    `json:"count"`
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	newCounter, err := cfg.CounterFactory()
	if err != nil {
		return err
	}

	r, err := openCorpus(cfg, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	v := verbosity(cmd)
	jsonOut := display.ShouldOutputJSON(cmd)
	log := logger.For("count", sym.Count)

	total := 0
	showProgress := logger.ShouldOutput(v, logger.OutputProgress) && !jsonOut && display.IsTerminal(cmd.ErrOrStderr())
	if showProgress {
		if total, err = r.Count(); err != nil {
			return errors.Wrapf(err, "failed to scan %s", args[0])
		}
	}
	progress := display.NewProgress(cmd.ErrOrStderr(), total, showProgress)

	start := time.Now()
	c := newCounter()
	res := countResult{
		Corpus:  args[0],
		Backend: cfg.Counter.Backend,
		Order:   cfg.Counter.Order,
	}
	for s := range r.All() {
		res.Ngrams += ngram.Feed(c, s, cfg.Counter.Order)
		res.Sentences++
		progress.Increment()
	}
	progress.Finish()
	if err := r.Err(); err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}
	res.Distinct = c.DistinctEntries()
	res.DurationMS = time.Since(start).Milliseconds()

	log.Infow("Corpus counted",
		logger.FieldPath, args[0],
		logger.FieldBackend, res.Backend,
		logger.FieldOrder, res.Order,
		logger.FieldSentences, res.Sentences,
		logger.FieldNgrams, res.Ngrams,
		logger.FieldDistinct, res.Distinct,
		logger.FieldDurationMS, res.DurationMS,
	)

	tokenize := cfg.Tokenizer()
	lookups, _ := cmd.Flags().GetStringArray("lookup")
	for _, q := range lookups {
		toks := tokenize(q)
		res.Lookups = append(res.Lookups, lookupResult{
			Ngram: strings.Join(toks, " "),
			Count: c.Lookup(toks),
		})
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		source, ok := c.(ngram.Enumerable)
		if !ok {
			return errors.Newf("backend %s cannot enumerate its entries", cfg.Counter.Backend)
		}
		snapshots, closeDB, err := openSnapshots(cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		corpusPath, err := filepath.Abs(args[0])
		if err != nil {
			corpusPath = args[0]
		}
		run, err := snapshots.Save(cmd.Context(), store.Run{
			Corpus:    corpusPath,
			Backend:   res.Backend,
			Order:     res.Order,
			Sentences: res.Sentences,
		}, source)
		if err != nil {
			return err
		}
		res.RunID = run.ID
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return display.WriteJSON(out, res)
	}

	pairs := [][2]string{
		{"corpus", res.Corpus},
		{"backend", res.Backend},
		{"order", strconv.Itoa(res.Order)},
		{"sentences", strconv.Itoa(res.Sentences)},
		{"ngrams", strconv.Itoa(res.Ngrams)},
	}
	if logger.ShouldOutput(v, logger.OutputStats) {
		pairs = append(pairs, [2]string{"distinct", strconv.Itoa(res.Distinct)})
	}
	if logger.ShouldOutput(v, logger.OutputTiming) {
		pairs = append(pairs, [2]string{"time", (time.Duration(res.DurationMS) * time.Millisecond).String()})
	}
	if res.RunID != "" {
		pairs = append(pairs, [2]string{"run", res.RunID})
	}
	for _, l := range res.Lookups {
		pairs = append(pairs, [2]string{l.Ngram, strconv.Itoa(l.Count)})
	}
	return display.KeyValues(out, pairs)
}

package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/align"
	"github.com/teranos/langkit/corpus"
	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/sym"
)

// AlignCmd builds a co-occurrence translation table from bitext
var AlignCmd = &cobra.Command{
	Use:   "align <source> <target>",
	Short: sym.Short("align", "Build a translation table from bitext"),
	Long: sym.Align + ` align - Build a translation table from bitext

Line i of the source file is paired with line i of the target file; the
longer file's extra lines are ignored. For every source word the target
word with the highest t(target | source) is printed.

Examples:
  langkit align corpus.de corpus.en
  langkit align corpus.de corpus.en --min 0.3 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runAlign,
}

func init() {
	AlignCmd.Flags().String("backend", "", "Counter backend: trie or hash (default from config)")
	AlignCmd.Flags().String("tokenizer", "", "Tokenizer: fields or words (default from config)")
	AlignCmd.Flags().Float64("min", 0, "Hide entries below this probability")
}

func runAlign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	newCounter, err := cfg.CounterFactory()
	if err != nil {
		return err
	}

	p, err := corpus.OpenParallel(args[0], args[1], corpus.Options[string]{
		Separator: cfg.Corpus.Separator,
		Tokenize:  cfg.Tokenizer(),
	})
	if err != nil {
		return err
	}
	defer p.Close()

	table := align.NewCooccurrence(newCounter)
	pairs := 0
	for pair := range p.All() {
		table.Observe(pair)
		pairs++
	}
	if err := p.Err(); err != nil {
		return errors.Wrap(err, "failed to read bitext")
	}
	logger.For("align", sym.Align).Infow("Bitext read",
		logger.FieldSentences, pairs,
		logger.FieldBackend, cfg.Counter.Backend,
	)

	minP, _ := cmd.Flags().GetFloat64("min")
	entries := make([]align.Entry, 0)
	for _, e := range table.Best() {
		if e.Probability >= minP {
			entries = append(entries, e)
		}
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, entries)
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Source, e.Target, strconv.FormatFloat(e.Probability, 'f', 4, 64)}
	}
	return display.Table(out, []string{"source", "target", "t(target|source)"}, rows)
}

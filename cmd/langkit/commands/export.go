package commands

import (
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/am"
	"github.com/teranos/langkit/arpa"
	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/internal/util"
	"github.com/teranos/langkit/lm"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/sym"
)

// ExportCmd trains a model and writes it in ARPA format
var ExportCmd = &cobra.Command{
	Use:   "export <corpus>",
	Short: sym.Short("export", "Train a language model and write it as ARPA"),
	Long: sym.Export + ` export - Train a language model and write it as ARPA

The model order and smoothing come from configuration unless overridden.
With --perplexity the trained model is evaluated on a held-out corpus.

Examples:
  langkit export corpus.txt -o model.arpa
  langkit export corpus.txt --order 2 --smoothing backoff > model.arpa
  langkit export train.txt -o model.arpa --perplexity test.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addCounterFlags(ExportCmd)
	ExportCmd.Flags().StringP("output", "o", "-", "Output file (- for stdout)")
	ExportCmd.Flags().String("smoothing", "", "Smoothing: mle, laplace, backoff, interpolated (default from config)")
	ExportCmd.Flags().String("perplexity", "", "Held-out corpus to evaluate the model on")
}

type exportResult struct {
	Output     string   `json:"output"`
	Order      int      `json:"order"`
	Smoothing  string   `json:"smoothing"`
	Sentences  int      `json:"sentences"`
	Vocabulary int      `json:"vocabulary"`
	Perplexity *float64 `json:"perplexity,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := trainModel(cfg, args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	summary := cmd.OutOrStdout()
	if output == "-" {
		if err := arpa.Write(cmd.OutOrStdout(), m); err != nil {
			return err
		}
		summary = cmd.ErrOrStderr()
	} else if err := arpa.WriteFile(output, m); err != nil {
		return err
	}

	res := exportResult{
		Output:     output,
		Order:      m.Order(),
		Smoothing:  m.Smoother().Name(),
		Sentences:  m.Sentences(),
		Vocabulary: m.VocabularySize(),
	}

	if heldOut, _ := cmd.Flags().GetString("perplexity"); heldOut != "" {
		r, err := openCorpus(cfg, heldOut)
		if err != nil {
			return err
		}
		defer r.Close()
		sentences := slices.Collect(r.All())
		if err := r.Err(); err != nil {
			return errors.Wrapf(err, "failed to read %s", heldOut)
		}
		pp, err := m.Perplexity(sentences)
		if err != nil {
			return err
		}
		res.Perplexity = util.Ptr(pp)
	}

	if output == "-" && res.Perplexity == nil && !logger.ShouldOutput(verbosity(cmd), logger.OutputStats) {
		return nil
	}
	return writeExportSummary(cmd, summary, res)
}

func writeExportSummary(cmd *cobra.Command, w io.Writer, res exportResult) error {
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(w, res)
	}
	pairs := [][2]string{
		{"output", res.Output},
		{"order", strconv.Itoa(res.Order)},
		{"smoothing", res.Smoothing},
		{"sentences", strconv.Itoa(res.Sentences)},
		{"vocabulary", strconv.Itoa(res.Vocabulary)},
	}
	if res.Perplexity != nil {
		pairs = append(pairs, [2]string{"perplexity", strconv.FormatFloat(*res.Perplexity, 'f', 4, 64)})
	}
	return display.KeyValues(w, pairs)
}

// trainModel trains an order-N model on the corpus at path using the
// configured backend, tokenizer and smoother.
func trainModel(cfg *am.Config, path string) (*lm.NgramModel, error) {
	newCounter, err := cfg.CounterFactory()
	if err != nil {
		return nil, err
	}
	smoother, err := cfg.Smoother()
	if err != nil {
		return nil, err
	}
	m, err := lm.New(cfg.Counter.Order, newCounter,
		lm.WithSmoother(smoother),
		lm.WithLogger(logger.For("model", sym.Model)),
	)
	if err != nil {
		return nil, err
	}

	r, err := openCorpus(cfg, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	m.TrainAll(r.All())
	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return m, nil
}

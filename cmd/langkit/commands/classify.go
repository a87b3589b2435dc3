package commands

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/am"
	"github.com/teranos/langkit/classify"
	"github.com/teranos/langkit/corpus"
	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/internal/util"
	"github.com/teranos/langkit/lm"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/sym"
)

// ClassifyCmd labels sentences with the best-scoring class model
var ClassifyCmd = &cobra.Command{
	Use:   "classify [input]",
	Short: sym.Short("classify", "Classify sentences against labelled corpora"),
	Long: sym.Classify + ` classify - Classify sentences against labelled corpora

One language model is trained per class listed in the manifest. Each
input sentence gets the label whose model assigns it the highest
probability; ties go to the class listed first. Input is read from the
given file, or from stdin when omitted or "-".

Manifest format (TOML):
  [[class]]
  label = "en"
  path  = "english.txt"

  [[class]]
  label = "de"
  path  = "german.txt"

Examples:
  langkit classify --manifest classes.toml input.txt
  echo "the house" | langkit classify --manifest classes.toml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	addCounterFlags(ClassifyCmd)
	ClassifyCmd.Flags().StringP("manifest", "m", "", "TOML manifest of labelled corpora")
	ClassifyCmd.Flags().String("smoothing", "", "Smoothing: mle, laplace, backoff, interpolated (default from config)")
	_ = ClassifyCmd.MarkFlagRequired("manifest")
}

type classification struct {
	Sentence string       `json:"sentence"`
	Label    string       `json:"label"`
	Scores   []labelScore `json:"scores,omitempty"`
}

type labelScore struct {
	Label     string   `json:"label"`
	LogProb   *float64 `json:"log_prob"` // null when the model gives probability 0
	Posterior float64  `json:"posterior"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manifestPath, _ := cmd.Flags().GetString("manifest")
	classes, err := corpus.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	nb, err := buildClassifier(cfg, classes)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", args[0])
		}
		defer f.Close()
		in = f
	}

	results, err := classifyAll(nb, cfg.Tokenizer(), in, cfg.Corpus.Separator)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, results)
	}

	header := []string{"sentence", "label"}
	detail := logger.ShouldOutput(verbosity(cmd), logger.OutputStats)
	if detail {
		for _, c := range classes {
			header = append(header, "P("+c.Label+")")
		}
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{r.Sentence, r.Label}
		if detail {
			for _, s := range r.Scores {
				row = append(row, strconv.FormatFloat(s.Posterior, 'f', 4, 64))
			}
		}
		rows = append(rows, row)
	}
	return display.Table(out, header, rows)
}

// buildClassifier trains one model per class, wrapping each in a score
// cache when model.cache_size is positive.
func buildClassifier(cfg *am.Config, classes []corpus.Class) (*classify.NaiveBayes[[]string, string], error) {
	log := logger.For("classify", sym.Classify)

	models := make([]classify.Labeled[string], 0, len(classes))
	for _, c := range classes {
		m, err := trainModel(cfg, c.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Label)
		}
		var model lm.LanguageModel = m
		if cfg.Model.CacheSize > 0 {
			if model, err = lm.NewCached(m, cfg.Model.CacheSize); err != nil {
				return nil, err
			}
		}
		log.Debugw("Class model trained",
			logger.FieldLabel, c.Label,
			logger.FieldPath, c.Path,
			logger.FieldSentences, m.Sentences(),
			logger.FieldVocab, m.VocabularySize(),
		)
		models = append(models, classify.Labeled[string]{Label: c.Label, Model: model})
	}
	log.Infow("Classifier ready", logger.FieldLabels, len(models))
	return classify.FromLanguageModels(models...), nil
}

// classifyAll labels every record of r. Empty records are skipped.
func classifyAll(nb *classify.NaiveBayes[[]string, string], tokenize func(string) []string, r io.Reader, sep string) ([]classification, error) {
	scanner := corpus.NewScanner(r, sep)

	var results []classification
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := tokenize(line)
		label, ok := nb.Classify(tokens)
		if !ok {
			return nil, errors.New("no classes to choose from")
		}

		logs := nb.Scores(tokens)
		posts := nb.Posteriors(tokens)
		scores := make([]labelScore, len(logs))
		for i := range logs {
			scores[i] = labelScore{
				Label:     logs[i].Label,
				LogProb:   finite(logs[i].Score),
				Posterior: posts[i].Score,
			}
		}
		results = append(results, classification{Sentence: line, Label: label, Scores: scores})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return results, nil
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return util.Ptr(f)
}

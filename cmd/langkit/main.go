package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/cmd/langkit/commands"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
)

var rootCmd = &cobra.Command{
	Use:   "langkit",
	Short: "langkit - n-gram counting, language models and classification",
	Long: `langkit - n-gram counting, language models and classification.

langkit counts token sequences with a persistent trie or a hash table,
trains smoothed n-gram language models, exports them in ARPA format and
classifies sentences against labelled corpora.

Available commands:
  am       - Show and validate configuration
  count    - Count n-grams in a corpus
  lookup   - Query a saved count snapshot
  export   - Train a language model and write it as ARPA
  classify - Classify sentences against labelled corpora
  align    - Build a translation table from bitext
  db       - Manage the snapshot store

Examples:
  langkit count corpus.txt --order 3 --lookup "the cat"
  langkit count corpus.txt --save
  langkit export corpus.txt -o model.arpa --smoothing backoff
  langkit classify --manifest classes.toml input.txt`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: commands.Setup,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	commands.Register(rootCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
		}
		logger.Cleanup()
		os.Exit(1)
	}
}

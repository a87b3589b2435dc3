// Package commands implements the langkit CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/langkit/am"
	"github.com/teranos/langkit/corpus"
	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/logger"
	"github.com/teranos/langkit/store"
)

// Register adds every command to root.
func Register(root *cobra.Command) {
	root.AddCommand(
		AmCmd,
		CountCmd,
		LookupCmd,
		ExportCmd,
		ClassifyCmd,
		AlignCmd,
		DbCmd,
		VersionCmd,
	)
}

// Setup initialises logging from the persistent flags and config. It is
// the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, _ []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(display.ShouldOutputJSON(cmd), verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if cfg, err := am.Load(); err == nil {
		logger.SetTheme(cfg.GetLogTheme())
	}
	return nil
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// loadConfig loads and validates the configuration, applying any counter
// flags the command defines and the user set.
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	loaded, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	cfg := *loaded

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Counter.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("order") {
		cfg.Counter.Order, _ = flags.GetInt("order")
	}
	if flags.Changed("smoothing") {
		cfg.Model.Smoothing, _ = flags.GetString("smoothing")
	}
	if flags.Changed("tokenizer") {
		cfg.Corpus.Tokenizer, _ = flags.GetString("tokenizer")
	}
	if flags.Changed("db") {
		cfg.Store.Path, _ = flags.GetString("db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"check settings with: langkit am show",
		)
	}
	return &cfg, nil
}

func openCorpus(cfg *am.Config, path string) (*corpus.Reader[string], error) {
	return corpus.OpenTokens(path, corpus.Options[string]{
		Separator: cfg.Corpus.Separator,
		Tokenize:  cfg.Tokenizer(),
	})
}

// openSnapshots opens the configured store. The returned close func must
// be called when done.
func openSnapshots(cfg *am.Config) (*store.Snapshots, func(), error) {
	log := logger.ComponentLogger("store")
	db, err := store.OpenWithMigrations(cfg.GetStorePath(), log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open snapshot store")
	}
	return store.NewSnapshots(db, log), func() { db.Close() }, nil
}

func addCounterFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "Counter backend: trie or hash (default from config)")
	cmd.Flags().IntP("order", "n", 0, "N-gram order (default from config)")
	cmd.Flags().String("tokenizer", "", "Tokenizer: fields or words (default from config)")
}

func addStoreFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "Snapshot database path (default from config)")
}

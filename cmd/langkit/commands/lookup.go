package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/sym"
)

// LookupCmd queries a saved snapshot
var LookupCmd = &cobra.Command{
	Use:   "lookup <run-id> <token>...",
	Short: sym.Short("lookup", "Query counts stored in a snapshot"),
	Long: sym.Lookup + ` lookup - Query counts stored in a snapshot

Tokens are given as separate arguments or as one quoted argument. A
sequence the run never saw counts 0.

Examples:
  langkit lookup 4f0c... the cat
  langkit lookup 4f0c... "<s> the"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLookup,
}

func init() {
	addStoreFlag(LookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snapshots, closeDB, err := openSnapshots(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	runID := args[0]
	tokens := strings.Fields(strings.Join(args[1:], " "))
	count, err := snapshots.Lookup(cmd.Context(), runID, tokens)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, map[string]interface{}{
			"run_id": runID,
			"ngram":  strings.Join(tokens, " "),
			"count":  count,
		})
	}
	fmt.Fprintln(out, count)
	return nil
}

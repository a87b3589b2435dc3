// Package sym defines the glyphs langkit prints in command banners and
// attaches to structured log lines (the "symbol" field).
package sym

// Command glyphs.
const (
	AM       = "≡" // am: configuration
	Count    = "⨳" // count: ingest a corpus into a counter
	Lookup   = "⋈" // lookup: query stored counts
	Classify = "⊨" // classify: score inputs against labelled models
	Export   = "⟶" // export: write a model out (ARPA)
	Align    = "⇄" // align: co-occurrence translation table
)

// System infrastructure symbols.
const (
	DB    = "⊔" // snapshot store
	Trie  = "⌬" // persistent trie snapshots
	Model = "▣" // language models
)

// entry binds a glyph to its CLI command and a short description.
type entry struct {
	glyph       string
	command     string
	description string
}

var registry = []entry{
	{AM, "am", "Configuration: settings and their sources"},
	{Count, "count", "Count n-grams in a corpus"},
	{Lookup, "lookup", "Query counts stored in a snapshot"},
	{Classify, "classify", "Classify sentences against labelled corpora"},
	{Export, "export", "Write a trained model in ARPA format"},
	{Align, "align", "Build a translation table from bitext"},
	{DB, "db", "Snapshot store"},
}

// SymbolToCommand maps glyph strings to their text command equivalents.
var SymbolToCommand = map[string]string{}

// CommandToSymbol maps text commands to their canonical glyph strings.
var CommandToSymbol = map[string]string{}

// CommandDescriptions provides one-line explanations used in help output.
var CommandDescriptions = map[string]string{}

func init() {
	for _, e := range registry {
		SymbolToCommand[e.glyph] = e.command
		CommandToSymbol[e.command] = e.glyph
		CommandDescriptions[e.command] = e.description
	}
}

// Short formats a cobra Short string prefixed with the command's glyph.
func Short(command, text string) string {
	if g, ok := CommandToSymbol[command]; ok {
		return g + " " + text
	}
	return text
}

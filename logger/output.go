package logger

// OutputCategory defines a category of CLI output that can be enabled or
// disabled independently of log severity.
type OutputCategory int

const (
	// Level 0 (default) - always shown
	OutputResults OutputCategory = iota // Counts, labels, lookups
	OutputErrors                        // Errors with hints

	// Level 1 (-v)
	OutputProgress // Progress bars while reading corpora
	OutputStats    // Per-order distinct counts, vocabulary size

	// Level 2 (-vv)
	OutputTiming // Wall time per phase
	OutputConfig // Effective configuration

	// Level 3 (-vvv)
	OutputSQLQueries // Snapshot store statements
	OutputDataDump   // Full score tables
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputProgress:   VerbosityInfo,
	OutputStats:      VerbosityInfo,
	OutputTiming:     VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputSQLQueries: VerbosityTrace,
	OutputDataDump:   VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

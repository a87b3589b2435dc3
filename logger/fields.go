package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging across langkit.
const (
	// Components
	FieldComponent = "component"
	FieldSymbol    = "symbol"

	// Counting
	FieldBackend   = "backend"
	FieldOrder     = "order"
	FieldNgrams    = "ngrams"
	FieldDistinct  = "distinct"
	FieldSentences = "sentences"
	FieldVocab     = "vocab"

	// Models and classification
	FieldSmoothing = "smoothing"
	FieldLabel     = "label"
	FieldLabels    = "labels"

	// Snapshots
	FieldRunID = "run_id"

	// Files and timing
	FieldPath       = "path"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldCount      = "count"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("store")
//	log.Infow("Snapshot saved", logger.FieldRunID, id)
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// OrNop returns l, or a no-op logger when l is nil. Library constructors
// accept an optional logger and normalise it with this.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

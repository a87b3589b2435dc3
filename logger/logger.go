// Package logger configures langkit's zap logging. Command results are
// written to stdout by the commands themselves; everything logged here
// goes to stderr.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvTheme overrides the configured console theme.
const EnvTheme = "LANGKIT_LOG_THEME"

// Logger is the process-wide logger. It is a no-op until Initialize runs,
// so packages may log unconditionally.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger on stderr. jsonOutput selects one
// JSON object per line; otherwise the minimal console encoder is used.
// verbosity is the -v flag count.
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeTo(os.Stderr, jsonOutput, verbosity)
}

// InitializeTo is Initialize writing to w.
func InitializeTo(w io.Writer, jsonOutput bool, verbosity int) error {
	if theme := os.Getenv(EnvTheme); theme != "" {
		SetTheme(theme)
	}

	var enc zapcore.Encoder = newMinimalEncoder()
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), VerbosityToLevel(verbosity))
	Logger = zap.New(core).Sugar()
	return nil
}

// Cleanup flushes buffered entries. Sync errors on terminals are ignored.
func Cleanup() {
	_ = Logger.Sync()
}

package logger

import "go.uber.org/zap/zapcore"

// Verbosity is the number of -v flags. It selects both the zap level and
// the output categories in output.go.
const (
	VerbosityUser  = 0 // results and errors
	VerbosityInfo  = 1 // -v
	VerbosityDebug = 2 // -vv
	VerbosityTrace = 3 // -vvv
)

var levels = [...]zapcore.Level{
	VerbosityUser:  zapcore.WarnLevel,
	VerbosityInfo:  zapcore.InfoLevel,
	VerbosityDebug: zapcore.DebugLevel,
}

// VerbosityToLevel maps a -v count to the minimum zap level logged.
// Counts past -vv stay at debug.
func VerbosityToLevel(verbosity int) zapcore.Level {
	return levels[min(max(verbosity, 0), len(levels)-1)]
}

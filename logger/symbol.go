package logger

import "go.uber.org/zap"

// For returns a component logger whose lines carry symbol in the
// structured "symbol" field, e.g. For("store", sym.DB).
func For(component, symbol string) *zap.SugaredLogger {
	return AddSymbol(ComponentLogger(component), symbol)
}

// AddSymbol tags an instance logger with a glyph. A nil logger yields a
// no-op logger.
func AddSymbol(l *zap.SugaredLogger, symbol string) *zap.SugaredLogger {
	return OrNop(l).With(FieldSymbol, symbol)
}

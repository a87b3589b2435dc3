package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the handful of colors the console encoder uses.
type palette struct {
	fg        string
	time      string
	component []string
	number    string
	symbol    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	number:    "\x1b[38;5;175m",
	symbol:    "\x1b[38;5;142m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	number:    "\x1b[38;5;108m",
	symbol:    "\x1b[38;5;108m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

// Theme names accepted by SetTheme.
const (
	ThemeGruvbox    = "gruvbox"
	ThemeEverforest = "everforest"
)

var currentTheme = ThemeEverforest

// SetTheme configures the color scheme for log output. Unknown names are ignored.
func SetTheme(theme string) {
	if theme == ThemeEverforest || theme == ThemeGruvbox {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == ThemeGruvbox {
		return gruvbox
	}
	return everforest
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	p := colors()
	return p.component[hash%len(p.component)]
}

// numericFields are rendered in the number color.
var numericFields = map[string]bool{
	FieldOrder:      true,
	FieldNgrams:     true,
	FieldDistinct:   true,
	FieldSentences:  true,
	FieldVocab:      true,
	FieldCount:      true,
	FieldDurationMS: true,
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  ⨳ count  Corpus counted  order=3 ngrams=5120"
//
// Context fields added through Logger.With are kept in the embedded map
// encoder and printed before the entry's own fields, sorted by key.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	p := colors()
	final := buffer.NewPool().Get()

	final.AppendString(p.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	if ent.Level != zapcore.InfoLevel && ent.Level != zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	symbol, rest := splitSymbol(fields)
	if symbol == "" {
		if s, ok := enc.Fields[FieldSymbol].(string); ok {
			symbol = s
		}
	}

	if symbol != "" || ent.LoggerName != "" {
		final.AppendString("  ")
		if symbol != "" {
			final.AppendString(p.symbol + symbol + colorReset)
			if ent.LoggerName != "" {
				final.AppendString(" ")
			}
		}
		if ent.LoggerName != "" {
			final.AppendString(colorComponent(ent.LoggerName))
			final.AppendString(abbreviateName(ent.LoggerName))
			final.AppendString(colorReset)
		}
	}

	final.AppendString("  ")
	final.AppendString(p.fg + ent.Message + colorReset)

	var parts []string
	if s := enc.renderContext(); s != "" {
		parts = append(parts, s)
	}
	if s := renderFields(rest); s != "" {
		parts = append(parts, s)
	}
	if len(parts) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(parts, " "))
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) renderContext() string {
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		if k != FieldSymbol {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, formatField(k, enc.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	p := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + p.warnBg + p.warn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + p.errBg + p.err + "ERROR" + colorReset
	default:
		return colorBold + p.errBg + p.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: store.migrate -> s.migrate
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

func splitSymbol(fields []zapcore.Field) (string, []zapcore.Field) {
	var symbol string
	rest := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == FieldSymbol && f.Type == zapcore.StringType {
			symbol = f.String
			continue
		}
		rest = append(rest, f)
	}
	return symbol, rest
}

// renderFields prints every field as key=value in the order given. Fields
// zap itself skips (for example zap.Error(nil)) produce nothing.
func renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}
	m := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(m)
	}

	var parts []string
	for _, f := range fields {
		v, ok := m.Fields[f.Key]
		if !ok {
			continue
		}
		parts = append(parts, formatField(f.Key, v))
	}
	return strings.Join(parts, " ")
}

func formatField(key string, v interface{}) string {
	val := fmt.Sprint(v)
	if numericFields[key] {
		val = colors().number + val + colorReset
	}
	return key + "=" + val
}

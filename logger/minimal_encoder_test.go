package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/teranos/langkit/sym"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// The console encoder must never silently drop a field.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "count",
		Message:    "Corpus counted",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("backend", "trie"), "backend=trie"},
		{zap.Int("order", 3), "order=3"},
		{zap.Int("ngrams", 5120), "ngrams=5120"},
		{zap.Bool("lowercase", true), "lowercase=true"},
		{zap.Float64("lambda", 0.8), "lambda=0.8"},
		{zap.Strings("labels", []string{"en", "de"}), "labels="},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Int64("int64_field", 9999999), "int64_field=9999999"},
		{zap.Error(nil), ""},
		{zap.String("error", "something went wrong"), "error=something went wrong"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	if err != nil {
		t.Fatalf("Failed to encode entry: %v", err)
	}

	cleanOutput := stripANSI(buf.String())
	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			t.Errorf("field was discarded from log output: %s\noutput: %s", tf.mustFind, cleanOutput)
		}
	}
	if !strings.Contains(cleanOutput, "Corpus counted") {
		t.Errorf("message missing from output: %s", cleanOutput)
	}
}

func TestMinimalEncoderSymbolPrefix(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "Snapshot saved"}

	buf, err := encoder.EncodeEntry(entry, []zapcore.Field{
		zap.String(FieldSymbol, sym.DB),
		zap.String(FieldRunID, "r1"),
	})
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	clean := stripANSI(buf.String())
	if !strings.Contains(clean, sym.DB+"  Snapshot saved") {
		t.Errorf("symbol should prefix the message, got: %s", clean)
	}
	if strings.Contains(clean, "symbol=") {
		t.Errorf("symbol should not be repeated as a field, got: %s", clean)
	}
	if !strings.Contains(clean, "run_id=r1") {
		t.Errorf("run_id missing, got: %s", clean)
	}
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()
	for _, tc := range []struct {
		level zapcore.Level
		want  string
	}{
		{zapcore.WarnLevel, "WARN"},
		{zapcore.ErrorLevel, "ERROR"},
	} {
		buf, err := encoder.EncodeEntry(zapcore.Entry{Level: tc.level, Time: time.Now(), Message: "m"}, nil)
		if err != nil {
			t.Fatalf("Failed to encode: %v", err)
		}
		if !strings.Contains(stripANSI(buf.String()), tc.want) {
			t.Errorf("level %v: want %q in %q", tc.level, tc.want, buf.String())
		}
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := map[string]string{
		"store":         "store",
		"store.migrate": "s.migrate",
		"lm.cache.lru":  "l.cache.lru",
	}
	for in, want := range tests {
		if got := abbreviateName(in); got != want {
			t.Errorf("abbreviateName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMinimalEncoderKeepsContextFields(t *testing.T) {
	enc := newMinimalEncoder()
	zap.String(FieldSymbol, sym.Count).AddTo(enc)
	zap.Int(FieldOrder, 3).AddTo(enc)

	clone := enc.Clone()
	buf, err := clone.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "Sentence counted"},
		[]zapcore.Field{zap.Int(FieldNgrams, 7)})
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	clean := stripANSI(buf.String())
	for _, want := range []string{sym.Count, "order=3", "ngrams=7"} {
		if !strings.Contains(clean, want) {
			t.Errorf("want %q in %q", want, clean)
		}
	}
}

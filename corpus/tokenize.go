package corpus

import (
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
)

// Tokenizer names accepted by Tokenizer.
const (
	TokenizerFields = "fields"
	TokenizerWords  = "words"
)

// Fields splits on whitespace.
func Fields(s string) []string {
	return strings.Fields(s)
}

// Words splits on Unicode word boundaries (UAX #29). Whitespace runs are
// dropped; punctuation is kept as its own token.
func Words(s string) []string {
	seg := segment.NewWordSegmenter(strings.NewReader(s))
	var out []string
	for seg.Segment() {
		tok := string(seg.Bytes())
		if seg.Type() == segment.None && strings.TrimFunc(tok, unicode.IsSpace) == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Lower wraps tok so every token is lower-cased.
func Lower(tok func(string) []string) func(string) []string {
	return func(s string) []string {
		out := tok(s)
		for i, t := range out {
			out[i] = strings.ToLower(t)
		}
		return out
	}
}

// Tokenizer resolves a tokenizer by name. Unknown names return nil.
func Tokenizer(name string, lowercase bool) func(string) []string {
	var tok func(string) []string
	switch name {
	case "", TokenizerFields:
		tok = Fields
	case TokenizerWords:
		tok = Words
	default:
		return nil
	}
	if lowercase {
		return Lower(tok)
	}
	return tok
}

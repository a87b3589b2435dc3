package corpus

import (
	"iter"

	"github.com/teranos/langkit/errors"
)

// Options configures a Reader.
type Options[T any] struct {
	// Separator ends one sentence. Empty means DefaultSeparator.
	Separator string
	// Tokenize turns a sentence into items.
	Tokenize func(string) []T
}

// Reader yields tokenized sentences.
type Reader[T any] struct {
	lines    *LineReader
	tokenize func(string) []T
}

// Open opens a corpus whose sentences are tokenized by opts.Tokenize.
func Open[T any](path string, opts Options[T]) (*Reader[T], error) {
	if opts.Tokenize == nil {
		return nil, errors.NewInvalidRequestError("corpus %s: no tokenizer given", path)
	}
	lines, err := OpenLines(path, opts.Separator)
	if err != nil {
		return nil, err
	}
	return &Reader[T]{lines: lines, tokenize: opts.Tokenize}, nil
}

// OpenTokens opens a corpus of string tokens. A nil opts.Tokenize means
// Fields.
func OpenTokens(path string, opts Options[string]) (*Reader[string], error) {
	if opts.Tokenize == nil {
		opts.Tokenize = Fields
	}
	return Open(path, opts)
}

// Next returns the next sentence.
func (r *Reader[T]) Next() ([]T, bool) {
	line, ok := r.lines.Next()
	if !ok {
		return nil, false
	}
	return r.tokenize(line), true
}

// Err returns the first read error, if any.
func (r *Reader[T]) Err() error {
	return r.lines.Err()
}

// Rewind returns to the first sentence.
func (r *Reader[T]) Rewind() error {
	return r.lines.Rewind()
}

// All rewinds and yields every sentence. A failed rewind yields nothing
// and is reported by Err.
func (r *Reader[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if err := r.Rewind(); err != nil {
			r.lines.err = err
			return
		}
		for {
			s, ok := r.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Count rewinds, counts the sentences and rewinds again.
func (r *Reader[T]) Count() (int, error) {
	if err := r.Rewind(); err != nil {
		return 0, err
	}
	n := 0
	for {
		if _, ok := r.lines.Next(); !ok {
			break
		}
		n++
	}
	if err := r.Err(); err != nil {
		return n, err
	}
	return n, r.Rewind()
}

// Path returns the file being read.
func (r *Reader[T]) Path() string {
	return r.lines.Path()
}

// Close releases the file.
func (r *Reader[T]) Close() error {
	return r.lines.Close()
}

package corpus

import (
	"iter"

	"github.com/teranos/langkit/align"
	"github.com/teranos/langkit/errors"
)

// ParallelReader reads a source and a target corpus in lock-step. It stops
// at the end of the shorter one.
type ParallelReader struct {
	source, target *Reader[string]
}

// OpenParallel opens both sides of a bitext with the same options.
func OpenParallel(sourcePath, targetPath string, opts Options[string]) (*ParallelReader, error) {
	src, err := OpenTokens(sourcePath, opts)
	if err != nil {
		return nil, err
	}
	tgt, err := OpenTokens(targetPath, opts)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &ParallelReader{source: src, target: tgt}, nil
}

// Next returns the next sentence pair.
func (p *ParallelReader) Next() (align.SentencePair, bool) {
	s, ok := p.source.Next()
	if !ok {
		return align.SentencePair{}, false
	}
	t, ok := p.target.Next()
	if !ok {
		return align.SentencePair{}, false
	}
	return align.SentencePair{Source: s, Target: t}, true
}

// Err returns the first read error of either side.
func (p *ParallelReader) Err() error {
	if err := p.source.Err(); err != nil {
		return err
	}
	return p.target.Err()
}

// Rewind returns both sides to their first sentence.
func (p *ParallelReader) Rewind() error {
	if err := p.source.Rewind(); err != nil {
		return err
	}
	return p.target.Rewind()
}

// All rewinds and yields every pair.
func (p *ParallelReader) All() iter.Seq[align.SentencePair] {
	return func(yield func(align.SentencePair) bool) {
		if err := p.Rewind(); err != nil {
			return
		}
		for {
			pair, ok := p.Next()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}

// Bitext reads every pair into memory.
func (p *ParallelReader) Bitext() ([]align.SentencePair, error) {
	var out []align.SentencePair
	for pair := range p.All() {
		out = append(out, pair)
	}
	return out, p.Err()
}

// Close releases both files.
func (p *ParallelReader) Close() error {
	return errors.CombineErrors(p.source.Close(), p.target.Close())
}

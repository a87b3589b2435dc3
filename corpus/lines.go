// Package corpus reads sentence-per-record text files. Readers are
// sequential, blocking and restartable: Rewind returns to the first record
// and yields the same records again.
package corpus

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/teranos/langkit/errors"
)

const (
	// DefaultSeparator ends one record.
	DefaultSeparator = "\n"

	chunkSize = 4096
	maxRecord = 64 << 20
)

// LineReader splits a file into records on an arbitrary separator. A
// trailing record without a separator is still returned.
type LineReader struct {
	path    string
	sep     []byte
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

// OpenLines opens path for reading records separated by sep. An empty sep
// means DefaultSeparator.
func OpenLines(path, sep string) (*LineReader, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to open corpus %s", path),
			"check that the corpus file exists and is readable",
		)
	}
	r := &LineReader{path: path, sep: []byte(sep), file: f}
	r.reset()
	return r, nil
}

func (r *LineReader) reset() {
	r.scanner = newScanner(r.file, r.sep)
	r.err = nil
}

// NewScanner returns a scanner over r that yields the records between
// occurrences of sep (DefaultSeparator when empty). It accepts the same
// record sizes as a LineReader.
func NewScanner(r io.Reader, sep string) *bufio.Scanner {
	if sep == "" {
		sep = DefaultSeparator
	}
	return newScanner(r, []byte(sep))
}

func newScanner(r io.Reader, sep []byte) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, chunkSize), maxRecord)
	s.Split(splitOn(sep))
	return s
}

// Next returns the next record without its separator.
func (r *LineReader) Next() (string, bool) {
	if r.scanner.Scan() {
		return r.scanner.Text(), true
	}
	if err := r.scanner.Err(); err != nil && r.err == nil {
		r.err = errors.Wrapf(err, "failed to read corpus %s", r.path)
	}
	return "", false
}

// Err returns the first read error, if any.
func (r *LineReader) Err() error {
	return r.err
}

// Rewind seeks back to the start of the file.
func (r *LineReader) Rewind() error {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "failed to rewind corpus %s", r.path)
	}
	r.reset()
	return nil
}

// Path returns the file being read.
func (r *LineReader) Path() string {
	return r.path
}

// Close releases the file.
func (r *LineReader) Close() error {
	return r.file.Close()
}

func splitOn(sep []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.Index(data, sep); i >= 0 {
			return i + len(sep), data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

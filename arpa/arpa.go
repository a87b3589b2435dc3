// Package arpa writes n-gram language models in the ARPA back-off text
// format.
package arpa

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/lm"
	"github.com/teranos/langkit/ngram"
)

// noProb is the conventional log10 probability of a token that is never
// predicted, such as <s>.
const noProb = -99

// Write emits m as ARPA text: the \data\ header with one count line per
// order, a \k-grams: section per order, and \end\. Each entry is
// log10(P(w | context)), the n-gram, and for a backoff model below the top
// order log10(alpha). Entries are sorted per order.
//
// <s> is only ever a context, so the model never counts it as a unigram.
// It is listed anyway with probability -99, since readers require every
// context of a higher-order entry to appear one order below.
func Write(w io.Writer, m *lm.NgramModel) error {
	if m.Sentences() == 0 {
		return errors.Wrap(errors.ErrEmptyModel, "nothing to export")
	}

	order := m.Order()
	entries := make([][][]string, order+1)
	for k := 1; k <= order; k++ {
		m.Range(k, func(g []string, _ int) bool {
			entries[k] = append(entries[k], slices.Clone(g))
			return true
		})
		if k == 1 && !slices.ContainsFunc(entries[1], isBOS) {
			entries[1] = append(entries[1], []string{ngram.BOS})
		}
		slices.SortFunc(entries[k], slices.Compare[[]string])
	}

	var backoff float64
	if sb, ok := m.Smoother().(lm.StupidBackoff); ok {
		backoff = math.Log10(sb.Alpha)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `\data\`)
	for k := 1; k <= order; k++ {
		fmt.Fprintf(bw, "ngram %d=%d\n", k, len(entries[k]))
	}
	for k := 1; k <= order; k++ {
		fmt.Fprintf(bw, "\n\\%d-grams:\n", k)
		for _, g := range entries[k] {
			p := float64(noProb)
			if !isBOS(g) {
				p = math.Log10(m.Probability(g[k-1], g[:k-1]))
			}
			fmt.Fprintf(bw, "%.6f\t%s", p, strings.Join(g, " "))
			if backoff != 0 && k < order {
				fmt.Fprintf(bw, "\t%.6f", backoff)
			}
			bw.WriteByte('\n')
		}
	}
	fmt.Fprintln(bw, "\n\\end\\")

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write ARPA model")
	}
	return nil
}

func isBOS(g []string) bool {
	return len(g) == 1 && g[0] == ngram.BOS
}

// WriteFile writes m to path, replacing any existing file.
func WriteFile(path string, m *lm.NgramModel) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

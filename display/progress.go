package display

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
)

// Progress counts processed items. A disabled Progress does nothing, so
// callers need not check whether output is interactive.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar for total items writing to w. It is disabled
// when enabled is false or total is not positive.
func NewProgress(w io.Writer, total int, enabled bool) *Progress {
	if !enabled || total <= 0 {
		return &Progress{}
	}
	bar := pb.Simple.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &Progress{bar: bar}
}

// Increment advances the bar by one.
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Current returns the number of items counted so far.
func (p *Progress) Current() int64 {
	if p.bar == nil {
		return 0
	}
	return p.bar.Current()
}

// Finish stops the bar.
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// IsTerminal reports whether w is an interactive terminal. Progress bars
// are only drawn on terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

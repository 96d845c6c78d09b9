// Package progress renders reconciliation progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Bar prints a single self-overwriting progress line. It is silent unless
// its writer is a terminal.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	pass    string
	percent int
	drawn   bool
}

// New creates a bar writing to w.
func New(w io.Writer) *Bar {
	return &Bar{w: w, enabled: isTerminal(w), percent: -1}
}

// NewForced creates a bar that renders on any writer.
func NewForced(w io.Writer) *Bar {
	return &Bar{w: w, enabled: true, percent: -1}
}

// Update matches reconciler.ProgressFunc. label has the form "Pass: key".
// A line is redrawn only when the pass or the whole percentage changes.
func (b *Bar) Update(current, total int, label string) {
	if !b.enabled || total <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	pass, _, _ := strings.Cut(label, ": ")
	percent := current * 100 / total
	if pass == b.pass && percent == b.percent {
		return
	}
	if pass != b.pass && b.drawn {
		fmt.Fprintln(b.w)
	}
	b.pass, b.percent, b.drawn = pass, percent, true
	fmt.Fprintf(b.w, "\r%s pass: %d/%d groups (%d%%)", pass, current, total, percent)
}

// Done ends the progress line.
func (b *Bar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Package progress provides ProgressSink adapters: an interactive
// console sink with a spinner and colored verbose output, and a no-op
// sink for non-interactive callers.
package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// charSetClassic is the classic |/-\ spinning cursor.
const charSetClassic = 9

// DefaultSpinnerInterval is the frame interval used when the caller
// does not configure one.
const DefaultSpinnerInterval = 100 * time.Millisecond

// ConsoleSink renders split progress on a terminal. A spinner runs for
// the duration of each task; created file paths are printed in blue
// when verbose mode is on. All output goes to the injected writer. The
// sink assumes the strictly sequential task lifecycle of a split
// operation: one task at a time, started and finished in order.
type ConsoleSink struct {
	out            io.Writer
	verbose        bool
	spinnerEnabled bool
	interval       time.Duration
	pathColor      *color.Color

	spin *spinner.Spinner
}

// NewConsoleSink creates a console sink writing to out. When
// spinnerEnabled is false only verbose path reporting is rendered,
// which suits non-TTY output. A non-positive interval selects
// DefaultSpinnerInterval.
func NewConsoleSink(out io.Writer, verbose, spinnerEnabled bool, interval time.Duration) *ConsoleSink {
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return &ConsoleSink{
		out:            out,
		verbose:        verbose,
		spinnerEnabled: spinnerEnabled,
		interval:       interval,
		pathColor:      color.New(color.FgBlue),
	}
}

// TaskStarted starts a spinner labelled with the task name.
func (s *ConsoleSink) TaskStarted(name string) {
	if !s.spinnerEnabled {
		return
	}
	spin := spinner.New(spinner.CharSets[charSetClassic], s.interval, spinner.WithWriter(s.out))
	spin.Prefix = name + " "
	_ = spin.Color("green")
	spin.Start()
	s.spin = spin
}

// TaskFinished stops the running spinner. Stop clears the spinner line
// and joins its render loop, so nothing races with output written after
// this returns.
func (s *ConsoleSink) TaskFinished(string) {
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}
}

// FileCreated prints the created path in blue when verbose mode is on.
func (s *ConsoleSink) FileCreated(path string) {
	if s.verbose {
		s.pathColor.Fprintln(s.out, path)
	}
}

package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Indicator shows that a request is in flight.
type Indicator interface {
	Start(description string)
	Stop()
}

// NewIndicator returns a TerminalIndicator when w is an interactive terminal,
// a CIIndicator if the CI environment variable is set, and a no-op indicator
// otherwise or when quiet is set.
func NewIndicator(w io.Writer, quiet bool) Indicator {
	if quiet {
		return Nop{}
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIIndicator{w: w}
	}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return &TerminalIndicator{w: w}
	}
	return Nop{}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalIndicator displays a spinner until stopped.
type TerminalIndicator struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func (t *TerminalIndicator) Start(description string) {
	t.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	t.done = make(chan struct{})
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				_ = t.bar.Add(1)
			}
		}
	}()
}

// Stop clears the spinner. Output written after Stop returns is not
// interleaved with spinner frames.
func (t *TerminalIndicator) Stop() {
	if t.bar == nil {
		return
	}
	close(t.done)
	t.wg.Wait()
	_ = t.bar.Finish()
	t.bar = nil
}

// CIIndicator prints start and finish lines suitable for CI logs.
type CIIndicator struct {
	w       io.Writer
	started time.Time
}

func (c *CIIndicator) Start(description string) {
	c.started = time.Now()
	fmt.Fprintf(c.w, "%s...\n", description)
}

func (c *CIIndicator) Stop() {
	fmt.Fprintf(c.w, "done in %s\n", time.Since(c.started).Round(time.Millisecond))
}

// Nop is an Indicator that does nothing.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Stop()        {}

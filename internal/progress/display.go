package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows one task at a time: a spinner while it runs (TTY only) and a
// result line when it ends.
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
	task         string
}

// NewDisplay creates a display writing to out with the given capabilities
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start begins a task
func (d *Display) Start(task string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.task = task

	if !d.capabilities.IsTTY {
		fmt.Fprintf(d.out, "%s...\n", task)
		return
	}
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
		spinner.WithWriter(d.out),
	)
	d.spinner.Suffix = " " + task
	d.spinner.Start()
}

// Succeed stops the spinner and prints a success line
func (d *Display) Succeed(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	fmt.Fprintf(d.out, "%s %s\n", checkmark(d.symbols, d.capabilities.SupportsColor), msg)
	d.task = ""
}

// Fail stops the spinner and prints a failure line for the current task
func (d *Display) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	task := d.task
	if task == "" {
		task = "failed"
	}
	fmt.Fprintf(d.out, "%s %s: %v\n", failureMark(d.symbols, d.capabilities.SupportsColor), task, err)
	d.task = ""
}

// Stop stops the spinner without showing completion/failure
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Display) stopLocked() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

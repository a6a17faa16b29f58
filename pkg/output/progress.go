package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress is a single-line counter for the registry fetch phase, rendered
// as "message: k/n (pp%)" with a carriage return between updates. Safe for
// concurrent Increment calls from the lookup goroutines.
type Progress struct {
	writer  io.Writer
	message string
	total   int

	mu        sync.Mutex
	current   int
	enabled   bool
	lastWidth int
}

// NewProgress returns an enabled progress line writing to writer, normally
// os.Stderr so stdout stays clean for results.
//
// Parameters:
//   - writer: Destination for progress output
//   - total: Number of steps the operation spans
//   - message: Label shown before the counter (e.g. "Checking crates")
//
// Returns:
//   - *Progress: Ready-to-use progress line
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{
		writer:  writer,
		total:   total,
		message: message,
		enabled: true,
	}
}

// SetEnabled turns rendering on or off, for non-interactive environments.
//
// Parameters:
//   - enabled: false suppresses all output
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Increment advances by one step and redraws. Thread-safe.
func (p *Progress) Increment() {
	p.mu.Lock()
	p.current++
	line, ok := p.lineLocked()
	p.mu.Unlock()

	if ok {
		p.write(line)
	}
}

// SetCurrent jumps to a specific step and redraws. Thread-safe.
//
// Parameters:
//   - current: Step to display (0 to total)
func (p *Progress) SetCurrent(current int) {
	p.mu.Lock()
	p.current = current
	line, ok := p.lineLocked()
	p.mu.Unlock()

	if ok {
		p.write(line)
	}
}

// Done snaps the counter to 100%, redraws, and terminates the line so the
// next print starts fresh.
func (p *Progress) Done() {
	p.mu.Lock()
	p.current = p.total
	line, ok := p.lineLocked()
	p.mu.Unlock()

	if ok {
		p.write(line)
		_, _ = fmt.Fprintln(p.writer)
	}
}

// Clear blanks the progress line, for handing the terminal to the
// interactive checklist.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
	}
}

// lineLocked formats the current state and remembers the rendered width so a
// shorter line can blank the leftovers of a longer one. Caller holds p.mu.
func (p *Progress) lineLocked() (string, bool) {
	if !p.enabled || p.total <= 0 {
		return "", false
	}

	percentage := float64(p.current) / float64(p.total) * 100
	line := fmt.Sprintf("\r%s: %d/%d (%.0f%%)", p.message, p.current, p.total, percentage)
	if pad := p.lastWidth - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	p.lastWidth = len(line)

	return line, true
}

// write emits a rendered line, syncing file writers so the counter shows up
// immediately under CI buffering.
func (p *Progress) write(line string) {
	_, _ = fmt.Fprint(p.writer, line)
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}

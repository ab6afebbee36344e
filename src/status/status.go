// Package status writes the line protocol that parent processes read from
// stdout. Every message is one line starting with the prefix and is flushed
// as soon as it is written.
package status

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultPrefix tags every status line.
const DefaultPrefix = "[OPPY-SCREEN-SHOT]"

// Reporter is safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	w      *bufio.Writer
	prefix string
}

// New returns a reporter writing to w.
func New(w io.Writer, prefix string) *Reporter {
	return &Reporter{w: bufio.NewWriter(w), prefix: prefix}
}

// Stdout returns a reporter on os.Stdout with the default prefix.
func Stdout() *Reporter { return New(os.Stdout, DefaultPrefix) }

// Printf writes one status line.
func (r *Reporter) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %s\n", r.prefix, fmt.Sprintf(format, args...))
	_ = r.w.Flush()
}

func (r *Reporter) Started()             { r.Printf("Started.") }
func (r *Reporter) Closed()              { r.Printf("Closed.") }
func (r *Reporter) Canceled()            { r.Printf("Canceled.") }
func (r *Reporter) ExitReceived()        { r.Printf("Exit command received.") }
func (r *Reporter) MovedTo(number int)   { r.Printf("Moved to monitor: %d", number) }
func (r *Reporter) Captured(path string) { r.Printf("Captured: %s", path) }
func (r *Reporter) InputError(err error) { r.Printf("Input error: %v", err) }
func (r *Reporter) SaveError(err error)  { r.Printf("Error saving screenshot: %v", err) }

func (r *Reporter) TooSmall(minSize int) {
	r.Printf("Selected area is too small (minimum: %dx%d pixels). Please try again.", minSize, minSize)
}

func (r *Reporter) CaptureError(err error) {
	r.Printf("Error capturing screenshot: %v. Please try again.", err)
}

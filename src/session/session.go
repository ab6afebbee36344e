package session

import (
	"errors"

	"github.com/charmbracelet/log"

	"screen-region-shot/src/monitor"
	"screen-region-shot/src/screenshot"
	"screen-region-shot/src/selection"
	"screen-region-shot/src/status"
)

// ErrCancelled is returned by Result.Err when the run ended without a
// capture.
var ErrCancelled = errors.New("selection cancelled")

// Overlay is the window the session draws on. All calls happen on the UI
// thread.
type Overlay interface {
	Place(m monitor.Monitor)
	ShowRect(r selection.Rect)
	ClearRect()
	// Hide and Show bracket a capture so the overlay is not in the image.
	Hide()
	Show()
	Close()
}

// Capturer grabs the given absolute bounds and returns where the image was
// saved.
type Capturer interface {
	Capture(b screenshot.Bounds) (path string, err error)
}

// Options configures a Session. MinSize defaults to selection.DefaultMinSize.
type Options struct {
	Overlay  Overlay
	Capturer Capturer
	Status   *status.Reporter
	MinSize  int
}

// Outcome is how a session ended.
type Outcome int

const (
	Pending Outcome = iota
	Captured
	Cancelled
	Closed
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Captured:
		return "captured"
	case Cancelled:
		return "cancelled"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Result is the final state of a session, read after it closes.
type Result struct {
	Outcome Outcome
	Path    string
}

// Err is nil only when a region was captured.
func (r Result) Err() error {
	if r.Outcome == Captured {
		return nil
	}
	return ErrCancelled
}

// Session holds the state of one selection run: the drag rectangle, the
// monitor the overlay covers, and whether the run is still active. Its
// methods are event handlers and must only be called from the UI thread.
type Session struct {
	overlay  Overlay
	capturer Capturer
	status   *status.Reporter
	minSize  int

	sel        selection.Selection
	current    monitor.Monitor
	hasMonitor bool
	running    bool
	done       chan struct{}
	result     Result
}

func New(opts Options) *Session {
	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = selection.DefaultMinSize
	}
	return &Session{
		overlay:  opts.Overlay,
		capturer: opts.Capturer,
		status:   opts.Status,
		minSize:  minSize,
		running:  true,
		done:     make(chan struct{}),
	}
}

func (s *Session) Running() bool { return s.running }

// Done is closed once the session has closed.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Result() Result { return s.result }

// Monitor returns the monitor the overlay currently covers.
func (s *Session) Monitor() (monitor.Monitor, bool) { return s.current, s.hasMonitor }

// MonitorChanged moves the overlay onto m unless it already covers a monitor
// with the same origin. Any rectangle in progress is dropped.
func (s *Session) MonitorChanged(m monitor.Monitor) {
	if !s.running {
		return
	}
	if s.hasMonitor && monitor.SameOrigin(s.current, m) {
		return
	}
	s.status.MovedTo(m.Number())
	log.Debug("placing overlay", "monitor", m)

	s.current, s.hasMonitor = m, true
	s.overlay.Place(m)
	s.reset()
}

func (s *Session) Press(x, y float64) {
	if !s.running {
		return
	}
	r := s.sel.Press(x, y)
	s.overlay.ShowRect(r)
}

func (s *Session) Drag(x, y float64) {
	if !s.running {
		return
	}
	if r, ok := s.sel.Drag(x, y); ok {
		s.overlay.ShowRect(r)
	}
}

// Release validates the finished rectangle and captures it. A rectangle that
// is too small, or a failed capture, resets the selection and waits for a new
// press. A successful capture closes the session.
func (s *Session) Release(x, y float64) {
	if !s.running {
		return
	}
	r, ok := s.sel.Release(x, y)
	if !ok {
		return
	}
	s.overlay.ShowRect(r)

	if err := selection.Validate(r, s.minSize); err != nil {
		log.Debug("selection rejected", "err", err)
		s.status.TooSmall(s.minSize)
		s.reset()
		return
	}

	if !s.hasMonitor {
		log.Warn("no monitor known at release, assuming origin 0,0")
	}
	bounds := selection.ToBounds(r, s.current)
	s.overlay.Hide()
	path, err := s.capturer.Capture(bounds)
	if err != nil {
		log.Error("capture failed", "bounds", bounds, "err", err)
		s.status.SaveError(err)
		s.status.CaptureError(err)
		s.reset()
		s.overlay.Show()
		return
	}

	s.status.Captured(path)
	s.result = Result{Outcome: Captured, Path: path}
	s.Close()
}

// Cancel handles the Escape key.
func (s *Session) Cancel() {
	if !s.running {
		return
	}
	s.status.Canceled()
	s.result = Result{Outcome: Cancelled}
	s.Close()
}

// Close ends the session. Only the first call has any effect.
func (s *Session) Close() {
	if !s.running {
		return
	}
	s.running = false
	if s.result.Outcome == Pending {
		s.result = Result{Outcome: Closed}
	}
	s.status.Closed()
	s.overlay.Close()
	close(s.done)
}

func (s *Session) reset() {
	if _, visible := s.sel.Rect(); visible {
		s.overlay.ClearRect()
	}
	s.sel.Reset()
}

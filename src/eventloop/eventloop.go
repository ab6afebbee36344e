package eventloop

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"screen-region-shot/src/clipboard"
	"screen-region-shot/src/command"
	"screen-region-shot/src/config"
	"screen-region-shot/src/hotkey"
	"screen-region-shot/src/monitor"
	"screen-region-shot/src/overlay"
	"screen-region-shot/src/screenshot"
	"screen-region-shot/src/session"
	"screen-region-shot/src/status"
)

// Window is the overlay as seen by the loop.
type Window interface {
	session.Overlay
	SetHandler(h overlay.Handler)
	Wait(timeout time.Duration)
}

// HotkeyFunc registers a global key combination and returns a stop function.
type HotkeyFunc func(combo string, callback func()) (stop func())

type Options struct {
	Config   *config.Config
	Window   Window
	Wake     func()
	Tracker  *monitor.Tracker
	Capturer session.Capturer
	Status   *status.Reporter
	Stdin    io.Reader
	Hotkey   HotkeyFunc
}

// Loop is the single-threaded coordinator. Only the goroutine that calls Run
// touches the window and the session; background producers hand work over
// with Post.
type Loop struct {
	cfg      *config.Config
	window   Window
	wake     func()
	tracker  *monitor.Tracker
	capturer session.Capturer
	status   *status.Reporter
	stdin    io.Reader
	hotkey   HotkeyFunc
	posted   chan func()
	// stopped is closed when Run returns so late posts do not block.
	stopped  chan struct{}
	stopOnce sync.Once
}

// New fills unset options with the real desktop implementations. A nil
// Config is loaded from the environment.
func New(opts Options) (*Loop, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	l := &Loop{
		cfg:      cfg,
		window:   opts.Window,
		wake:     opts.Wake,
		tracker:  opts.Tracker,
		capturer: opts.Capturer,
		status:   opts.Status,
		stdin:    opts.Stdin,
		hotkey:   opts.Hotkey,
		posted:   make(chan func(), 16),
		stopped:  make(chan struct{}),
	}
	if l.wake == nil {
		l.wake = overlay.Wake
	}
	if l.tracker == nil {
		l.tracker = monitor.NewTracker(cfg.PollInterval)
	}
	if l.capturer == nil {
		c := screenshot.Capturer{Path: cfg.OutputFile}
		if cfg.CopyToClipboard {
			c.Clipboard = clipboard.Image{}
		}
		l.capturer = c
	}
	if l.status == nil {
		l.status = status.Stdout()
	}
	if l.stdin == nil {
		l.stdin = os.Stdin
	}
	if l.hotkey == nil {
		l.hotkey = hotkey.Listen
	}
	return l, nil
}

// Post schedules fn on the loop goroutine. Safe from any goroutine. When the
// queue is full Post blocks until the loop drains it; once Run has returned
// fn is discarded.
func (l *Loop) Post(fn func()) {
	select {
	case l.posted <- fn:
		l.wake()
		return
	case <-l.stopped:
		return
	default:
	}

	log.Debug("event queue full, waiting for the loop")
	l.wake()
	select {
	case l.posted <- fn:
		l.wake()
	case <-l.stopped:
	}
}

// Run shows the overlay over the cursor's monitor and processes events until
// the session closes. Cancelling ctx closes the session.
func (l *Loop) Run(ctx context.Context) (session.Result, error) {
	defer l.stopOnce.Do(func() { close(l.stopped) })

	initial, err := l.tracker.Locate()
	if err != nil {
		return session.Result{}, fmt.Errorf("failed to locate cursor monitor: %w", err)
	}

	s := session.New(session.Options{
		Overlay:  l.window,
		Capturer: l.capturer,
		Status:   l.status,
		MinSize:  l.cfg.MinSelectionSize,
	})
	l.window.SetHandler(s)
	s.MonitorChanged(initial)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go func() {
		_ = l.tracker.Run(bgCtx, func(m monitor.Monitor) {
			l.Post(func() { s.MonitorChanged(m) })
		})
	}()

	if l.cfg.ListenStdin {
		go command.Listen(bgCtx, l.stdin, command.Handlers{
			OnExit: func() {
				l.status.ExitReceived()
				l.Post(s.Close)
			},
			OnError: l.status.InputError,
		})
	}

	if combo := l.cfg.CancelHotkey; combo != "" {
		if stop := l.hotkey(combo, func() { l.Post(s.Cancel) }); stop != nil {
			defer stop()
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			log.Debug("context done, closing session", "err", ctx.Err())
			l.Post(s.Close)
		case <-bgCtx.Done():
		}
	}()

	interval := l.tracker.Interval()
	for s.Running() {
		l.window.Wait(interval)
		l.drain(s)
	}

	res := s.Result()
	log.Debug("session finished", "outcome", res.Outcome, "path", res.Path)
	return res, nil
}

func (l *Loop) drain(s *session.Session) {
	for {
		select {
		case fn := <-l.posted:
			if !s.Running() {
				continue
			}
			fn()
		default:
			return
		}
	}
}

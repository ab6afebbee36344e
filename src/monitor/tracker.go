package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-vgo/robotgo"
)

// DefaultInterval is how often the tracker samples the cursor.
const DefaultInterval = 100 * time.Millisecond

// ErrNoMonitors is returned when display enumeration yields nothing.
var ErrNoMonitors = errors.New("no active displays found")

// EnumerateFunc lists the connected displays.
type EnumerateFunc func() []Monitor

// CursorFunc returns the absolute cursor position.
type CursorFunc func() (x, y int)

// Tracker follows the monitor under the mouse cursor.
type Tracker struct {
	interval  time.Duration
	enumerate EnumerateFunc
	cursor    CursorFunc
}

// NewTracker returns a tracker backed by kbinani/screenshot and robotgo.
// A non-positive interval selects DefaultInterval.
func NewTracker(interval time.Duration) *Tracker {
	return NewTrackerWith(interval, Active, robotgo.Location)
}

// NewTrackerWith builds a tracker on custom enumeration and cursor sources.
func NewTrackerWith(interval time.Duration, enumerate EnumerateFunc, cursor CursorFunc) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{interval: interval, enumerate: enumerate, cursor: cursor}
}

// Interval returns the sampling period.
func (t *Tracker) Interval() time.Duration { return t.interval }

// Locate returns the monitor currently under the cursor.
func (t *Tracker) Locate() (Monitor, error) {
	x, y := t.cursor()
	m, ok := At(t.enumerate(), x, y)
	if !ok {
		return Monitor{}, ErrNoMonitors
	}
	return m, nil
}

// Run samples the cursor every interval and calls onChange whenever the
// cursor enters a monitor with a different origin than the last one reported.
// The first successful sample is always reported. Run blocks until ctx is
// cancelled.
func (t *Tracker) Run(ctx context.Context, onChange func(Monitor)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var (
		last     Monitor
		reported bool
	)
	sample := func() {
		m, err := t.Locate()
		if err != nil {
			log.Debug("monitor poll skipped", "err", err)
			return
		}
		if reported && SameOrigin(last, m) {
			return
		}
		last, reported = m, true
		log.Debug("cursor monitor changed", "monitor", m)
		onChange(m)
	}

	sample()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sample()
		}
	}
}

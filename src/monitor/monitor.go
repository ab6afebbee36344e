package monitor

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Monitor describes one physical display in virtual-desktop pixels.
type Monitor struct {
	Index  int
	Left   int
	Top    int
	Width  int
	Height int
}

// Number is the 1-based display number shown to users.
func (m Monitor) Number() int { return m.Index + 1 }

// Contains reports whether the point lies inside the monitor. The right and
// bottom edges belong to the neighbouring display.
func (m Monitor) Contains(x, y int) bool {
	return m.Left <= x && x < m.Left+m.Width &&
		m.Top <= y && y < m.Top+m.Height
}

// Rect returns the monitor area as an image.Rectangle.
func (m Monitor) Rect() image.Rectangle {
	return image.Rect(m.Left, m.Top, m.Left+m.Width, m.Top+m.Height)
}

func (m Monitor) String() string {
	return fmt.Sprintf("#%d %dx%d+%d+%d", m.Number(), m.Width, m.Height, m.Left, m.Top)
}

// SameOrigin reports whether a and b are the same display. Only the origin is
// compared; a resolution change alone does not move the overlay.
func SameOrigin(a, b Monitor) bool {
	return a.Left == b.Left && a.Top == b.Top
}

// At returns the monitor under (x, y). When the point is outside every
// monitor the first one is returned. ok is false only for an empty list.
func At(monitors []Monitor, x, y int) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return monitors[0], true
}

// displayCount and displayBounds are package vars so tests can stub the
// display enumeration.
var (
	displayCount  = screenshot.NumActiveDisplays
	displayBounds = screenshot.GetDisplayBounds
)

// Active enumerates the connected displays.
func Active() []Monitor {
	n := displayCount()
	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := displayBounds(i)
		monitors = append(monitors, Monitor{
			Index:  i,
			Left:   b.Min.X,
			Top:    b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return monitors
}

package selection

import (
	"errors"
	"fmt"
	"math"

	"screen-region-shot/src/monitor"
	"screen-region-shot/src/screenshot"
)

// DefaultMinSize is the smallest accepted width and height in pixels.
const DefaultMinSize = 10

// ErrTooSmall is returned by Validate for selections under the minimum size.
var ErrTooSmall = errors.New("selected area is too small")

// Rect is a drag rectangle in overlay-local coordinates. Start is where the
// button went down; End follows the cursor.
type Rect struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// Size returns the absolute width and height.
func (r Rect) Size() (w, h float64) {
	return math.Abs(r.EndX - r.StartX), math.Abs(r.EndY - r.StartY)
}

// Normalized returns the top-left and bottom-right corners.
func (r Rect) Normalized() (x0, y0, x1, y1 float64) {
	return math.Min(r.StartX, r.EndX), math.Min(r.StartY, r.EndY),
		math.Max(r.StartX, r.EndX), math.Max(r.StartY, r.EndY)
}

// Validate rejects rectangles whose width or height is below minSize.
func Validate(r Rect, minSize int) error {
	w, h := r.Size()
	if w < float64(minSize) || h < float64(minSize) {
		return fmt.Errorf("%w: %.0fx%.0f (minimum: %dx%d pixels)", ErrTooSmall, w, h, minSize, minSize)
	}
	return nil
}

// ToBounds converts an overlay-local rectangle on monitor m to absolute
// screen bounds.
func ToBounds(r Rect, m monitor.Monitor) screenshot.Bounds {
	x0, y0, x1, y1 := r.Normalized()
	return screenshot.Bounds{
		Left:   int(x0 + float64(m.Left)),
		Top:    int(y0 + float64(m.Top)),
		Right:  int(x1 + float64(m.Left)),
		Bottom: int(y1 + float64(m.Top)),
	}
}

// State is the drag state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Selection tracks one drag gesture. The zero value is idle.
type Selection struct {
	rect  Rect
	state State
	// visible is true while a rectangle should be drawn.
	visible bool
}

// State returns the current drag state.
func (s *Selection) State() State { return s.state }

// Rect returns the current rectangle and whether one exists.
func (s *Selection) Rect() (Rect, bool) { return s.rect, s.visible }

// Press starts a new rectangle at (x, y), replacing any previous one.
func (s *Selection) Press(x, y float64) Rect {
	s.rect = Rect{StartX: x, StartY: y, EndX: x, EndY: y}
	s.state = Dragging
	s.visible = true
	return s.rect
}

// Drag moves the free corner. It returns false when no drag is active.
func (s *Selection) Drag(x, y float64) (Rect, bool) {
	if s.state != Dragging {
		return Rect{}, false
	}
	s.rect.EndX, s.rect.EndY = x, y
	return s.rect, true
}

// Release finishes the drag at (x, y) and returns the final rectangle. It
// returns false when no drag is active. The rectangle stays visible until
// Reset.
func (s *Selection) Release(x, y float64) (Rect, bool) {
	if s.state != Dragging {
		return Rect{}, false
	}
	s.rect.EndX, s.rect.EndY = x, y
	s.state = Idle
	return s.rect, true
}

// Reset discards the rectangle and returns to idle.
func (s *Selection) Reset() {
	*s = Selection{}
}

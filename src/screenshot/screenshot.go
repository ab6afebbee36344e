package screenshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"
	"github.com/natefinch/atomic"
)

// DefaultFileName is where captures are written unless configured otherwise.
const DefaultFileName = "oppy_screen_shot.png"

// ErrNoDisplays is returned when no display is attached.
var ErrNoDisplays = errors.New("no active displays found")

// Bounds is an absolute virtual-desktop rectangle. It is computed once per
// capture and never modified.
type Bounds struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width is never less than 1.
func (b Bounds) Width() int { return max(b.Right-b.Left, 1) }

// Height is never less than 1.
func (b Bounds) Height() int { return max(b.Bottom-b.Top, 1) }

// Rect returns the grab rectangle anchored at Left/Top.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Left+b.Width(), b.Top+b.Height())
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// captureRect and displayCount are package vars so tests can run headless.
var (
	captureRect  = screenshot.CaptureRect
	displayCount = screenshot.NumActiveDisplays
)

// CaptureRegion grabs the pixels inside b and returns them PNG-encoded.
func CaptureRegion(b Bounds) ([]byte, error) {
	if displayCount() == 0 {
		return nil, ErrNoDisplays
	}

	img, err := captureRect(b.Rect())
	if err != nil {
		return nil, fmt.Errorf("failed to capture region %v: %w", b, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes PNG bytes to path, replacing any existing file. The write is
// atomic so a failure never leaves a truncated image behind.
func Save(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save capture to %s: %w", path, err)
	}
	return nil
}

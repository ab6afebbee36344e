package clipboard

import (
	"os"
	"testing"
)

func TestWriteImage(t *testing.T) {
	if os.Getenv("SCREEN_REGION_SHOT_INTERACTIVE_TESTS") != "1" {
		t.Skip("set SCREEN_REGION_SHOT_INTERACTIVE_TESTS=1 to run clipboard test")
	}
	// 1x1 transparent PNG
	png := []byte{
		0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		'I', 'H', 'D', 'R', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0a, 'I', 'D', 'A', 'T', 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 'I',
		'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82,
	}
	if err := (Image{}).WriteImage(png); err != nil {
		t.Logf("Failed to write to clipboard: %v", err)
	}
}

package monitor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dualHead = []Monitor{
	{Index: 0, Left: 0, Top: 0, Width: 1920, Height: 1080},
	{Index: 1, Left: -1280, Top: 0, Width: 1280, Height: 1024},
}

func TestContainsIsHalfOpen(t *testing.T) {
	m := dualHead[0]
	assert.True(t, m.Contains(0, 0))
	assert.True(t, m.Contains(1919, 1079))
	assert.False(t, m.Contains(1920, 500))
	assert.False(t, m.Contains(500, 1080))
	assert.False(t, m.Contains(-1, 0))
}

func TestAt(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"primary", 100, 100, 0},
		{"left of primary", -10, 500, 1},
		{"left edge of secondary", -1280, 0, 1},
		{"seam belongs to primary", 0, 1023, 0},
		{"below secondary falls back to primary", -100, 1050, 0},
		{"far away falls back to primary", 99999, 99999, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := At(dualHead, tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.want, m.Index)
		})
	}
}

func TestAtEmpty(t *testing.T) {
	_, ok := At(nil, 0, 0)
	assert.False(t, ok)
}

func TestSameOriginIgnoresSize(t *testing.T) {
	a := Monitor{Left: 10, Top: 20, Width: 100, Height: 100}
	b := Monitor{Index: 3, Left: 10, Top: 20, Width: 200, Height: 50}
	assert.True(t, SameOrigin(a, b))
	b.Top = 21
	assert.False(t, SameOrigin(a, b))
}

func TestNumberIsOneBased(t *testing.T) {
	assert.Equal(t, 1, dualHead[0].Number())
	assert.Equal(t, 2, dualHead[1].Number())
}

func TestActive(t *testing.T) {
	origCount, origBounds := displayCount, displayBounds
	t.Cleanup(func() { displayCount, displayBounds = origCount, origBounds })

	rects := []image.Rectangle{
		image.Rect(0, 0, 2560, 1440),
		image.Rect(2560, -200, 4480, 880),
	}
	displayCount = func() int { return len(rects) }
	displayBounds = func(i int) image.Rectangle { return rects[i] }

	got := Active()
	require.Len(t, got, 2)
	assert.Equal(t, Monitor{Index: 1, Left: 2560, Top: -200, Width: 1920, Height: 1080}, got[1])
	assert.Equal(t, rects[1], got[1].Rect())
}

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screen-region-shot/src/monitor"
	"screen-region-shot/src/screenshot"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		wantErr bool
	}{
		{"exactly minimum", Rect{0, 0, 10, 10}, false},
		{"large", Rect{5, 5, 400, 300}, false},
		{"reversed drag", Rect{100, 100, 50, 20}, false},
		{"narrow", Rect{0, 0, 9, 100}, true},
		{"short", Rect{0, 0, 100, 9.5}, true},
		{"click without drag", Rect{42, 42, 42, 42}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rect, DefaultMinSize)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooSmall)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToBoundsAddsMonitorOrigin(t *testing.T) {
	left := monitor.Monitor{Index: 1, Left: -1280, Top: 200, Width: 1280, Height: 1024}
	tests := []struct {
		name string
		rect Rect
		mon  monitor.Monitor
		want screenshot.Bounds
	}{
		{
			name: "primary",
			rect: Rect{10, 20, 110, 220},
			mon:  monitor.Monitor{Width: 1920, Height: 1080},
			want: screenshot.Bounds{Left: 10, Top: 20, Right: 110, Bottom: 220},
		},
		{
			name: "negative origin, reversed drag",
			rect: Rect{300, 400, 100, 50},
			mon:  left,
			want: screenshot.Bounds{Left: -1180, Top: 250, Right: -980, Bottom: 600},
		},
		{
			name: "fractional coordinates",
			rect: Rect{10.7, 20.2, 30.9, 40.5},
			mon:  monitor.Monitor{Left: 1920, Top: 0},
			want: screenshot.Bounds{Left: 1930, Top: 20, Right: 1950, Bottom: 40},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBounds(tt.rect, tt.mon))
		})
	}
}

func TestSelectionLifecycle(t *testing.T) {
	var s Selection
	assert.Equal(t, Idle, s.State())
	_, visible := s.Rect()
	assert.False(t, visible)

	_, ok := s.Drag(5, 5)
	assert.False(t, ok, "drag before press must be ignored")
	_, ok = s.Release(5, 5)
	assert.False(t, ok, "release before press must be ignored")

	s.Press(10, 20)
	assert.Equal(t, Dragging, s.State())

	r, ok := s.Drag(50, 60)
	require.True(t, ok)
	assert.Equal(t, Rect{10, 20, 50, 60}, r)

	r, ok = s.Release(70, 80)
	require.True(t, ok)
	assert.Equal(t, Rect{10, 20, 70, 80}, r)
	assert.Equal(t, Idle, s.State())

	_, ok = s.Drag(1, 1)
	assert.False(t, ok, "drag after release must be ignored")

	r, visible = s.Rect()
	assert.True(t, visible)
	assert.Equal(t, Rect{10, 20, 70, 80}, r)

	s.Reset()
	_, visible = s.Rect()
	assert.False(t, visible)
}

func TestPressReplacesPreviousRect(t *testing.T) {
	var s Selection
	s.Press(1, 1)
	s.Drag(100, 100)
	s.Press(200, 200)

	r, visible := s.Rect()
	require.True(t, visible)
	assert.Equal(t, Rect{200, 200, 200, 200}, r)
}

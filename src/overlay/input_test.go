package overlay

import (
	"fmt"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) Press(x, y float64)   { h.record("press %v,%v", x, y) }
func (h *recordingHandler) Drag(x, y float64)    { h.record("drag %v,%v", x, y) }
func (h *recordingHandler) Release(x, y float64) { h.record("release %v,%v", x, y) }
func (h *recordingHandler) Cancel()              { h.record("cancel") }
func (h *recordingHandler) Close()               { h.record("close") }

func (h *recordingHandler) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

func neverClosed() bool { return false }

func TestInputTranslation(t *testing.T) {
	tests := []struct {
		name   string
		events func(in *input)
		want   []string
	}{
		{
			name: "press drag release",
			events: func(in *input) {
				in.mouseButton(glfw.MouseButtonLeft, glfw.Press, 10, 20)
				in.cursorMoved(30, 40)
				in.mouseButton(glfw.MouseButtonLeft, glfw.Release, 50, 60)
			},
			want: []string{"press 10,20", "drag 30,40", "release 50,60"},
		},
		{
			name: "moves without a press are not drags",
			events: func(in *input) {
				in.cursorMoved(1, 1)
				in.mouseButton(glfw.MouseButtonLeft, glfw.Press, 2, 2)
				in.mouseButton(glfw.MouseButtonLeft, glfw.Release, 3, 3)
				in.cursorMoved(4, 4)
			},
			want: []string{"press 2,2", "release 3,3"},
		},
		{
			name: "release without press is ignored",
			events: func(in *input) {
				in.mouseButton(glfw.MouseButtonLeft, glfw.Release, 5, 5)
			},
			want: nil,
		},
		{
			name: "other buttons are ignored",
			events: func(in *input) {
				in.mouseButton(glfw.MouseButtonRight, glfw.Press, 5, 5)
				in.cursorMoved(6, 6)
				in.mouseButton(glfw.MouseButtonRight, glfw.Release, 7, 7)
			},
			want: nil,
		},
		{
			name: "escape press cancels",
			events: func(in *input) {
				in.key(glfw.KeyEscape, glfw.Release)
				in.key(glfw.KeyA, glfw.Press)
				in.key(glfw.KeyEscape, glfw.Press)
			},
			want: []string{"cancel"},
		},
		{
			name: "close request",
			events: func(in *input) {
				in.closeRequested()
			},
			want: []string{"close"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHandler{}
			in := &input{handler: h}
			tt.events(in)
			assert.Empty(t, h.calls, "events must wait for dispatch")

			in.dispatch(neverClosed)
			assert.Equal(t, tt.want, h.calls)
			assert.Empty(t, in.pending)
		})
	}
}

func TestInputDispatchStopsWhenClosed(t *testing.T) {
	h := &recordingHandler{}
	in := &input{handler: h}
	in.closeRequested()
	in.mouseButton(glfw.MouseButtonLeft, glfw.Press, 1, 1)

	in.dispatch(func() bool { return len(h.calls) > 0 })
	assert.Equal(t, []string{"close"}, h.calls)
	assert.Empty(t, in.pending, "events after close are dropped")
}

func TestInputWithoutHandlerQueuesNothing(t *testing.T) {
	in := &input{}
	in.mouseButton(glfw.MouseButtonLeft, glfw.Press, 1, 1)
	in.closeRequested()
	assert.Empty(t, in.pending)
	assert.True(t, in.pressed)
}

package overlay

import "github.com/go-gl/glfw/v3.3/glfw"

// input turns raw window events into handler calls. Events are queued from
// GLFW callbacks and delivered by dispatch, outside the callbacks, so a
// handler may hide or close the window.
type input struct {
	handler Handler
	pending []func()
	pressed bool
}

func (in *input) queue(call func(h Handler)) {
	h := in.handler
	if h == nil {
		return
	}
	in.pending = append(in.pending, func() { call(h) })
}

// mouseButton tracks the left button. A release is only reported after a
// press seen by this window.
func (in *input) mouseButton(button glfw.MouseButton, action glfw.Action, x, y float64) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		in.pressed = true
		in.queue(func(h Handler) { h.Press(x, y) })
	case glfw.Release:
		if !in.pressed {
			return
		}
		in.pressed = false
		in.queue(func(h Handler) { h.Release(x, y) })
	}
}

// cursorMoved reports drags only while the left button is held.
func (in *input) cursorMoved(x, y float64) {
	if !in.pressed {
		return
	}
	in.queue(func(h Handler) { h.Drag(x, y) })
}

func (in *input) key(key glfw.Key, action glfw.Action) {
	if key == glfw.KeyEscape && action == glfw.Press {
		in.queue(Handler.Cancel)
	}
}

func (in *input) closeRequested() {
	in.queue(Handler.Close)
}

// dispatch delivers queued events in order and stops early once closed
// reports true.
func (in *input) dispatch(closed func() bool) {
	pending := in.pending
	in.pending = nil
	for _, fn := range pending {
		if closed() {
			return
		}
		fn()
	}
}

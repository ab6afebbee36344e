package overlay

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"screen-region-shot/src/monitor"
	"screen-region-shot/src/selection"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

const (
	outlineWidth = 2
	// hideSettle gives the compositor time to remove the overlay before the
	// screen is grabbed.
	hideSettle = 80 * time.Millisecond
)

// Handler receives user input. Calls are made from Wait, never from inside
// a GLFW callback.
type Handler interface {
	Press(x, y float64)
	Drag(x, y float64)
	Release(x, y float64)
	Cancel()
	Close()
}

type Options struct {
	Title   string
	Opacity float64
}

// Window is a borderless, always-on-top, semi-transparent window that covers
// one monitor and draws the selection rectangle. All methods except Wake must
// be called on the main thread.
type Window struct {
	win    *glfw.Window
	cursor *glfw.Cursor
	in     input

	rect    selection.Rect
	hasRect bool
	dirty   bool
	closed  bool
}

// Init initializes GLFW. Call Terminate when done.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

// Terminate releases GLFW resources.
func Terminate() { glfw.Terminate() }

// Wake interrupts Wait from any goroutine.
func Wake() { glfw.PostEmptyEvent() }

// New creates the overlay hidden; Place shows it.
func New(opts Options) (*Window, error) {
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.FocusOnShow, glfw.True)
	glfw.WindowHint(glfw.AutoIconify, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	title := opts.Title
	if title == "" {
		title = "Select Region - Drag to select, ESC cancels"
	}
	win, err := glfw.CreateWindow(1, 1, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(1)

	opacity := opts.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.3
	}
	win.SetOpacity(float32(opacity))

	w := &Window{win: win}
	w.cursor = glfw.CreateStandardCursor(glfw.CrosshairCursor)
	win.SetCursor(w.cursor)

	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetKeyCallback(w.onKey)
	win.SetCloseCallback(w.onClose)
	win.SetRefreshCallback(func(*glfw.Window) { w.dirty = true })

	log.Debug("overlay window created", "opacity", opacity)
	return w, nil
}

// SetHandler connects input events to h.
func (w *Window) SetHandler(h Handler) { w.in.handler = h }

// Place moves and resizes the overlay to cover m exactly and shows it.
func (w *Window) Place(m monitor.Monitor) {
	if w.closed {
		return
	}
	w.win.SetPos(m.Left, m.Top)
	w.win.SetSize(m.Width, m.Height)
	w.Show()
	log.Debug("overlay placed", "monitor", m)
}

// Show makes the overlay visible again after Hide.
func (w *Window) Show() {
	if w.closed {
		return
	}
	w.win.Show()
	w.win.Focus()
	w.dirty = true
	w.redraw()
}

// Hide removes the overlay from the screen and waits briefly so a following
// capture does not include it.
func (w *Window) Hide() {
	if w.closed {
		return
	}
	w.win.Hide()
	glfw.PollEvents()
	time.Sleep(hideSettle)
}

func (w *Window) ShowRect(r selection.Rect) {
	w.rect, w.hasRect = r, true
	w.dirty = true
	w.redraw()
}

func (w *Window) ClearRect() {
	w.hasRect = false
	w.dirty = true
	w.redraw()
}

// Close hides the window. The GLFW window is released by Destroy.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.win.Hide()
}

// Destroy releases the window. It must not be called from a handler.
func (w *Window) Destroy() {
	w.closed = true
	if w.cursor != nil {
		w.cursor.Destroy()
		w.cursor = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
}

// Wait processes window events for at most timeout, then delivers the
// queued input to the handler.
func (w *Window) Wait(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
	w.in.dispatch(func() bool { return w.closed })
	w.redraw()
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	x, y := w.win.GetCursorPos()
	w.in.mouseButton(button, action, x, y)
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	w.in.cursorMoved(x, y)
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w.in.key(key, action)
}

func (w *Window) onClose(win *glfw.Window) {
	// The session decides when the window goes away.
	win.SetShouldClose(false)
	w.in.closeRequested()
}

func (w *Window) redraw() {
	if !w.dirty || w.closed || w.win == nil {
		return
	}
	w.dirty = false

	fbw, fbh := w.win.GetFramebufferSize()
	width, height := w.win.GetSize()

	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if w.hasRect {
		// Draw in window coordinates so cursor positions map directly.
		gl.MatrixMode(gl.PROJECTION)
		gl.LoadIdentity()
		gl.Ortho(0, float64(width), float64(height), 0, -1, 1)
		gl.MatrixMode(gl.MODELVIEW)
		gl.LoadIdentity()

		gl.Color3f(1, 0, 0)
		gl.LineWidth(outlineWidth)
		gl.Begin(gl.LINE_LOOP)
		gl.Vertex2f(float32(w.rect.StartX), float32(w.rect.StartY))
		gl.Vertex2f(float32(w.rect.EndX), float32(w.rect.StartY))
		gl.Vertex2f(float32(w.rect.EndX), float32(w.rect.EndY))
		gl.Vertex2f(float32(w.rect.StartX), float32(w.rect.EndY))
		gl.End()
	}

	w.win.SwapBuffers()
}

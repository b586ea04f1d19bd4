// Package glfwwindow opens a GLFW window with an OpenGL 4.1 core context and
// turns its callbacks into platform events.
package glfwwindow

import (
	"fmt"
	"time"

	"gpu-sketches/internal/config"
	"gpu-sketches/internal/platform"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps a GLFW window. Callbacks only queue events; they run inside
// WaitUntil on the main thread.
type Window struct {
	win     *glfw.Window
	pending []platform.Event
}

// Open creates the window and makes its context current.
// glfw.Init must have been called.
func Open(cfg config.WindowSettings) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	win.MakeContextCurrent()

	// Pacing is done by the frame scheduler
	glfw.SwapInterval(0)

	w := &Window{win: win}
	w.installCallbacks()
	return w, nil
}

func (w *Window) installCallbacks() {
	w.win.SetCloseCallback(func(*glfw.Window) {
		w.push(platform.CloseRequested{})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(platform.Resized{Width: width, Height: height})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(platform.CursorMoved{X: x, Y: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.push(platform.MouseButton{Button: int(button), Action: buttonAction(action)})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		w.push(platform.Key{Key: int(key), Scancode: scancode, Action: buttonAction(action)})
	})
}

func (w *Window) push(ev platform.Event) {
	w.pending = append(w.pending, ev)
}

// WaitUntil blocks until an event arrives or the deadline passes and
// returns the events received since the last call
func (w *Window) WaitUntil(deadline time.Time) []platform.Event {
	if timeout := time.Until(deadline); timeout > 0 {
		glfw.WaitEventsTimeout(timeout.Seconds())
	} else {
		glfw.PollEvents()
	}
	events := w.pending
	w.pending = nil
	return events
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// SwapBuffers presents the back buffer
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// Destroy closes the window
func (w *Window) Destroy() {
	w.win.Destroy()
}

func buttonAction(a glfw.Action) platform.ButtonAction {
	switch a {
	case glfw.Press:
		return platform.Press
	case glfw.Repeat:
		return platform.Repeat
	}
	return platform.Release
}

// Package platform defines the window events the frame loop receives.
package platform

// Event is one window event. The concrete types below are the only
// implementations.
type Event interface {
	isEvent()
}

// CloseRequested is sent when the user asks to close the window
type CloseRequested struct{}

// Resized is sent when the framebuffer size changes
type Resized struct {
	Width, Height int
}

// CursorMoved is sent when the cursor moves over the window
type CursorMoved struct {
	X, Y float64
}

// ButtonAction is a press or release
type ButtonAction int

const (
	Release ButtonAction = iota
	Press
	Repeat
)

// MouseButton is sent when a mouse button changes state
type MouseButton struct {
	Button int
	Action ButtonAction
}

// Key is sent when a keyboard key changes state
type Key struct {
	Key      int
	Scancode int
	Action   ButtonAction
}

func (CloseRequested) isEvent() {}
func (Resized) isEvent()        {}
func (CursorMoved) isEvent()    {}
func (MouseButton) isEvent()    {}
func (Key) isEvent()            {}

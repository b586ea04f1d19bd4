package renderer

import (
	"time"

	"gpu-sketches/internal/graphics"
)

// Renderable is a drawable object driven by the frame loop
type Renderable interface {
	// Update advances animation state by dt
	Update(dt time.Duration) error
	// Render draws with default draw parameters; it is CustomRender with
	// the zero graphics.DrawParameters.
	Render(frame graphics.Frame) error
	// CustomRender draws with explicit draw parameters
	CustomRender(frame graphics.Frame, params graphics.DrawParameters) error
	// Dispose releases GPU resources
	Dispose()
}

// Layer is one renderable in the fixed draw order of a Renderer
type Layer struct {
	// Name is used for profiling
	Name       string
	Renderable Renderable
	// Params overrides the default draw parameters when set
	Params *graphics.DrawParameters
}

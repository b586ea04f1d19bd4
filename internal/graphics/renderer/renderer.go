package renderer

import (
	"fmt"
	"time"

	"gpu-sketches/internal/graphics"
	"gpu-sketches/internal/profiling"
)

// Renderer draws a fixed list of layers into one frame per call
type Renderer struct {
	device     graphics.Device
	layers     []Layer
	clearColor graphics.Color
}

// NewRenderer creates a renderer that draws the layers in the given order,
// later layers on top of earlier ones
func NewRenderer(device graphics.Device, clearColor graphics.Color, layers ...Layer) *Renderer {
	return &Renderer{
		device:     device,
		layers:     layers,
		clearColor: clearColor,
	}
}

// RenderFrame updates every layer by dt, draws them and presents the frame.
// The first error aborts the frame.
func (r *Renderer) RenderFrame(dt time.Duration) error {
	frame := r.device.BeginFrame()
	frame.Clear(r.clearColor)

	for _, l := range r.layers {
		if err := r.update(l, dt); err != nil {
			return err
		}
	}

	for _, l := range r.layers {
		if err := r.draw(l, frame); err != nil {
			return err
		}
	}

	defer profiling.Track("renderer.Finish")()
	if err := frame.Finish(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

func (r *Renderer) update(l Layer, dt time.Duration) error {
	defer profiling.Track(l.Name + ".Update")()
	if err := l.Renderable.Update(dt); err != nil {
		return fmt.Errorf("update %s: %w", l.Name, err)
	}
	return nil
}

func (r *Renderer) draw(l Layer, frame graphics.Frame) error {
	defer profiling.Track(l.Name + ".Render")()
	var err error
	if l.Params != nil {
		err = l.Renderable.CustomRender(frame, *l.Params)
	} else {
		err = l.Renderable.Render(frame)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", l.Name, err)
	}
	return nil
}

// Dispose cleans up all layers in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.layers) - 1; i >= 0; i-- {
		r.layers[i].Renderable.Dispose()
	}
}

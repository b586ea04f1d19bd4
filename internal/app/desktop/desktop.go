// Package desktop wires a GLFW window, the OpenGL device and the frame loop
// together for the programs under cmd/.
package desktop

import (
	"fmt"
	"time"

	"gpu-sketches/internal/app"
	"gpu-sketches/internal/config"
	"gpu-sketches/internal/graphics"
	"gpu-sketches/internal/graphics/glcore"
	"gpu-sketches/internal/graphics/renderer"
	"gpu-sketches/internal/platform/glfwwindow"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SceneFunc builds the layers to draw, in draw order
type SceneFunc func(dev graphics.Device) ([]renderer.Layer, error)

// Run opens the window, builds the scene and runs the frame loop until the
// window is closed. It must be called from the main thread.
func Run(settings config.Settings, scene SceneFunc) error {
	start := time.Now()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := glfwwindow.Open(settings.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := glcore.NewDevice(window)
	if err != nil {
		return err
	}
	defer dev.Dispose()

	layers, err := scene(dev)
	if err != nil {
		return err
	}
	r := renderer.NewRenderer(dev, settings.Frame.Color(), layers...)
	defer r.Dispose()

	loop := app.New(window, r, app.Options{
		Interval:  settings.Frame.FrameInterval(),
		SlowFrame: settings.Frame.SlowFrame(),
		Start:     start,
	})
	return loop.Run()
}

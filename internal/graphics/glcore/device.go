// Package glcore implements graphics.Device on an OpenGL 4.1 core context.
// Every function must be called on the thread that owns the context.
package glcore

import (
	"fmt"
	"log"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Surface is the window the context renders into
type Surface interface {
	FramebufferSize() (width, height int)
	SwapBuffers()
}

// Device owns the GL function pointers and the shared vertex array object
type Device struct {
	surface Surface
	vao     uint32
}

// NewDevice loads the GL function pointers for the current context
func NewDevice(surface Surface) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	d := &Device{surface: surface}
	// Core profile draws need a bound VAO even when no attributes are read
	gl.GenVertexArrays(1, &d.vao)
	return d, nil
}

// BeginFrame starts drawing into the back buffer
func (d *Device) BeginFrame() graphics.Frame {
	w, h := d.surface.FramebufferSize()
	return &Frame{dev: d, width: w, height: h}
}

// Dispose releases the shared vertex array object
func (d *Device) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func checkError(label string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error %s: 0x%x", label, code)
	}
	return nil
}

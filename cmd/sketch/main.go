package main

import (
	"log"
	"runtime"

	"gpu-sketches/assets"
	"gpu-sketches/internal/app/desktop"
	"gpu-sketches/internal/config"
	"gpu-sketches/internal/graphics"
	"gpu-sketches/internal/graphics/renderables/quad"
	"gpu-sketches/internal/graphics/renderables/triangle"
	"gpu-sketches/internal/graphics/renderer"

	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()
	closer.Bind(func() {
		log.Println("sketch: exiting")
	})

	settings, err := config.Load(assets.Settings)
	if err != nil {
		closer.Fatalln(err)
	}

	if err := desktop.Run(settings, scene(settings.Quad)); err != nil {
		closer.Fatalln(err)
	}
}

// scene draws the quad first so the triangle ends up on top
func scene(qs config.QuadSettings) desktop.SceneFunc {
	return func(dev graphics.Device) ([]renderer.Layer, error) {
		newQuad := quad.NewProcedural
		if qs.Variant == config.QuadBuffered {
			newQuad = quad.NewBuffered
		}
		q, err := newQuad(dev, assets.FS, qs.Texture)
		if err != nil {
			return nil, err
		}

		tri, err := triangle.New(dev, assets.FS)
		if err != nil {
			q.Dispose()
			return nil, err
		}

		params := qs.DrawParameters()
		log.Printf("quad: %s variant, viewport %v, culling %v", qs.Variant, params.Viewport, params.Culling)

		return []renderer.Layer{
			{Name: "quad", Renderable: q, Params: &params},
			{Name: "triangle", Renderable: tri},
		}, nil
	}
}

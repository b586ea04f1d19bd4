package main

import (
	"log"
	"runtime"

	"gpu-sketches/assets"
	"gpu-sketches/internal/app/desktop"
	"gpu-sketches/internal/config"
	"gpu-sketches/internal/graphics"
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
		log.Println("triangle: exiting")
	})

	settings, err := config.Load(assets.Settings)
	if err != nil {
		closer.Fatalln(err)
	}
	settings.Window.Title = "gpu-sketches - triangle"

	err = desktop.Run(settings, func(dev graphics.Device) ([]renderer.Layer, error) {
		tri, err := triangle.New(dev, assets.FS)
		if err != nil {
			return nil, err
		}
		return []renderer.Layer{{Name: "triangle", Renderable: tri}}, nil
	})
	if err != nil {
		closer.Fatalln(err)
	}
}

package config

import (
	"fmt"
	"math"
	"time"

	"gpu-sketches/internal/graphics"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
)

// Quad variants
const (
	QuadProcedural = "procedural"
	QuadBuffered   = "buffered"
)

// Settings holds everything the programs read at startup
type Settings struct {
	Window WindowSettings `toml:"window"`
	Frame  FrameSettings  `toml:"frame"`
	Quad   QuadSettings   `toml:"quad"`
}

type WindowSettings struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type FrameSettings struct {
	TargetFPS   int        `toml:"target_fps"`
	ClearColor  [4]float32 `toml:"clear_color"`
	SlowFrameMS int        `toml:"slow_frame_ms"`
}

type QuadSettings struct {
	Variant  string           `toml:"variant"`
	Texture  string           `toml:"texture"`
	Culling  string           `toml:"culling"`
	Viewport *ViewportSetting `toml:"viewport"`
}

type ViewportSetting struct {
	Left   int `toml:"left"`
	Bottom int `toml:"bottom"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the settings used when a key is absent
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Title:     "gpu-sketches",
			Width:     800,
			Height:    600,
			Resizable: true,
		},
		Frame: FrameSettings{
			TargetFPS:   60,
			ClearColor:  [4]float32{0, 0, 1, 1},
			SlowFrameMS: 16,
		},
		Quad: QuadSettings{
			Variant: QuadProcedural,
			Texture: "textures/checker.png",
			Culling: "disabled",
		},
	}
}

// Load decodes TOML data over the defaults, clamps numeric values and
// rejects unknown enum values
func Load(data []byte) (Settings, error) {
	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("could not parse settings: %w", err)
	}

	// Clamp to reasonable values
	s.Window.Width = clamp(s.Window.Width, 64, 7680)
	s.Window.Height = clamp(s.Window.Height, 64, 4320)
	s.Frame.TargetFPS = clamp(s.Frame.TargetFPS, 1, 480)
	if s.Frame.SlowFrameMS < 0 {
		s.Frame.SlowFrameMS = 0
	}
	for i, c := range s.Frame.ClearColor {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return Settings{}, fmt.Errorf("clear_color[%d] is not a finite number", i)
		}
		s.Frame.ClearColor[i] = math32.Max(0, math32.Min(c, 1))
	}

	switch s.Quad.Variant {
	case QuadProcedural, QuadBuffered:
	default:
		return Settings{}, fmt.Errorf("unknown quad variant %q", s.Quad.Variant)
	}
	if _, err := ParseCullMode(s.Quad.Culling); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// FrameInterval is the wait between frames for the target rate
func (f FrameSettings) FrameInterval() time.Duration {
	return time.Duration(math.Round(float64(time.Second) / float64(f.TargetFPS)))
}

// SlowFrame is the processing time above which a frame is logged
func (f FrameSettings) SlowFrame() time.Duration {
	return time.Duration(f.SlowFrameMS) * time.Millisecond
}

// Color returns the clear colour
func (f FrameSettings) Color() graphics.Color {
	return graphics.Color(f.ClearColor)
}

// DrawParameters converts the quad settings into per-draw parameters
func (q QuadSettings) DrawParameters() graphics.DrawParameters {
	mode, _ := ParseCullMode(q.Culling)
	p := graphics.DrawParameters{Culling: mode}
	if vp := q.Viewport; vp != nil {
		p.Viewport = &graphics.Rect{Left: vp.Left, Bottom: vp.Bottom, Width: vp.Width, Height: vp.Height}
	}
	return p
}

// ParseCullMode maps a settings string to a cull mode
func ParseCullMode(s string) (graphics.CullMode, error) {
	for _, m := range []graphics.CullMode{graphics.CullingDisabled, graphics.CullClockwise, graphics.CullCounterClockwise} {
		if m.String() == s {
			return m, nil
		}
	}
	if s == "" {
		return graphics.CullingDisabled, nil
	}
	return 0, fmt.Errorf("unknown culling mode %q", s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

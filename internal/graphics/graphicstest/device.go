// Package graphicstest provides an in-memory graphics.Device that records
// draw calls instead of talking to a GPU.
package graphicstest

import (
	"errors"
	"fmt"
	"image"
	"regexp"

	"gpu-sketches/internal/graphics"
)

var (
	attributeRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
	uniformRe   = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)
	mainRe      = regexp.MustCompile(`void\s+main\s*\(`)
)

var attributeTypes = map[string]graphics.AttributeType{
	"float": graphics.AttributeFloat,
	"vec2":  graphics.AttributeVec2,
	"vec3":  graphics.AttributeVec3,
	"vec4":  graphics.AttributeVec4,
}

var uniformTypes = map[string]graphics.UniformType{
	"float":     graphics.UniformFloat,
	"vec2":      graphics.UniformVec2,
	"vec4":      graphics.UniformVec4,
	"sampler2D": graphics.UniformSampler2D,
}

// Device is a recording graphics.Device
type Device struct {
	// Frames holds every frame handed out by BeginFrame
	Frames []*Frame
	// FailMap makes every subsequent buffer Map and Read fail
	FailMap bool

	Programs []*Program
	Textures []*Texture
}

// NewDevice returns an empty recording device
func NewDevice() *Device {
	return &Device{}
}

// NewProgram reflects attributes and uniforms from the GLSL source.
// Sources without a main function fail to "compile".
func (d *Device) NewProgram(src graphics.ShaderSource) (graphics.Program, error) {
	if !mainRe.MatchString(src.Vertex) {
		return nil, errors.New("failed to compile shader: vertex stage has no main")
	}
	if !mainRe.MatchString(src.Fragment) {
		return nil, errors.New("failed to compile shader: fragment stage has no main")
	}

	p := &Program{Source: src}
	for _, m := range attributeRe.FindAllStringSubmatch(src.Vertex, -1) {
		t, ok := attributeTypes[m[1]]
		if !ok {
			return nil, fmt.Errorf("failed to compile shader: unsupported attribute type %s", m[1])
		}
		p.info.Attributes = append(p.info.Attributes, graphics.Attribute{Name: m[2], Type: t})
	}
	seen := map[string]bool{}
	for _, stage := range []string{src.Vertex, src.Fragment} {
		for _, m := range uniformRe.FindAllStringSubmatch(stage, -1) {
			if seen[m[2]] {
				continue
			}
			seen[m[2]] = true
			t, ok := uniformTypes[m[1]]
			if !ok {
				t = graphics.UniformOther
			}
			p.info.Uniforms = append(p.info.Uniforms, graphics.UniformInfo{Name: m[2], Type: t})
		}
	}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *Device) NewVertexBuffer(vertices []graphics.Vertex, usage graphics.BufferUsage) (graphics.VertexBuffer, error) {
	data := make([]graphics.Vertex, len(vertices))
	copy(data, vertices)
	return &VertexBuffer{dev: d, Data: data, Usage: usage}, nil
}

func (d *Device) NewIndexBuffer(primitive graphics.PrimitiveType, indices []uint16) (graphics.IndexBuffer, error) {
	data := make([]uint16, len(indices))
	copy(data, indices)
	return &IndexBuffer{primitive: primitive, data: data}, nil
}

func (d *Device) NewTexture2D(img *image.NRGBA, mipmaps bool) (graphics.Texture2D, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	t := &Texture{Image: img, Mipmaps: mipmaps}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) BeginFrame() graphics.Frame {
	f := &Frame{}
	d.Frames = append(d.Frames, f)
	return f
}

// Program is a reflected, never-linked program
type Program struct {
	Source   graphics.ShaderSource
	info     graphics.ProgramInfo
	Disposed bool
}

func (p *Program) Info() graphics.ProgramInfo { return p.info }
func (p *Program) Dispose()                   { p.Disposed = true }

// VertexBuffer keeps its data in client memory
type VertexBuffer struct {
	dev      *Device
	Data     []graphics.Vertex
	Usage    graphics.BufferUsage
	Maps     int
	Disposed bool
}

func (b *VertexBuffer) Len() int                     { return len(b.Data) }
func (b *VertexBuffer) Format() graphics.VertexFormat { return graphics.VertexLayout }

func (b *VertexBuffer) Read() ([]graphics.Vertex, error) {
	if b.dev.FailMap {
		return nil, graphics.ErrBufferMap
	}
	out := make([]graphics.Vertex, len(b.Data))
	copy(out, b.Data)
	return out, nil
}

func (b *VertexBuffer) Map(fn func([]graphics.Vertex) error) error {
	if b.dev.FailMap {
		return graphics.ErrBufferMap
	}
	b.Maps++
	return fn(b.Data)
}

func (b *VertexBuffer) Dispose() { b.Disposed = true }

// IndexBuffer keeps its data in client memory
type IndexBuffer struct {
	primitive graphics.PrimitiveType
	data      []uint16
	Disposed  bool
}

func (b *IndexBuffer) Primitive() graphics.PrimitiveType { return b.primitive }
func (b *IndexBuffer) Indices() []uint16                 { return b.data }
func (b *IndexBuffer) Dispose()                          { b.Disposed = true }

// Texture records the uploaded image
type Texture struct {
	Image    *image.NRGBA
	Mipmaps  bool
	Disposed bool
}

func (t *Texture) Width() int  { return t.Image.Bounds().Dx() }
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }
func (t *Texture) Dispose()    { t.Disposed = true }

// Frame records clears and validated draw calls
type Frame struct {
	Clears   []graphics.Color
	Draws    []graphics.DrawCall
	Finished bool
}

func (f *Frame) Clear(c graphics.Color) {
	f.Clears = append(f.Clears, c)
}

func (f *Frame) Draw(call graphics.DrawCall) error {
	if f.Finished {
		return errors.New("draw on finished frame")
	}
	if err := graphics.ValidateDraw(call); err != nil {
		return err
	}
	f.Draws = append(f.Draws, call)
	return nil
}

func (f *Frame) Finish() error {
	if f.Finished {
		return errors.New("frame already finished")
	}
	f.Finished = true
	return nil
}

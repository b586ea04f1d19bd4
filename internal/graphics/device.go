package graphics

import (
	"image"
)

// ShaderSource is the GLSL source of a vertex and fragment stage pair
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// UniformInfo describes an active uniform of a linked program
type UniformInfo struct {
	Name string
	Type UniformType
}

// ProgramInfo is the reflected interface of a linked program
type ProgramInfo struct {
	Attributes []Attribute
	Uniforms   []UniformInfo
}

// Program is a linked vertex+fragment shader program
type Program interface {
	Info() ProgramInfo
	Dispose()
}

// VertexBuffer is GPU-resident vertex data
type VertexBuffer interface {
	Len() int
	Format() VertexFormat
	// Read copies the current buffer contents back from the GPU
	Read() ([]Vertex, error)
	// Map exposes the buffer contents for reading and writing for the
	// duration of fn. Changes made by fn are written back before Map returns.
	Map(fn func(vertices []Vertex) error) error
	Dispose()
}

// IndexBuffer is GPU-resident primitive connectivity
type IndexBuffer interface {
	Primitive() PrimitiveType
	Indices() []uint16
	Dispose()
}

// Texture2D is a GPU-resident RGBA texture
type Texture2D interface {
	Width() int
	Height() int
	Dispose()
}

// Frame is the back buffer of one iteration of the frame loop
type Frame interface {
	Clear(c Color)
	Draw(call DrawCall) error
	// Finish presents the frame. The frame must not be used afterwards.
	Finish() error
}

// Device allocates GPU resources and hands out frames
type Device interface {
	NewProgram(src ShaderSource) (Program, error)
	NewVertexBuffer(vertices []Vertex, usage BufferUsage) (VertexBuffer, error)
	NewIndexBuffer(primitive PrimitiveType, indices []uint16) (IndexBuffer, error)
	NewTexture2D(img *image.NRGBA, mipmaps bool) (Texture2D, error)
	BeginFrame() Frame
}

// DrawCall is everything needed to issue one draw
type DrawCall struct {
	Primitive PrimitiveType
	// Vertices may be nil, in which case VertexCount vertices are
	// synthesized by the vertex shader from gl_VertexID.
	Vertices    VertexBuffer
	VertexCount int
	Indices     IndexBuffer
	Program     Program
	Uniforms    Uniforms
	Params      DrawParameters
}

// Count returns the number of vertices the draw call emits
func (c DrawCall) Count() int {
	switch {
	case c.Indices != nil:
		return len(c.Indices.Indices())
	case c.Vertices != nil:
		return c.Vertices.Len()
	}
	return c.VertexCount
}

package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single 2D vertex as it is laid out in a vertex buffer
type Vertex struct {
	Position mgl32.Vec2
}

// VertexSize is the stride of Vertex in bytes
const VertexSize = 2 * 4

// AttributeType is the GLSL type of a vertex attribute
type AttributeType int

const (
	AttributeFloat AttributeType = iota
	AttributeVec2
	AttributeVec3
	AttributeVec4
)

func (t AttributeType) String() string {
	switch t {
	case AttributeFloat:
		return "float"
	case AttributeVec2:
		return "vec2"
	case AttributeVec3:
		return "vec3"
	case AttributeVec4:
		return "vec4"
	}
	return "unknown"
}

// Components returns the number of float components of the type
func (t AttributeType) Components() int32 {
	return int32(t) + 1
}

// Attribute describes one named vertex attribute
type Attribute struct {
	Name   string
	Type   AttributeType
	Offset int
}

// VertexFormat describes the attributes stored in a vertex buffer
type VertexFormat []Attribute

// Lookup returns the attribute with the given name
func (f VertexFormat) Lookup(name string) (Attribute, bool) {
	for _, a := range f {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// VertexLayout is the format of Vertex
var VertexLayout = VertexFormat{
	{Name: "position", Type: AttributeVec2, Offset: 0},
}

// PrimitiveType is the primitive topology of a draw call
type PrimitiveType int

const (
	TrianglesList PrimitiveType = iota
	TriangleStrip
	LinesList
)

// BufferUsage is a hint about how often buffer contents change
type BufferUsage int

const (
	UsageStatic BufferUsage = iota
	UsageDynamic
)

// Rect is a viewport rectangle in framebuffer pixels, origin bottom-left
type Rect struct {
	Left   int
	Bottom int
	Width  int
	Height int
}

// CullMode selects which faces are discarded by the rasterizer
type CullMode int

const (
	CullingDisabled CullMode = iota
	CullClockwise
	CullCounterClockwise
)

func (m CullMode) String() string {
	switch m {
	case CullingDisabled:
		return "disabled"
	case CullClockwise:
		return "clockwise"
	case CullCounterClockwise:
		return "counter_clockwise"
	}
	return "unknown"
}

// DrawParameters overrides rasterizer state for a single draw call.
// The zero value draws to the whole framebuffer without culling.
type DrawParameters struct {
	Viewport *Rect
	Culling  CullMode
}

// Color is an RGBA clear colour
type Color = mgl32.Vec4

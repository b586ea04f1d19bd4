package quad

import (
	"fmt"
	"io/fs"
	"time"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "shaders/quad"

	// ProceduralVertexCount is the number of vertices the procedural
	// vertex shader synthesizes: two triangles
	ProceduralVertexCount = 6
)

var (
	BufferedVertShader   = ShadersDir + "/buffered.vert"
	ProceduralVertShader = ShadersDir + "/procedural.vert"
	FragShader           = ShadersDir + "/quad.frag"
)

// Vertices are the corners of the buffered variant, clockwise from bottom-left
var Vertices = []graphics.Vertex{
	{Position: mgl32.Vec2{-0.5, -0.5}},
	{Position: mgl32.Vec2{-0.5, 0.5}},
	{Position: mgl32.Vec2{0.5, 0.5}},
	{Position: mgl32.Vec2{0.5, -0.5}},
}

// Indices split the buffered quad into two clockwise triangles
var Indices = []uint16{0, 1, 2, 0, 2, 3}

// Quad is a static textured square
type Quad struct {
	program  graphics.Program
	texture  graphics.Texture2D
	vertices graphics.VertexBuffer
	indices  graphics.IndexBuffer
}

// NewBuffered builds a quad drawn from a 4-vertex buffer and a 6-index buffer
func NewBuffered(dev graphics.Device, fsys fs.FS, texturePath string) (*Quad, error) {
	q, err := newQuad(dev, fsys, BufferedVertShader, texturePath)
	if err != nil {
		return nil, err
	}

	q.vertices, err = dev.NewVertexBuffer(Vertices, graphics.UsageStatic)
	if err != nil {
		q.Dispose()
		return nil, fmt.Errorf("quad vertex buffer: %w", err)
	}
	q.indices, err = dev.NewIndexBuffer(graphics.TrianglesList, Indices)
	if err != nil {
		q.Dispose()
		return nil, fmt.Errorf("quad index buffer: %w", err)
	}
	return q, nil
}

// NewProcedural builds a quad without vertex data; the vertex shader
// derives corners and texture coordinates from gl_VertexID
func NewProcedural(dev graphics.Device, fsys fs.FS, texturePath string) (*Quad, error) {
	return newQuad(dev, fsys, ProceduralVertShader, texturePath)
}

func newQuad(dev graphics.Device, fsys fs.FS, vertShader, texturePath string) (*Quad, error) {
	tex, err := graphics.LoadTexture(dev, fsys, texturePath)
	if err != nil {
		return nil, err
	}
	program, err := graphics.NewProgramFromFS(dev, fsys, vertShader, FragShader)
	if err != nil {
		tex.Dispose()
		return nil, err
	}
	return &Quad{program: program, texture: tex}, nil
}

// Update is a no-op; the quad is static
func (q *Quad) Update(time.Duration) error {
	return nil
}

func (q *Quad) Render(frame graphics.Frame) error {
	return q.CustomRender(frame, graphics.DrawParameters{})
}

func (q *Quad) CustomRender(frame graphics.Frame, params graphics.DrawParameters) error {
	call := graphics.DrawCall{
		Primitive: graphics.TrianglesList,
		Program:   q.program,
		Uniforms: graphics.Uniforms{
			"tex": graphics.Sampler2D{Texture: q.texture},
		},
		Params: params,
	}
	if q.vertices != nil {
		call.Vertices = q.vertices
		call.Indices = q.indices
	} else {
		call.VertexCount = ProceduralVertexCount
	}
	return frame.Draw(call)
}

// Dispose releases every GPU resource the quad owns
func (q *Quad) Dispose() {
	if q.indices != nil {
		q.indices.Dispose()
	}
	if q.vertices != nil {
		q.vertices.Dispose()
	}
	if q.program != nil {
		q.program.Dispose()
	}
	if q.texture != nil {
		q.texture.Dispose()
	}
}

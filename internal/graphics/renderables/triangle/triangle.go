package triangle

import (
	"fmt"
	"io/fs"
	"math"
	"time"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "shaders/triangle"
)

var (
	VertShader = ShadersDir + "/triangle.vert"
	FragShader = ShadersDir + "/triangle.frag"
)

// Vertices is the initial shape; only vertex 0's X is animated
var Vertices = []graphics.Vertex{
	{Position: mgl32.Vec2{-0.5, -0.5}},
	{Position: mgl32.Vec2{0.0, 0.5}},
	{Position: mgl32.Vec2{0.5, -0.25}},
}

// Triangle is a red triangle whose first vertex oscillates horizontally
type Triangle struct {
	program  graphics.Program
	vertices graphics.VertexBuffer
	elapsed  time.Duration
}

// New compiles the triangle shaders from fsys and uploads the vertices
func New(dev graphics.Device, fsys fs.FS) (*Triangle, error) {
	program, err := graphics.NewProgramFromFS(dev, fsys, VertShader, FragShader)
	if err != nil {
		return nil, err
	}

	vb, err := dev.NewVertexBuffer(Vertices, graphics.UsageDynamic)
	if err != nil {
		program.Dispose()
		return nil, fmt.Errorf("triangle vertex buffer: %w", err)
	}

	return &Triangle{program: program, vertices: vb}, nil
}

// Update sets vertex 0's X to the cosine of the total elapsed nanoseconds
// taken as a float32. The clock only advances once the buffer is written.
func (t *Triangle) Update(dt time.Duration) error {
	elapsed := t.elapsed + dt
	// float32 argument, float64 reduction: nanosecond counts are far past
	// the range where single precision range reduction stays accurate
	x := float32(math.Cos(float64(float32(elapsed.Nanoseconds()))))

	err := t.vertices.Map(func(v []graphics.Vertex) error {
		v[0].Position[0] = x
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read triangle vertex buffer: %w", err)
	}
	t.elapsed = elapsed
	return nil
}

func (t *Triangle) Render(frame graphics.Frame) error {
	return t.CustomRender(frame, graphics.DrawParameters{})
}

func (t *Triangle) CustomRender(frame graphics.Frame, params graphics.DrawParameters) error {
	return frame.Draw(graphics.DrawCall{
		Primitive: graphics.TrianglesList,
		Vertices:  t.vertices,
		Program:   t.program,
		Params:    params,
	})
}

// Elapsed returns the animation time accumulated by Update
func (t *Triangle) Elapsed() time.Duration {
	return t.elapsed
}

// Dispose releases the buffer and program
func (t *Triangle) Dispose() {
	t.vertices.Dispose()
	t.program.Dispose()
}

package triangle_test

import (
	"math"
	"testing"
	"time"

	"gpu-sketches/assets"
	"gpu-sketches/internal/graphics"
	"gpu-sketches/internal/graphics/graphicstest"
	"gpu-sketches/internal/graphics/renderables/triangle"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func newTriangle(t *testing.T) (*triangle.Triangle, *graphicstest.Device) {
	t.Helper()
	dev := graphicstest.NewDevice()
	tri, err := triangle.New(dev, assets.FS)
	require.NoError(t, err)
	return tri, dev
}

func readFromFrame(t *testing.T, frame graphics.Frame) []graphics.Vertex {
	t.Helper()
	f := frame.(*graphicstest.Frame)
	require.NotEmpty(t, f.Draws)
	vs, err := f.Draws[len(f.Draws)-1].Vertices.Read()
	require.NoError(t, err)
	return vs
}

func TestNewUploadsShape(t *testing.T) {
	tri, dev := newTriangle(t)

	frame := dev.BeginFrame()
	require.NoError(t, tri.Render(frame))
	vs := readFromFrame(t, frame)
	assert.Equal(t, triangle.Vertices, vs)

	prog := dev.Programs[0]
	assert.Equal(t, []graphics.Attribute{{Name: "position", Type: graphics.AttributeVec2}}, prog.Info().Attributes)
	assert.Empty(t, prog.Info().Uniforms)
}

func TestUpdateZeroAndOneSecond(t *testing.T) {
	tri, dev := newTriangle(t)

	require.NoError(t, tri.Update(0))
	frame := dev.BeginFrame()
	require.NoError(t, tri.Render(frame))
	assert.Equal(t, float32(1.0), readFromFrame(t, frame)[0].Position.X())

	require.NoError(t, tri.Update(time.Second))
	frame = dev.BeginFrame()
	require.NoError(t, tri.Render(frame))
	want := float32(math.Cos(1e9))
	assert.InDelta(t, want, readFromFrame(t, frame)[0].Position.X(), epsilon)
}

func TestUpdateDependsOnlyOnTotalElapsed(t *testing.T) {
	steps := []time.Duration{
		3 * time.Millisecond,
		16 * time.Millisecond,
		17 * time.Millisecond,
		250 * time.Millisecond,
		time.Second,
	}

	a, devA := newTriangle(t)
	var total time.Duration
	for _, d := range steps {
		require.NoError(t, a.Update(d))
		total += d
	}

	b, devB := newTriangle(t)
	require.NoError(t, b.Update(total))

	assert.Equal(t, total, a.Elapsed())

	fa, fb := devA.BeginFrame(), devB.BeginFrame()
	require.NoError(t, a.Render(fa))
	require.NoError(t, b.Render(fb))
	xa := readFromFrame(t, fa)[0].Position.X()
	xb := readFromFrame(t, fb)[0].Position.X()

	assert.Equal(t, xb, xa)
	assert.InDelta(t, math.Cos(float64(float32(total.Nanoseconds()))), float64(xa), epsilon)
}

func TestUpdateOnlyTouchesFirstX(t *testing.T) {
	tri, dev := newTriangle(t)

	for i := 0; i < 100; i++ {
		require.NoError(t, tri.Update(time.Duration(i)*time.Millisecond+123))
	}

	frame := dev.BeginFrame()
	require.NoError(t, tri.Render(frame))
	vs := readFromFrame(t, frame)
	require.Len(t, vs, 3)
	assert.Equal(t, triangle.Vertices[0].Position.Y(), vs[0].Position.Y())
	assert.Equal(t, triangle.Vertices[1], vs[1])
	assert.Equal(t, triangle.Vertices[2], vs[2])
	// the package-level shape is never written through
	assert.Equal(t, mgl32.Vec2{-0.5, -0.5}, triangle.Vertices[0].Position)
}

func TestUpdateMapFailure(t *testing.T) {
	tri, dev := newTriangle(t)
	dev.FailMap = true

	err := tri.Update(time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, graphics.ErrBufferMap)
	assert.Contains(t, err.Error(), "could not read triangle vertex buffer")
	assert.Zero(t, tri.Elapsed())

	// the failed step is not counted once mapping works again
	dev.FailMap = false
	require.NoError(t, tri.Update(time.Second))
	assert.Equal(t, time.Second, tri.Elapsed())

	frame := dev.BeginFrame()
	require.NoError(t, tri.Render(frame))
	assert.InDelta(t, math.Cos(1e9), float64(readFromFrame(t, frame)[0].Position.X()), epsilon)
}

func TestUpdateLargeElapsed(t *testing.T) {
	for _, elapsed := range []time.Duration{
		0,
		time.Second,
		time.Minute,
		time.Hour,
		10 * time.Hour,
	} {
		t.Run(elapsed.String(), func(t *testing.T) {
			tri, dev := newTriangle(t)
			require.NoError(t, tri.Update(elapsed))

			frame := dev.BeginFrame()
			require.NoError(t, tri.Render(frame))
			x := readFromFrame(t, frame)[0].Position.X()

			want := math.Cos(float64(float32(elapsed.Nanoseconds())))
			require.False(t, math.IsNaN(float64(x)))
			assert.InDelta(t, want, float64(x), epsilon)
		})
	}
}

func TestRenderMatchesDefaultCustomRender(t *testing.T) {
	tri, dev := newTriangle(t)

	f1 := dev.BeginFrame().(*graphicstest.Frame)
	f2 := dev.BeginFrame().(*graphicstest.Frame)
	require.NoError(t, tri.Render(f1))
	require.NoError(t, tri.CustomRender(f2, graphics.DrawParameters{}))

	require.Len(t, f1.Draws, 1)
	require.Len(t, f2.Draws, 1)
	assert.Equal(t, f2.Draws[0], f1.Draws[0])

	call := f1.Draws[0]
	assert.Equal(t, graphics.TrianglesList, call.Primitive)
	assert.Nil(t, call.Indices)
	assert.Equal(t, 3, call.Count())
}

func TestCustomRenderPassesParameters(t *testing.T) {
	tri, dev := newTriangle(t)
	params := graphics.DrawParameters{
		Viewport: &graphics.Rect{Left: 10, Bottom: 20, Width: 30, Height: 40},
		Culling:  graphics.CullClockwise,
	}

	f := dev.BeginFrame().(*graphicstest.Frame)
	require.NoError(t, tri.CustomRender(f, params))
	assert.Equal(t, params, f.Draws[0].Params)
}

func TestDispose(t *testing.T) {
	tri, dev := newTriangle(t)
	f := dev.BeginFrame().(*graphicstest.Frame)
	require.NoError(t, tri.Render(f))

	tri.Dispose()
	assert.True(t, dev.Programs[0].Disposed)
	assert.True(t, f.Draws[0].Vertices.(*graphicstest.VertexBuffer).Disposed)
}

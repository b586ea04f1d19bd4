package app_test

import (
	"errors"
	"testing"
	"time"

	"gpu-sketches/assets"
	"gpu-sketches/internal/app"
	"gpu-sketches/internal/graphics"
	"gpu-sketches/internal/graphics/graphicstest"
	"gpu-sketches/internal/graphics/renderables/quad"
	"gpu-sketches/internal/graphics/renderables/triangle"
	"gpu-sketches/internal/graphics/renderer"
	"gpu-sketches/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interval = 16666667 * time.Nanosecond

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

// fakeWindow replays one batch of events per wait and jumps the clock to
// the deadline, like a timer that fires on time
type fakeWindow struct {
	clock     *fakeClock
	batches   [][]platform.Event
	deadlines []time.Time
}

func (w *fakeWindow) WaitUntil(deadline time.Time) []platform.Event {
	w.deadlines = append(w.deadlines, deadline)
	if deadline.After(w.clock.t) {
		w.clock.t = deadline
	}
	if len(w.batches) == 0 {
		return nil
	}
	evs := w.batches[0]
	w.batches = w.batches[1:]
	return evs
}

type fakeRenderer struct {
	clock  *fakeClock
	cost   time.Duration
	deltas []time.Duration
	err    error
}

func (r *fakeRenderer) RenderFrame(dt time.Duration) error {
	r.deltas = append(r.deltas, dt)
	r.clock.t = r.clock.t.Add(r.cost)
	return r.err
}

func closeAfter(frames int) [][]platform.Event {
	batches := make([][]platform.Event, frames)
	batches[frames-1] = []platform.Event{platform.CloseRequested{}}
	return batches
}

func TestRunStopsOnCloseRequest(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	win := &fakeWindow{clock: clock, batches: closeAfter(3)}
	r := &fakeRenderer{clock: clock}

	a := app.New(win, r, app.Options{Interval: interval, Now: clock.Now})
	assert.Equal(t, app.StateRunning, a.State())

	require.NoError(t, a.Run())
	assert.Equal(t, app.StateTerminating, a.State())
	assert.Equal(t, 3, a.Frames())
	assert.Len(t, r.deltas, 3)
}

func TestRunMeasuresDeltaBetweenFrames(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	win := &fakeWindow{clock: clock, batches: closeAfter(4)}
	r := &fakeRenderer{clock: clock}

	a := app.New(win, r, app.Options{Interval: interval, Now: clock.Now})
	// setup latency before the loop starts counts towards the first delta
	clock.t = clock.t.Add(250 * time.Millisecond)

	require.NoError(t, a.Run())
	assert.Equal(t, []time.Duration{250 * time.Millisecond, interval, interval, interval}, r.deltas)

	start := time.Unix(1000, 0).Add(250 * time.Millisecond)
	for i, d := range win.deadlines {
		assert.Equal(t, start.Add(time.Duration(i+1)*interval), d)
	}
}

func TestRunFirstDeltaFromStart(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	setupBegan := clock.t
	// window, device and scene creation happen before New
	clock.t = clock.t.Add(400 * time.Millisecond)

	win := &fakeWindow{clock: clock, batches: closeAfter(2)}
	r := &fakeRenderer{clock: clock}
	a := app.New(win, r, app.Options{Interval: interval, Start: setupBegan, Now: clock.Now})
	clock.t = clock.t.Add(100 * time.Millisecond)

	require.NoError(t, a.Run())
	assert.Equal(t, []time.Duration{500 * time.Millisecond, interval}, r.deltas)
}

func TestIgnoredEventsKeepRunning(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	win := &fakeWindow{clock: clock, batches: [][]platform.Event{
		{platform.Resized{Width: 1920, Height: 1080}},
		{platform.CursorMoved{X: 1, Y: 2}, platform.MouseButton{Button: 0, Action: platform.Press}},
		{platform.Key{Key: 256, Action: platform.Release}},
		{platform.CloseRequested{}},
	}}
	r := &fakeRenderer{clock: clock}

	a := app.New(win, r, app.Options{Interval: interval, Now: clock.Now})
	require.NoError(t, a.Run())
	assert.Equal(t, 4, a.Frames())
}

func TestHandleEvent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	a := app.New(&fakeWindow{clock: clock}, &fakeRenderer{clock: clock}, app.Options{Interval: interval, Now: clock.Now})

	a.HandleEvent(platform.Resized{Width: 10, Height: 10})
	assert.Equal(t, app.StateRunning, a.State())
	a.HandleEvent(platform.CloseRequested{})
	assert.Equal(t, app.StateTerminating, a.State())
	assert.Equal(t, "terminating", a.State().String())
}

func TestRunReturnsRenderError(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	boom := errors.New("draw failed")
	r := &fakeRenderer{clock: clock, err: boom}
	win := &fakeWindow{clock: clock}

	a := app.New(win, r, app.Options{Interval: interval, Now: clock.Now})
	assert.ErrorIs(t, a.Run(), boom)
	assert.Zero(t, a.Frames())
	assert.Empty(t, win.deadlines)
}

func TestSlowFrameStillPresented(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	win := &fakeWindow{clock: clock, batches: closeAfter(2)}
	r := &fakeRenderer{clock: clock, cost: 40 * time.Millisecond}

	a := app.New(win, r, app.Options{Interval: interval, SlowFrame: 16 * time.Millisecond, Now: clock.Now})
	require.NoError(t, a.Run())
	assert.Equal(t, 2, a.Frames())
	// the second frame starts right after the late first one
	assert.Equal(t, 40*time.Millisecond, r.deltas[1])
}

func TestSceneDrawsQuadUnderTriangle(t *testing.T) {
	dev := graphicstest.NewDevice()
	q, err := quad.NewProcedural(dev, assets.FS, "textures/checker.png")
	require.NoError(t, err)
	tri, err := triangle.New(dev, assets.FS)
	require.NoError(t, err)

	params := graphics.DrawParameters{
		Viewport: &graphics.Rect{Width: 100, Height: 100},
		Culling:  graphics.CullCounterClockwise,
	}
	r := renderer.NewRenderer(dev, graphics.Color{0, 0, 1, 1},
		renderer.Layer{Name: "quad", Renderable: q, Params: &params},
		renderer.Layer{Name: "triangle", Renderable: tri},
	)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	win := &fakeWindow{clock: clock, batches: closeAfter(2)}
	a := app.New(win, r, app.Options{Interval: interval, Now: clock.Now})
	require.NoError(t, a.Run())

	require.Len(t, dev.Frames, 2)
	for _, f := range dev.Frames {
		assert.True(t, f.Finished)
		require.Len(t, f.Draws, 2)
		assert.Equal(t, quad.ProceduralVertexCount, f.Draws[0].VertexCount)
		assert.Equal(t, params, f.Draws[0].Params)
		assert.NotNil(t, f.Draws[1].Vertices)
		assert.Equal(t, graphics.DrawParameters{}, f.Draws[1].Params)
	}
	assert.Equal(t, interval, tri.Elapsed())
}

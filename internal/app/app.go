package app

import (
	"log"
	"time"

	"gpu-sketches/internal/graphics/renderer"
	"gpu-sketches/internal/platform"
	"gpu-sketches/internal/profiling"
)

// State is the state of the frame loop
type State int

const (
	StateRunning State = iota
	StateTerminating
)

func (s State) String() string {
	if s == StateTerminating {
		return "terminating"
	}
	return "running"
}

// Window is the part of the windowing layer the frame loop drives
type Window interface {
	// WaitUntil blocks until an event arrives or deadline passes and
	// returns the events received meanwhile
	WaitUntil(deadline time.Time) []platform.Event
}

// FrameRenderer draws and presents one frame
type FrameRenderer interface {
	RenderFrame(dt time.Duration) error
}

var _ FrameRenderer = (*renderer.Renderer)(nil)

// Options tune the frame loop
type Options struct {
	Interval  time.Duration
	SlowFrame time.Duration
	// Start is when setup began. The first frame's delta is measured from
	// it; zero means from New.
	Start time.Time
	// Now replaces time.Now, for tests
	Now func() time.Time
}

// App is the frame loop driver: it owns the timing state, renders one
// frame per tick and stops on a close request
type App struct {
	window    Window
	renderer  FrameRenderer
	scheduler *FrameScheduler
	slowFrame time.Duration
	now       func() time.Time

	state    State
	lastTime time.Time
	frames   int
}

// New creates a frame loop. The first frame's delta is measured from
// opts.Start, or from here when it is unset, so it includes the setup done
// before Run.
func New(window Window, r FrameRenderer, opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	start := opts.Start
	if start.IsZero() {
		start = now()
	}
	return &App{
		window:    window,
		renderer:  r,
		scheduler: NewFrameScheduler(opts.Interval),
		slowFrame: opts.SlowFrame,
		now:       now,
		state:     StateRunning,
		lastTime:  start,
	}
}

// Run draws frames until the window asks to close. Any error aborts the loop.
func (a *App) Run() error {
	for a.state == StateRunning {
		start := a.now()
		if err := a.tick(start); err != nil {
			return err
		}
		a.waitForNextFrame(a.scheduler.Next(start))
	}
	return nil
}

func (a *App) tick(now time.Time) error {
	profiling.ResetFrame()
	dt := now.Sub(a.lastTime)
	a.lastTime = now

	if err := a.renderer.RenderFrame(dt); err != nil {
		return err
	}
	a.frames++

	if took := a.now().Sub(now); a.slowFrame > 0 && took > a.slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", took, profiling.TopN(5))
	}
	return nil
}

// waitForNextFrame dispatches window events until the deadline passes or
// the loop is told to stop
func (a *App) waitForNextFrame(deadline time.Time) {
	for a.state == StateRunning {
		for _, ev := range a.window.WaitUntil(deadline) {
			a.HandleEvent(ev)
		}
		if !a.now().Before(deadline) {
			return
		}
	}
}

// HandleEvent applies a window event. Only close requests have an effect;
// resizes do not touch the viewport and input is not handled.
func (a *App) HandleEvent(ev platform.Event) {
	switch ev.(type) {
	case platform.CloseRequested:
		a.state = StateTerminating
	case platform.Resized, platform.CursorMoved, platform.MouseButton, platform.Key:
	}
}

// State returns the current loop state
func (a *App) State() State {
	return a.state
}

// Frames returns the number of frames presented so far
func (a *App) Frames() int {
	return a.frames
}

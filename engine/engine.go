package engine

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/handoff"
	"github.com/Carmen-Shannon/dust-bunny/engine/input"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/Carmen-Shannon/dust-bunny/engine/profiler"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"github.com/Carmen-Shannon/dust-bunny/engine/simulation"
)

// ErrAlreadyRunning is returned by Run when the engine has already been started.
var ErrAlreadyRunning = errors.New("engine: already running")

// EventSource is the part of a window the main loop reads. window.Window satisfies it.
type EventSource interface {
	// PollEvents returns the input events received since the previous call.
	PollEvents() []input.Event
	// Width returns the framebuffer width in pixels.
	Width() int
	// Height returns the framebuffer height in pixels.
	Height() int
}

// engine implements the Engine interface.
// The producer runs on its own goroutine; everything else belongs to the goroutine calling Run.
type engine struct {
	window     EventSource
	renderer   renderer.Renderer
	camera     camera.Camera
	controller camera.CameraController
	channel    *handoff.Channel
	producer   simulation.Producer
	logger     *slog.Logger

	running     atomic.Bool
	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	current instruction.Batch
	frames  atomic.Uint64
}

// Engine is the consumer side of the viewer. It owns the camera and the renderer, runs the simulation
// producer on a separate goroutine, and draws the most recent batch every iteration.
type Engine interface {
	// Run starts the producer and iterates the main loop on the calling goroutine until Quit is called
	// or the window asks to close. The calling goroutine must be locked to the OS thread that created
	// the window and the renderer.
	//
	// On return the channel is closed and the producer goroutine has exited.
	//
	// Returns:
	//   - error: ErrAlreadyRunning if Run was called before, otherwise nil
	Run() error

	// Quit asks the main loop to stop after the current iteration.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()

	// Camera returns the camera the main loop renders through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Frames returns the number of completed main loop iterations.
	//
	// Returns:
	//   - uint64: the iteration count
	Frames() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default). Must not be called while Run is executing.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)
}

// NewEngine creates a new Engine instance with the provided options.
// A window, a renderer and a channel are required. The camera defaults to one sized to the window and
// the controller to one driving that camera at unit speeds. Without a producer the engine renders
// whatever arrives on the channel.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error naming the first missing component
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		quitChannel: make(chan struct{}),
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}

	switch {
	case e.window == nil:
		return nil, errors.New("engine: a window is required")
	case e.renderer == nil:
		return nil, errors.New("engine: a renderer is required")
	case e.channel == nil:
		return nil, errors.New("engine: a channel is required")
	}

	if e.camera == nil {
		if e.controller != nil {
			e.camera = e.controller.Camera()
		} else {
			e.camera = camera.NewCamera(camera.WithViewport(e.window.Width(), e.window.Height()))
		}
	}
	if e.controller == nil {
		e.controller = camera.NewCameraController(e.camera)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	return e, nil
}

func (e *engine) Run() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if e.producer != nil {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.producer.Run()
		}()
	}
	e.logger.Info("engine started", "backend", e.renderer.BackendType(), "channelCapacity", e.channel.Cap())

	for !e.quitting() {
		frameStart := time.Now()
		e.frame()
		e.frames.Add(1)

		if e.profilingEnabled {
			e.profiler.Tick(e.renderer.Stats())
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}

	// Closing the consumer end unblocks a producer waiting in Send.
	e.channel.Close()
	e.wg.Wait()
	e.logger.Info("engine stopped", "frames", e.frames.Load(), "stats", e.renderer.Stats())
	return nil
}

// frame runs one iteration: input, batch handoff, render.
func (e *engine) frame() {
	for _, ev := range e.window.PollEvents() {
		switch ev := ev.(type) {
		case input.Quit:
			e.Quit()
		case input.Resize:
			e.camera.Resize(ev.Width, ev.Height)
			e.renderer.Resize(ev.Width, ev.Height)
		default:
			e.controller.Update(ev)
		}
	}
	if e.quitting() {
		return
	}

	if batch, ok := e.channel.TryReceive(); ok {
		e.current = batch
	}

	err := e.renderer.Render(e.current, e.camera)
	switch {
	case err == nil:
	case renderer.IsRecoverable(err):
		w, h := e.window.Width(), e.window.Height()
		e.logger.Warn("surface needs reconfiguring", "width", w, "height", h, "error", err)
		e.renderer.Resize(w, h)
	default:
		e.logger.Error("frame skipped", "error", err)
	}
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// Quit signals the main loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

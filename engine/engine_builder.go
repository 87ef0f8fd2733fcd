package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/handoff"
	"github.com/Carmen-Shannon/dust-bunny/engine/profiler"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer"
	"github.com/Carmen-Shannon/dust-bunny/engine/simulation"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine polls for input and sizes from.
//
// Parameters:
//   - w: the window, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w EventSource) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer each frame is drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera frames are rendered through.
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController sets the controller input events are dispatched to. It should drive the engine's camera.
func WithController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithChannel sets the channel batches are received from. The engine closes it when Run returns.
func WithChannel(ch *handoff.Channel) EngineBuilderOption {
	return func(e *engine) {
		e.channel = ch
	}
}

// WithProducer sets the producer Run starts on its own goroutine. It must send on the engine's channel.
func WithProducer(p simulation.Producer) EngineBuilderOption {
	return func(e *engine) {
		e.producer = p
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithLogger sets the logger used by the engine and its default profiler.
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/dust-bunny/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Only the WebGPU backend uses it; the software backend follows the window's swap interval.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the WebGPU backend.
// When not specified, the default is MSAAOff.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithBackground sets the colour every frame is cleared to. Defaults to opaque black.
func WithBackground(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.background = c
	}
}

// WithForeground sets the fill colour of circles. Defaults to opaque white.
func WithForeground(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.foreground = c
	}
}

// WithRasterWorkers sets how many row bands the software backend rasterizes in parallel.
// Values below 2 rasterize on the calling goroutine.
//
// Parameters:
//   - workers: the number of worker goroutines
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithRasterWorkers(workers int) RendererBuilderOption {
	return func(r *renderer) {
		r.rasterWorkers = workers
	}
}

// WithPresenter replaces the OpenGL presenter of the software backend.
func WithPresenter(p Presenter) RendererBuilderOption {
	return func(r *renderer) {
		r.presenter = p
	}
}

// WithLogger sets the logger used by the renderer and its backend.
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

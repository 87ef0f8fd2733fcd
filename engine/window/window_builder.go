package window

import (
	"log/slog"

	"github.com/Carmen-Shannon/dust-bunny/engine/input"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. The size is clamped to the min/max bounds.
//
// Parameters:
//   - width, height: initial size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
		w.height = height
	}
}

// WithMinSize sets the smallest size the user can resize the window to.
//
// Parameters:
//   - width, height: minimum size in pixels, 0 for no limit
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}

// WithMaxSize sets the largest size the user can resize the window to.
//
// Parameters:
//   - width, height: maximum size in pixels, 0 for no limit
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = width
		w.maxHeight = height
	}
}

// WithGraphicsAPI selects whether the window gets an OpenGL context or none (for WebGPU).
func WithGraphicsAPI(api GraphicsAPI) WindowBuilderOption {
	return func(w *engineWindow) {
		w.api = api
	}
}

// WithVSync sets the swap interval of OpenGL windows. WebGPU windows take their present mode from the renderer.
func WithVSync(vsync bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.vsync = vsync
	}
}

// WithPanButton sets the mouse button whose drags are reported as input.Drag events.
func WithPanButton(button input.MouseButton) WindowBuilderOption {
	return func(w *engineWindow) {
		w.panButton = button
	}
}

// WithLogger sets the logger used for window diagnostics.
func WithLogger(logger *slog.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

package window

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/dust-bunny/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsAPI selects what the window prepares for rendering.
type GraphicsAPI int

const (
	// GraphicsAPIWebGPU creates a window with no client API; the renderer builds a WebGPU surface from it.
	GraphicsAPIWebGPU GraphicsAPI = iota
	// GraphicsAPIOpenGL creates an OpenGL 3.3 core context and makes it current on the calling thread.
	GraphicsAPIOpenGL
)

func (g GraphicsAPI) String() string {
	switch g {
	case GraphicsAPIWebGPU:
		return "webgpu"
	case GraphicsAPIOpenGL:
		return "opengl"
	default:
		return fmt.Sprintf("GraphicsAPI(%d)", int(g))
	}
}

// Window provides a platform window and turns its callbacks into input events.
// All methods must be called from the thread that created the window.
type Window interface {
	// PollEvents processes pending platform events and returns them in arrival order.
	// Closing the window or pressing Escape or Q yields an input.Quit.
	//
	// Returns:
	//   - []input.Event: the events received since the previous poll
	PollEvents() []input.Event

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SwapBuffers presents the back buffer of an OpenGL window. No-op for WebGPU windows.
	SwapBuffers()

	// GraphicsAPI returns the API the window was created for.
	//
	// Returns:
	//   - GraphicsAPI: the configured graphics API
	GraphicsAPI() GraphicsAPI

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	// Any surface created from the window must be released first.
	//
	// Returns:
	//   - error: error if the window was already closed
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer size, which differs from the window size on high-DPI displays.
	width  int
	height int

	api       GraphicsAPI
	vsync     bool
	panButton input.MouseButton
	logger    *slog.Logger

	events *input.Queue

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a platform window. Must be called from the main thread,
// which then owns the window for its whole lifetime.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window or its graphics context could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "dust-bunny",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
		api:       GraphicsAPIWebGPU,
		vsync:     true,
		panButton: input.MouseButtonLeft,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}
	w.clampSize()
	w.events = input.NewQueue(w.panButton)

	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) PollEvents() []input.Event {
	platformProcessMessages(w)
	return w.events.Drain()
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) SwapBuffers() {
	if w.api == GraphicsAPIOpenGL {
		platformSwapBuffers(w)
	}
}

func (w *engineWindow) GraphicsAPI() GraphicsAPI {
	return w.api
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// clampSize fits the requested initial size into the configured min/max bounds.
// A zero or negative maximum means unbounded.
func (w *engineWindow) clampSize() {
	if w.minWidth > 0 {
		w.width = max(w.width, w.minWidth)
	}
	if w.minHeight > 0 {
		w.height = max(w.height, w.minHeight)
	}
	if w.maxWidth > 0 {
		w.width = min(w.width, w.maxWidth)
	}
	if w.maxHeight > 0 {
		w.height = min(w.height, w.maxHeight)
	}
}

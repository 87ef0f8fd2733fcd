package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is the part of a window a backend draws into. window.Window satisfies it.
type RenderTarget interface {
	// Width returns the framebuffer width in pixels.
	Width() int
	// Height returns the framebuffer height in pixels.
	Height() int
	// SurfaceDescriptor returns the platform descriptor a WebGPU surface is created from.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// SwapBuffers presents an OpenGL back buffer.
	SwapBuffers()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *slog.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	background           common.Color
	foreground           common.Color
	rasterWorkers        int
	presenter            Presenter
}

// Renderer draws instruction batches through a camera onto a window, hiding which backend does the work.
// The backend is chosen once in NewRenderer; nothing backend-specific leaks through this interface.
//
// A Renderer must be used from the goroutine that created it, which must be locked to its OS thread.
type Renderer interface {
	// Render draws one batch through the camera and presents it.
	//
	// Parameters:
	//   - batch: the instructions to draw, in paint order
	//   - cam: the camera mapping world space onto the window
	//
	// Returns:
	//   - error: nil on success or when nothing can be drawn yet; an error satisfying IsRecoverable when
	//     the surface must be reconfigured; any other error means the frame was dropped
	Render(batch instruction.Batch, cam camera.Camera) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when recovering from a lost surface.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Stats returns the frame counters accumulated since construction.
	//
	// Returns:
	//   - FrameStats: the counters
	Stats() FrameStats

	// BackendType returns the backend selected at construction.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Release frees every backend resource. It must be called before the window is closed.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend, drawing into target.
// The backend is configured for the target's current size before NewRenderer returns.
//
// The software backend presents through OpenGL, so target must own a current OpenGL context unless a
// Presenter is supplied with WithPresenter. The WebGPU backend creates its surface from target.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - target: the window to draw into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the backend could not be created
func NewRenderer(backendType RendererBackendType, target RenderTarget, options ...RendererBuilderOption) (Renderer, error) {
	if target == nil {
		return nil, errors.New("renderer: nil render target")
	}
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		logger:        slog.Default(),
		presentMode:   PresentModeVSync,
		msaa:          MSAAOff,
		background:    common.Color{R: 0, G: 0, B: 0, A: 1},
		foreground:    common.Color{R: 1, G: 1, B: 1, A: 1},
		rasterWorkers: 1,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r)
		if err != nil {
			return nil, err
		}
		r.backend = b
	case BackendTypeSoftware:
		presenter := r.presenter
		if presenter == nil {
			p, err := newGLPresenter(target, r.logger)
			if err != nil {
				return nil, err
			}
			presenter = p
		}
		r.backend = newSoftwareRendererBackend(presenter, r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backendType)
	}

	r.backend.Resize(target.Width(), target.Height())
	r.logger.Info("renderer created", "backend", backendType, "width", target.Width(), "height", target.Height())
	return r, nil
}

func (r *renderer) Render(batch instruction.Batch, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return nil
	}
	return r.backend.Render(batch, cam)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.backend.Resize(width, height)
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return FrameStats{}
	}
	return r.backend.Stats()
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.backend.Release()
	r.backend = nil
}

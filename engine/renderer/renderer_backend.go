package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeSoftware selects the CPU rasterizer, presented through an OpenGL texture blit.
	BackendTypeSoftware
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeSoftware:
		return "software"
	default:
		return fmt.Sprintf("RendererBackendType(%d)", int(t))
	}
}

// ParseBackendType maps a backend name ("wgpu" or "software") to its RendererBackendType.
//
// Parameters:
//   - name: the backend name
//
// Returns:
//   - RendererBackendType: the matching backend type
//   - error: ErrUnknownBackend if the name is not recognised
func ParseBackendType(name string) (RendererBackendType, error) {
	switch name {
	case "wgpu", "webgpu", "gpu":
		return BackendTypeWGPU, nil
	case "software", "cpu":
		return BackendTypeSoftware, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps "vsync" or "uncapped" to a PresentMode.
func ParsePresentMode(name string) (PresentMode, error) {
	switch name {
	case "vsync", "fifo":
		return PresentModeVSync, nil
	case "uncapped", "immediate":
		return PresentModeUncapped, nil
	default:
		return 0, fmt.Errorf("renderer: unknown present mode %q", name)
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4, so those are the only values offered.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// FrameStats holds counters accumulated by a backend since construction.
type FrameStats struct {
	// Frames is the number of Render calls.
	Frames uint64
	// DrawCalls is the number of draw commands issued. The GPU backend issues one instanced draw per
	// non-empty frame; the software backend counts one per rasterized disc.
	DrawCalls uint64
	// Presents is the number of frames that reached the display.
	Presents uint64
	// SkippedFrames is the number of Render calls that presented nothing, because of an error or
	// because the backend was not configured.
	SkippedFrames uint64
}

// Sub returns the counters accumulated between prev and s.
func (s FrameStats) Sub(prev FrameStats) FrameStats {
	return FrameStats{
		Frames:        s.Frames - prev.Frames,
		DrawCalls:     s.DrawCalls - prev.DrawCalls,
		Presents:      s.Presents - prev.Presents,
		SkippedFrames: s.SkippedFrames - prev.SkippedFrames,
	}
}

// RendererBackend is implemented by each rendering backend. A backend is owned by a single goroutine,
// the one that created it, and every method must be called from that goroutine.
type RendererBackend interface {
	// Render draws one batch through the camera and presents it.
	//
	// Parameters:
	//   - batch: the instructions to draw, in paint order
	//   - cam: the camera mapping world space onto the target
	//
	// Returns:
	//   - error: nil on success or when the backend is not ready to draw; otherwise an error that
	//     IsRecoverable may classify
	Render(batch instruction.Batch, cam camera.Camera) error

	// Resize adapts the backend to a new target size in pixels. A zero dimension leaves the backend
	// unable to present until a non-zero size arrives.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Stats returns the counters accumulated since construction.
	//
	// Returns:
	//   - FrameStats: the counters
	Stats() FrameStats

	// Release frees every resource held by the backend. Safe to call more than once.
	Release()
}

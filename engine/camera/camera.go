package camera

import (
	"sync"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/chewxy/math32"
)

// Camera maps between world space (Y up, unbounded) and screen space (origin top-left, Y down, pixels).
//
// The camera is centred on position: the world point at position is drawn at the middle of the viewport,
// and one world unit covers scale pixels. Both directions of the mapping use the same convention, so
// ScreenToWorld(WorldToScreen(p)) == p up to float rounding.
type Camera interface {
	// Position returns the world-space point at the centre of the viewport.
	//
	// Returns:
	//   - common.Vector2: the camera position
	Position() common.Vector2

	// Scale returns the zoom factor in pixels per world unit. Always >= MinScale.
	//
	// Returns:
	//   - float32: the current scale
	Scale() float32

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: the viewport dimensions
	Viewport() (width, height int)

	// ZoomSensitivity returns the fraction of the current scale removed per unit of zoom delta.
	//
	// Returns:
	//   - float32: the zoom sensitivity
	ZoomSensitivity() float32

	// MinScale returns the lower bound Zoom clamps the scale to.
	//
	// Returns:
	//   - float32: the minimum scale
	MinScale() float32

	// WorldToScreen converts a world-space point to screen pixels.
	//
	// Parameters:
	//   - world: the world-space point
	//
	// Returns:
	//   - common.Vector2: the screen-space point
	WorldToScreen(world common.Vector2) common.Vector2

	// ScreenToWorld converts screen pixels to a world-space point. It is the exact inverse of WorldToScreen.
	//
	// Parameters:
	//   - screen: the screen-space point
	//
	// Returns:
	//   - common.Vector2: the world-space point
	ScreenToWorld(screen common.Vector2) common.Vector2

	// Pan moves the camera so the content follows a pointer drag of delta screen pixels:
	// the world point under the pointer before the drag is under it after the drag.
	//
	// Parameters:
	//   - delta: the pointer movement in screen pixels
	Pan(delta common.Vector2)

	// Zoom scales the view about the cursor. Positive delta zooms out, negative zooms in.
	// The world point under cursor stays under cursor unless the scale hits MinScale.
	//
	// Parameters:
	//   - delta: the zoom amount, multiplied by ZoomSensitivity
	//   - cursor: the screen-space anchor point
	Zoom(delta float32, cursor common.Vector2)

	// Resize replaces the viewport size. Position and scale are unchanged.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	Resize(width, height int)

	// SetPosition moves the camera centre to a world-space point.
	SetPosition(position common.Vector2)

	// Uniform returns the GPU representation of the current camera state.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform ready for Marshal
	Uniform() GPUCameraUniform
}

type cameraImpl struct {
	mu *sync.Mutex

	position common.Vector2
	scale    float32
	width    int
	height   int

	zoomSensitivity float32
	minScale        float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the world origin with scale 1, an 800x600 viewport, zoom sensitivity 0.1
// and a minimum scale of 0.01.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:              &sync.Mutex{},
		scale:           1,
		width:           800,
		height:          600,
		zoomSensitivity: 0.1,
		minScale:        0.01,
	}
	for _, option := range options {
		option(c)
	}
	if c.minScale <= 0 {
		panic("camera: minimum scale must be positive")
	}
	c.scale = math32.Max(c.scale, c.minScale)
	return c
}

func (c *cameraImpl) Position() common.Vector2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Scale() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

func (c *cameraImpl) Viewport() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) ZoomSensitivity() float32 {
	return c.zoomSensitivity
}

func (c *cameraImpl) MinScale() float32 {
	return c.minScale
}

func (c *cameraImpl) WorldToScreen(world common.Vector2) common.Vector2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldToScreen(world)
}

func (c *cameraImpl) ScreenToWorld(screen common.Vector2) common.Vector2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screenToWorld(screen)
}

func (c *cameraImpl) Pan(delta common.Vector2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Sub(delta.FlipY().Div(c.scale))
}

func (c *cameraImpl) Zoom(delta float32, cursor common.Vector2) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.screenToWorld(cursor)
	c.scale -= delta * c.zoomSensitivity * c.scale
	if !(c.scale >= c.minScale) {
		c.scale = c.minScale
	}
	after := c.screenToWorld(cursor)
	c.position = c.position.Add(before.Sub(after))
}

func (c *cameraImpl) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
}

func (c *cameraImpl) SetPosition(position common.Vector2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		Position: [2]float32{c.position.X, c.position.Y},
		Scale:    c.scale,
		Viewport: [2]float32{float32(c.width), float32(c.height)},
	}
}

// halfViewport returns the screen-space centre. Caller must hold the mutex.
func (c *cameraImpl) halfViewport() common.Vector2 {
	return common.Vec2(float32(c.width)/2, float32(c.height)/2)
}

// worldToScreen is WorldToScreen without locking. Caller must hold the mutex.
func (c *cameraImpl) worldToScreen(w common.Vector2) common.Vector2 {
	half := c.halfViewport()
	return common.Vec2(
		(w.X-c.position.X)*c.scale+half.X,
		half.Y-(w.Y-c.position.Y)*c.scale,
	)
}

// screenToWorld is ScreenToWorld without locking. Caller must hold the mutex.
func (c *cameraImpl) screenToWorld(s common.Vector2) common.Vector2 {
	half := c.halfViewport()
	return common.Vec2(
		(s.X-half.X)/c.scale+c.position.X,
		(half.Y-s.Y)/c.scale+c.position.Y,
	)
}

package camera

import (
	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/input"
)

// CameraController translates pointer input into camera motion.
// Dragging pans the view with the pointer; scrolling zooms about the cursor, wheel-up zooming in.
type CameraController interface {
	// Camera returns the camera this controller drives.
	//
	// Returns:
	//   - Camera: the controlled camera
	Camera() Camera

	// Drag pans the camera by a pointer movement.
	//
	// Parameters:
	//   - delta: the pointer movement in screen pixels, multiplied by PanSpeed
	Drag(delta common.Vector2)

	// Scroll zooms the camera about the cursor.
	// Positive yoff (wheel up) zooms in unless scrolling is inverted.
	//
	// Parameters:
	//   - yoff: the vertical wheel offset, multiplied by ZoomSpeed
	//   - cursor: the pointer position in screen pixels
	Scroll(yoff float32, cursor common.Vector2)

	// Update dispatches an input event. Drag and Scroll events move the camera; others are ignored.
	//
	// Parameters:
	//   - event: the event to handle
	//
	// Returns:
	//   - bool: true if the event changed the camera
	Update(event input.Event) bool

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for drag input
	PanSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for wheel input
	ZoomSpeed() float32
}

type cameraControllerImpl struct {
	camera Camera

	panSpeed     float32
	zoomSpeed    float32
	invertScroll bool
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller for cam with unit pan and zoom speeds.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		camera:    cam,
		panSpeed:  1,
		zoomSpeed: 1,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Drag(delta common.Vector2) {
	cc.camera.Pan(delta.Mul(cc.panSpeed))
}

func (cc *cameraControllerImpl) Scroll(yoff float32, cursor common.Vector2) {
	delta := -yoff * cc.zoomSpeed
	if cc.invertScroll {
		delta = -delta
	}
	cc.camera.Zoom(delta, cursor)
}

func (cc *cameraControllerImpl) Update(event input.Event) bool {
	switch e := event.(type) {
	case input.Drag:
		cc.Drag(e.Delta)
		return true
	case input.Scroll:
		cc.Scroll(e.Delta, e.Cursor)
		return true
	default:
		return false
	}
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}

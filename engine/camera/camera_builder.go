package camera

import "github.com/Carmen-Shannon/dust-bunny/common"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial world-space centre of the view.
//
// Parameters:
//   - position: the world point drawn at the viewport centre
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position common.Vector2) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithScale sets the initial zoom in pixels per world unit. Values below the minimum scale are raised to it.
//
// Parameters:
//   - scale: the initial scale
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's scale
func WithScale(scale float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.scale = scale
	}
}

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width, height: the viewport dimensions
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width = width
		c.height = height
	}
}

// WithZoomSensitivity sets the fraction of the scale removed per unit of zoom delta.
func WithZoomSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomSensitivity = sensitivity
	}
}

// WithMinScale sets the lower scale bound. Must be positive.
func WithMinScale(minScale float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minScale = minScale
	}
}

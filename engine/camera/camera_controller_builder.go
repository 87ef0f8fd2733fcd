package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPanSpeed sets the pan speed multiplier. 1 keeps the dragged world point exactly under the pointer.
//
// Parameters:
//   - speed: multiplier for drag input
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for wheel input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithInvertScroll makes wheel-up zoom out instead of in.
func WithInvertScroll(invert bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.invertScroll = invert
	}
}

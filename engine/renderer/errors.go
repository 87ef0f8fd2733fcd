package renderer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSurfaceLost is returned when the surface texture could not be acquired because the surface was lost.
	// Reconfiguring the surface at the current window size recovers from it.
	ErrSurfaceLost = errors.New("renderer: surface lost")

	// ErrSurfaceOutdated is returned when the surface no longer matches the window, typically after a resize
	// whose event has not been processed yet. Reconfiguring recovers from it.
	ErrSurfaceOutdated = errors.New("renderer: surface outdated")

	// ErrSurfaceAcquire wraps every other failure to acquire a surface texture. The frame is dropped.
	ErrSurfaceAcquire = errors.New("renderer: failed to acquire surface texture")

	// ErrInvalidInstruction is returned when an instruction carries a non-finite position or an invalid radius.
	ErrInvalidInstruction = errors.New("renderer: invalid instruction")

	// ErrUnknownBackend is returned by NewRenderer for a backend type it does not know.
	ErrUnknownBackend = errors.New("renderer: unknown backend type")
)

// IsRecoverable reports whether err can be cleared by reconfiguring the surface at the current size.
//
// Parameters:
//   - err: the error returned by Render
//
// Returns:
//   - bool: true for ErrSurfaceLost and ErrSurfaceOutdated, wrapped or not
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// classifySurfaceError maps a surface acquisition error onto the renderer's sentinel errors.
// The WebGPU binding reports the surface status only through the error text.
func classifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", ErrSurfaceOutdated, err)
	default:
		return fmt.Errorf("%w: %v", ErrSurfaceAcquire, err)
	}
}

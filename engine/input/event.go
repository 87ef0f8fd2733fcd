// Package input defines the discrete, platform independent events the window produces and the main loop consumes.
package input

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/dust-bunny/common"
)

// Event is one discrete input occurrence. The concrete types are Quit, Drag, Scroll and Resize.
type Event interface {
	event()
}

// Quit asks the application to stop.
type Quit struct{}

// Drag is a pointer move while the pan button is held.
type Drag struct {
	// Delta is the pointer movement since the previous Drag, in screen pixels (Y down).
	Delta common.Vector2
	// Position is the pointer position after the move, in screen pixels.
	Position common.Vector2
}

// Scroll is a wheel step.
type Scroll struct {
	// Delta is the vertical wheel offset; positive means the wheel moved up / away from the user.
	Delta float32
	// Cursor is the pointer position at the time of the scroll, in screen pixels.
	Cursor common.Vector2
}

// Resize reports a new framebuffer size in pixels. Either dimension may be 0 while the window is minimised.
type Resize struct {
	Width  int
	Height int
}

func (Quit) event()   {}
func (Drag) event()   {}
func (Scroll) event() {}
func (Resize) event() {}

// MouseButton identifies a pointer button. Values match GLFW's button numbering.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// ParseMouseButton converts "left", "right" or "middle" (case-insensitive) to a MouseButton.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - MouseButton: the parsed button
//   - error: error if the name is not recognised
func ParseMouseButton(name string) (MouseButton, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	default:
		return 0, fmt.Errorf("input: unknown mouse button %q", name)
	}
}

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button%d", int(b))
	}
}

// Keys the window treats as a quit request. Values match GLFW key codes.
const (
	KeyQ      = 81
	KeyEscape = 256
)

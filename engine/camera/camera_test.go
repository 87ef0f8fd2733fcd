package camera

import (
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func TestOriginProjectsToViewportCentre(t *testing.T) {
	cam := NewCamera(WithViewport(640, 480))
	assert.Equal(t, common.Vec2(320, 240), cam.WorldToScreen(common.Vec2(0, 0)))
}

func TestResizeMovesViewportCentre(t *testing.T) {
	cam := NewCamera(WithViewport(200, 200))
	cam.Resize(400, 400)

	assert.Equal(t, common.Vec2(200, 200), cam.WorldToScreen(common.Vec2(0, 0)))
	w, h := cam.Viewport()
	assert.Equal(t, 400, w)
	assert.Equal(t, 400, h)
	assert.Equal(t, float32(1), cam.Scale())
	assert.Equal(t, common.Vec2(0, 0), cam.Position())
}

func TestWorldYIsUp(t *testing.T) {
	cam := NewCamera(WithViewport(100, 100), WithScale(2))
	assert.Equal(t, common.Vec2(70, 30), cam.WorldToScreen(common.Vec2(10, 10)))
}

func TestScreenToWorldInvertsWorldToScreen(t *testing.T) {
	cam := NewCamera(
		WithViewport(1280, 720),
		WithPosition(common.Vec2(-37.5, 12.25)),
		WithScale(3.7),
	)

	for _, p := range []common.Vector2{
		common.Vec2(0, 0),
		common.Vec2(250, -250),
		common.Vec2(-1000.5, 42),
		common.Vec2(1e4, 1e4),
	} {
		back := cam.ScreenToWorld(cam.WorldToScreen(p))
		assert.True(t, back.ApproxEqual(p, tol*10), "round trip of %v gave %v", p, back)
	}
}

func TestPanKeepsDraggedPointUnderPointer(t *testing.T) {
	cam := NewCamera(WithViewport(800, 600), WithScale(2.5))

	start := common.Vec2(100, 100)
	grabbed := cam.ScreenToWorld(start)

	delta := common.Vec2(40, -25)
	cam.Pan(delta)

	assert.True(t, cam.WorldToScreen(grabbed).ApproxEqual(start.Add(delta), tol))
}

func TestZoomKeepsCursorAnchored(t *testing.T) {
	cam := NewCamera(WithViewport(800, 600))
	cursor := common.Vec2(600, 150)
	anchor := cam.ScreenToWorld(cursor)

	cam.Zoom(-1, cursor)
	assert.InDelta(t, 1.1, cam.Scale(), 1e-6)
	assert.True(t, cam.ScreenToWorld(cursor).ApproxEqual(anchor, tol))

	cam.Zoom(2, cursor)
	assert.InDelta(t, 1.1*0.8, cam.Scale(), 1e-5)
	assert.True(t, cam.ScreenToWorld(cursor).ApproxEqual(anchor, tol))
}

func TestZoomClampsToMinScale(t *testing.T) {
	cam := NewCamera(WithViewport(800, 600), WithMinScale(0.5))

	cam.Zoom(100, common.Vec2(400, 300))
	assert.Equal(t, float32(0.5), cam.Scale())

	cam.Zoom(5, common.Vec2(0, 0))
	assert.Equal(t, float32(0.5), cam.Scale())
	assert.True(t, cam.Position().IsFinite())
}

func TestNewCameraRaisesScaleToMinimum(t *testing.T) {
	cam := NewCamera(WithScale(0.001))
	assert.Equal(t, float32(0.01), cam.Scale())
	assert.Panics(t, func() { NewCamera(WithMinScale(0)) })
}

func TestUniformLayout(t *testing.T) {
	cam := NewCamera(WithViewport(300, 200), WithPosition(common.Vec2(1, 2)), WithScale(4))
	u := cam.Uniform()

	require.Equal(t, 32, u.Size())
	assert.Equal(t, [2]float32{1, 2}, u.Position)
	assert.Equal(t, float32(4), u.Scale)
	assert.Equal(t, [2]float32{300, 200}, u.Viewport)

	buf := u.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, common.StructToBytes(&u), buf)
	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}

func TestControllerWheelUpZoomsIn(t *testing.T) {
	cam := NewCamera(WithViewport(800, 600))
	ctrl := NewCameraController(cam)

	assert.True(t, ctrl.Update(input.Scroll{Delta: 1, Cursor: common.Vec2(400, 300)}))
	assert.Greater(t, cam.Scale(), float32(1))

	inverted := NewCameraController(NewCamera(), WithInvertScroll(true))
	inverted.Scroll(1, common.Vec2(0, 0))
	assert.Less(t, inverted.Camera().Scale(), float32(1))
}

func TestControllerDragPans(t *testing.T) {
	cam := NewCamera(WithViewport(800, 600), WithScale(2))
	ctrl := NewCameraController(cam, WithPanSpeed(0.5))

	assert.True(t, ctrl.Update(input.Drag{Delta: common.Vec2(8, 4), Position: common.Vec2(10, 10)}))
	assert.True(t, cam.Position().ApproxEqual(common.Vec2(-2, 1), tol))

	assert.False(t, ctrl.Update(input.Resize{Width: 1, Height: 1}))
	assert.Equal(t, float32(0.5), ctrl.PanSpeed())
	assert.Equal(t, float32(1), ctrl.ZoomSpeed())
}

package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// glPresenter uploads the canvas into a texture attached to a read framebuffer and blits it onto the
// default framebuffer, flipping rows so canvas row 0 lands at the top of the window.
// It requires the target's OpenGL context to be current on the calling thread.
type glPresenter struct {
	target RenderTarget
	logger *slog.Logger

	texture     uint32
	framebuffer uint32
	width       int
	height      int
}

var _ Presenter = &glPresenter{}

func newGLPresenter(target RenderTarget, logger *slog.Logger) (*glPresenter, error) {
	p := &glPresenter{target: target, logger: logger}

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &p.framebuffer)

	if err := glError("create presenter"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *glPresenter) Resize(width, height int) error {
	p.width, p.height = width, height

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.framebuffer)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.texture, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("gl presenter: framebuffer incomplete: 0x%x", status)
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	p.logger.Debug("gl presenter resized", "width", width, "height", height)
	return glError("resize presenter")
}

func (p *glPresenter) Present(pixels []uint8, width, height int) error {
	if width != p.width || height != p.height {
		return fmt.Errorf("gl presenter: canvas is %dx%d, texture is %dx%d", width, height, p.width, p.height)
	}
	if len(pixels) < width*height*4 {
		return errors.New("gl presenter: canvas shorter than its dimensions")
	}

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.framebuffer)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(width), int32(height), 0, int32(height), int32(width), 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if err := glError("present"); err != nil {
		return err
	}
	p.target.SwapBuffers()
	return nil
}

func (p *glPresenter) Release() {
	if p.framebuffer != 0 {
		gl.DeleteFramebuffers(1, &p.framebuffer)
		p.framebuffer = 0
	}
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
		p.texture = 0
	}
}

// glError drains the GL error queue and reports the first error, if any.
func glError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("gl presenter: %s: error 0x%x", op, first)
	}
	return nil
}

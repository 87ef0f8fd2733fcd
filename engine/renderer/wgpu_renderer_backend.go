package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/Carmen-Shannon/dust-bunny/engine/camera"
	"github.com/Carmen-Shannon/dust-bunny/engine/instruction"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer/shader"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// circleBindings are the binding indices of the circle shader's group 0, resolved by name.
type circleBindings struct {
	camera  int
	style   int
	circles int
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	pipeline pipeline.Pipeline
	provider bind_group_provider.BindGroupProvider
	bindings circleBindings

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode
	sampleCount   MSAASampleCount

	// surfaceConfig is the configuration last applied to the surface; configured is false until the
	// first successful configure and whenever the window has a zero dimension.
	surfaceConfig *wgpu.SurfaceConfiguration
	configured    bool
	msaaTexture   *wgpu.Texture
	msaaView      *wgpu.TextureView

	clearColor wgpu.Color
	style      GPUCircleStyle
	instances  []GPUCircleInstance
	writes     []bind_group_provider.BufferWrite

	stats FrameStats
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, r *renderer) (b *wgpuRendererBackendImpl, err error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("wgpu renderer: window has no surface descriptor")
	}
	runtime.LockOSThread()

	b = &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		logger:      r.logger,
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpuPresentMode(r.presentMode),
		sampleCount: r.msaa,
		clearColor:  wgpuColor(r.background),
		style:       NewGPUCircleStyle(r.foreground),
	}
	defer func() {
		if err != nil {
			b.Release()
			b = nil
		}
	}()

	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	b.adapter, err = b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return b, fmt.Errorf("wgpu renderer: request adapter: %w", err)
	}

	b.device, err = b.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return b, fmt.Errorf("wgpu renderer: request device: %w", err)
	}
	b.queue = b.device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return b, errors.New("wgpu renderer: surface is not compatible with the adapter")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	if err = b.registerCirclePipeline(); err != nil {
		return b, err
	}
	if err = b.initBindGroup(1); err != nil {
		return b, err
	}

	b.logger.Info("wgpu renderer ready",
		"format", b.surfaceFormat,
		"alphaMode", b.alphaMode,
		"presentMode", b.presentMode,
		"msaa", uint32(b.sampleCount),
	)
	return b, nil
}

// wgpuPresentMode maps the renderer's present mode onto the WebGPU one.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeVSync:
		return wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		return wgpu.PresentModeImmediate
	}
}

func wgpuColor(c common.Color) wgpu.Color {
	return wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// registerCirclePipeline compiles the circle module once and creates the render pipeline and its layouts.
func (b *wgpuRendererBackendImpl) registerCirclePipeline() error {
	s, err := shader.NewShader("Circle", shader.CircleSource,
		shader.WithInclude("camera", camera.GPUCameraUniformSource),
		shader.WithInclude("circle", GPUCircleTypesSource),
	)
	if err != nil {
		return fmt.Errorf("wgpu renderer: %w", err)
	}

	var ok [3]bool
	b.bindings.camera, ok[0] = s.Binding(0, "camera")
	b.bindings.style, ok[1] = s.Binding(0, "style")
	b.bindings.circles, ok[2] = s.Binding(0, "circles")
	if !ok[0] || !ok[1] || !ok[2] {
		return errors.New("wgpu renderer: circle shader is missing a group 0 binding")
	}

	b.pipeline = pipeline.NewPipeline("Circle", pipeline.WithShader(s), pipeline.WithBlendEnabled(true))

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return fmt.Errorf("wgpu renderer: create shader module: %w", err)
	}
	defer module.Release()

	descriptors := s.BindGroupLayoutDescriptors()
	layouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range layouts {
		desc, found := descriptors[g]
		if !found {
			return fmt.Errorf("wgpu renderer: bind group %d is not declared", g)
		}
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		layouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            b.pipeline.Key(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("wgpu renderer: create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(b.pipeline.Descriptor(module, pipelineLayout, b.surfaceFormat, uint32(b.sampleCount)))
	if err != nil {
		return fmt.Errorf("wgpu renderer: create render pipeline: %w", err)
	}
	b.pipeline.SetCompiled(created, layouts)
	return nil
}

// initBindGroup allocates the camera and style uniforms and a circle buffer holding at least
// minInstances elements, then builds the group 0 bind group over them.
func (b *wgpuRendererBackendImpl) initBindGroup(minInstances int) error {
	if b.provider == nil {
		b.provider = bind_group_provider.NewBindGroupProvider("Circle", bind_group_provider.WithGroup(0))
	}

	uniformSize := uint64((&camera.GPUCameraUniform{}).Size())
	if b.provider.NeedsGrowth(b.bindings.camera, uniformSize) {
		if err := b.createBuffer(b.bindings.camera, uniformSize, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst); err != nil {
			return err
		}
	}
	styleBytes := b.style.Marshal()
	if b.provider.NeedsGrowth(b.bindings.style, uint64(len(styleBytes))) {
		if err := b.createBuffer(b.bindings.style, uint64(len(styleBytes)), wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst); err != nil {
			return err
		}
		b.queue.WriteBuffer(b.provider.Buffer(b.bindings.style), 0, styleBytes)
	}
	circleSize := uint64(common.NextPowerOfTwo(max(minInstances, 1))) * circleInstanceSize
	if b.provider.NeedsGrowth(b.bindings.circles, circleSize) {
		if err := b.createBuffer(b.bindings.circles, circleSize, wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst); err != nil {
			return err
		}
	}

	if b.provider.BindGroup() != nil {
		return nil
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   b.provider.Label() + " Bind Group",
		Layout:  b.pipeline.BindGroupLayouts()[b.provider.Group()],
		Entries: b.provider.Entries(),
	})
	if err != nil {
		return fmt.Errorf("wgpu renderer: create bind group: %w", err)
	}
	b.provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) createBuffer(binding int, size uint64, usage wgpu.BufferUsage) error {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s Buffer %d", b.provider.Label(), binding),
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return fmt.Errorf("wgpu renderer: create buffer for binding %d: %w", binding, err)
	}
	b.provider.SetBuffer(binding, buf, size)
	return nil
}

// surfaceConfiguration builds the surface configuration for a size. It depends only on the size and on
// the format, present mode and alpha mode chosen at construction.
//
// Returns:
//   - *wgpu.SurfaceConfiguration: the configuration, or nil if either dimension is not positive
func (b *wgpuRendererBackendImpl) surfaceConfiguration(width, height int) *wgpu.SurfaceConfiguration {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	}
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	config := b.surfaceConfiguration(width, height)
	if config == nil {
		b.configured = false
		b.logger.Debug("wgpu renderer: zero-sized surface, rendering paused", "width", width, "height", height)
		return
	}
	if b.surface == nil || b.device == nil {
		return
	}

	b.surface.Configure(b.adapter, b.device, config)
	b.surfaceConfig = config

	b.releaseMSAATarget()
	if b.sampleCount > MSAAOff {
		if err := b.createMSAATarget(config); err != nil {
			b.logger.Error("wgpu renderer: MSAA target", "error", err)
			b.configured = false
			return
		}
	}
	b.configured = true
}

func (b *wgpuRendererBackendImpl) createMSAATarget(config *wgpu.SurfaceConfiguration) error {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "MSAA Texture",
		Size: wgpu.Extent3D{
			Width:              config.Width,
			Height:             config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(b.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        config.Format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	b.msaaTexture, b.msaaView = tex, view
	return nil
}

func (b *wgpuRendererBackendImpl) releaseMSAATarget() {
	if b.msaaView != nil {
		b.msaaView.Release()
		b.msaaView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
}

// Circle collects one circle into the frame's instance list.
func (b *wgpuRendererBackendImpl) Circle(c instruction.Circle) error {
	if !c.Position.IsFinite() || math32.IsNaN(c.Radius) || math32.IsInf(c.Radius, 0) || c.Radius < 0 {
		return fmt.Errorf("%w: circle at %s with radius %g", ErrInvalidInstruction, c.Position, c.Radius)
	}
	b.instances = append(b.instances, GPUCircleInstance{
		Center: [2]float32{c.Position.X, c.Position.Y},
		Radius: c.Radius,
	})
	return nil
}

func (b *wgpuRendererBackendImpl) Render(batch instruction.Batch, cam camera.Camera) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.Frames++
	if !b.configured {
		b.stats.SkippedFrames++
		return nil
	}

	b.instances = b.instances[:0]
	if err := batch.PaintAll(b); err != nil {
		b.stats.SkippedFrames++
		return err
	}

	if err := b.renderFrame(cam); err != nil {
		b.stats.SkippedFrames++
		return err
	}
	b.stats.Presents++
	return nil
}

// renderFrame acquires the surface texture, uploads the frame data and records one render pass.
func (b *wgpuRendererBackendImpl) renderFrame(cam camera.Camera) error {
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return classifySurfaceError(err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("wgpu renderer: surface view: %w", err)
	}
	defer view.Release()

	n := len(b.instances)
	if b.provider.NeedsGrowth(b.bindings.circles, uint64(n)*circleInstanceSize) {
		if err := b.initBindGroup(n); err != nil {
			return err
		}
	}

	uniform := cam.Uniform()
	b.writes = append(b.writes[:0], bind_group_provider.BufferWrite{
		Provider: b.provider,
		Binding:  b.bindings.camera,
		Data:     uniform.Marshal(),
	})
	if n > 0 {
		b.writes = append(b.writes, bind_group_provider.BufferWrite{
			Provider: b.provider,
			Binding:  b.bindings.circles,
			Data:     common.SliceToBytes(b.instances),
		})
	}
	b.writeBuffers(b.writes)

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("wgpu renderer: command encoder: %w", err)
	}
	defer encoder.Release()

	attachment := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	// With MSAA the pass draws into the multisampled texture and resolves into the swapchain view.
	if b.msaaView != nil {
		attachment.View = b.msaaView
		attachment.ResolveTarget = view
		attachment.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "Circle Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
	if n > 0 {
		pass.SetPipeline(b.pipeline.RenderPipeline())
		pass.SetBindGroup(b.provider.Group(), b.provider.BindGroup(), nil)
		pass.Draw(6, uint32(n), 0, 0)
		b.stats.DrawCalls++
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("wgpu renderer: finish encoder: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// writeBuffers flushes staged writes through the queue, skipping bindings with no buffer.
func (b *wgpuRendererBackendImpl) writeBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil || w.End() > w.Provider.BufferSize(w.Binding) {
			b.logger.Warn("wgpu renderer: dropped buffer write", "binding", w.Binding, "bytes", w.Len())
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) Stats() FrameStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.configured = false
	b.releaseMSAATarget()
	if b.provider != nil {
		b.provider.Release()
		b.provider = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

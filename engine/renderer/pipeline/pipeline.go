package pipeline

import (
	"github.com/Carmen-Shannon/dust-bunny/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key    string
	shader shader.Shader

	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
}

// Pipeline describes a render pipeline: the WGSL module providing both stages and the fixed-function
// state around it. The backend compiles it once and stores the GPU objects back on it.
type Pipeline interface {
	// Key returns the unique key of this pipeline, used as a label prefix.
	//
	// Returns:
	//   - string: the pipeline key
	Key() string

	// Shader returns the module providing the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if none was set
	Shader() shader.Shader

	// Descriptor builds the GPU render pipeline descriptor for the given module and layout.
	// The result depends only on the pipeline's state and the arguments.
	//
	// Parameters:
	//   - module: the compiled shader module
	//   - layout: the pipeline layout created from the shader's bind group layouts
	//   - format: the colour target format, normally the surface format
	//   - sampleCount: the MSAA sample count of the colour target
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for Device.CreateRenderPipeline
	Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor

	// RenderPipeline returns the compiled GPU pipeline, nil until the backend registers it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayouts returns the GPU bind group layouts created for the pipeline, indexed by group.
	//
	// Returns:
	//   - []*wgpu.BindGroupLayout: the layouts
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// SetCompiled stores the GPU objects created by the backend.
	//
	// Parameters:
	//   - rp: the compiled render pipeline
	//   - layouts: the bind group layouts, indexed by group
	SetCompiled(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// BlendEnabled returns whether the blend state is applied to the colour target.
	BlendEnabled() bool

	// CullMode returns the configured cull mode.
	CullMode() wgpu.CullMode

	// Topology returns the configured primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the configured front face winding.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the colour write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	BlendState() *wgpu.BlendState

	// Release frees the compiled GPU objects. The description stays usable for another compile.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description with triangle-list topology, no culling,
// CCW front faces, all colour channels written and straight alpha blending available but disabled.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:       key,
		cullMode:  wgpu.CullModeNone,
		topology:  wgpu.PrimitiveTopologyTriangleList,
		frontFace: wgpu.FrontFaceCCW,
		writeMask: wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor {
	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		target.Blend = p.blendState
	}

	var vertexEntry, fragmentEntry string
	if p.shader != nil {
		vertexEntry = p.shader.EntryPoint(shader.StageVertex)
		fragmentEntry = p.shader.EntryPoint(shader.StageFragment)
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  p.key + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: max(sampleCount, 1),
			Mask:  0xFFFFFFFF,
		},
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) SetCompiled(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for _, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	p.bindGroupLayouts = nil
}

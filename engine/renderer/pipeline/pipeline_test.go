package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;

@vertex
fn vmain(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}

@fragment
fn fmain() -> @location(0) vec4<f32> {
    return tint;
}
`

func TestDescriptorDefaults(t *testing.T) {
	s, err := shader.NewShader("tint", source)
	require.NoError(t, err)

	p := NewPipeline("tint", WithShader(s))
	d := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 0)

	assert.Equal(t, "tint Render Pipeline", d.Label)
	assert.Equal(t, "vmain", d.Vertex.EntryPoint)
	assert.Empty(t, d.Vertex.Buffers)
	require.NotNil(t, d.Fragment)
	assert.Equal(t, "fmain", d.Fragment.EntryPoint)
	require.Len(t, d.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, d.Fragment.Targets[0].Format)
	assert.Nil(t, d.Fragment.Targets[0].Blend)
	assert.Equal(t, wgpu.ColorWriteMaskAll, d.Fragment.Targets[0].WriteMask)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, d.Primitive.Topology)
	assert.Equal(t, wgpu.CullModeNone, d.Primitive.CullMode)
	assert.Equal(t, uint32(1), d.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), d.Multisample.Mask)
}

func TestDescriptorOptions(t *testing.T) {
	p := NewPipeline("x",
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	d := p.Descriptor(nil, nil, wgpu.TextureFormatRGBA8Unorm, 4)

	assert.Same(t, p.BlendState(), d.Fragment.Targets[0].Blend)
	assert.Equal(t, wgpu.CullModeBack, d.Primitive.CullMode)
	assert.Equal(t, wgpu.FrontFaceCW, d.Primitive.FrontFace)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, d.Primitive.Topology)
	assert.Equal(t, wgpu.ColorWriteMaskRed, d.Fragment.Targets[0].WriteMask)
	assert.Equal(t, uint32(4), d.Multisample.Count)
	assert.Nil(t, p.RenderPipeline())
	assert.NotPanics(t, p.Release)
}

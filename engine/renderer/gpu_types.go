package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/dust-bunny/common"
)

// GPUCircleTypesSource holds the WGSL definitions of CircleStyle and CircleInstance.
// Matches GPUCircleStyle and GPUCircleInstance exactly.
//
//go:embed assets/circle_types.wgsl
var GPUCircleTypesSource string

// GPUCircleInstance is one element of the circle storage buffer.
type GPUCircleInstance struct {
	Center [2]float32 // offset  0: world-space centre (vec2<f32>)
	Radius float32    // offset  8: world-space radius (f32)
	_pad   float32    // offset 12: pads the element to 16 bytes
}

// GPUCircleStyle is the fill uniform shared by every circle of a frame.
type GPUCircleStyle struct {
	Color [4]float32 // offset 0: straight RGBA fill (vec4<f32>)
}

// circleInstanceSize is the stride of the circle storage array in bytes.
const circleInstanceSize = uint64(unsafe.Sizeof(GPUCircleInstance{}))

// Marshal serializes the instance for GPU upload.
//
// Returns:
//   - []byte: the 16-byte element
func (g *GPUCircleInstance) Marshal() []byte {
	buf := make([]byte, circleInstanceSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Center[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Center[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Radius))
	return buf
}

// NewGPUCircleStyle builds the fill uniform from a colour.
func NewGPUCircleStyle(c common.Color) GPUCircleStyle {
	return GPUCircleStyle{Color: [4]float32{c.R, c.G, c.B, c.A}}
}

// Marshal serializes the style for GPU upload.
//
// Returns:
//   - []byte: the 16-byte uniform
func (g *GPUCircleStyle) Marshal() []byte {
	buf := make([]byte, unsafe.Sizeof(*g))
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

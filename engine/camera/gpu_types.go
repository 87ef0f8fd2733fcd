package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (32 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
type GPUCameraUniform struct {
	Position [2]float32 // offset  0: world-space view centre (vec2<f32>)
	Scale    float32    // offset  8: pixels per world unit (f32)
	_pad0    float32    // offset 12: aligns viewport to 8 bytes
	Viewport [2]float32 // offset 16: viewport size in pixels (vec2<f32>)
	_pad1    [2]float32 // offset 24: pads the struct to 32 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Scale))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Viewport[0]))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Viewport[1]))
	return buf
}

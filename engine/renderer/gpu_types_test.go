package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/dust-bunny/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCircleInstanceLayout(t *testing.T) {
	inst := GPUCircleInstance{Center: [2]float32{1.5, -2}, Radius: 50}
	buf := inst.Marshal()

	require.Len(t, buf, 16)
	assert.Equal(t, uint64(16), circleInstanceSize)
	assert.Equal(t, buf, common.StructToBytes(&inst))
	assert.Equal(t, float32(50), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
}

func TestGPUCircleStyleLayout(t *testing.T) {
	style := NewGPUCircleStyle(common.Color{R: 1, G: 0.5, B: 0.25, A: 1})
	buf := style.Marshal()

	require.Len(t, buf, 16)
	assert.Equal(t, buf, common.StructToBytes(&style))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
}

func TestGPUCircleTypesSource(t *testing.T) {
	assert.Contains(t, GPUCircleTypesSource, "struct CircleStyle")
	assert.Contains(t, GPUCircleTypesSource, "struct CircleInstance")
}

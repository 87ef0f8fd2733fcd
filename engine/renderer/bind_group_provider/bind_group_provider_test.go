package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Circles", WithGroup(2))

	assert.Equal(t, "Circles", p.Label())
	assert.Equal(t, uint32(2), p.Group())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Zero(t, p.BufferSize(0))
}

func TestNeedsGrowth(t *testing.T) {
	p := NewBindGroupProvider("Circles")
	assert.True(t, p.NeedsGrowth(2, 0), "missing buffer always needs allocation")

	p.SetBuffer(2, nil, 64)
	assert.False(t, p.NeedsGrowth(2, 16))
	assert.False(t, p.NeedsGrowth(2, 64))
	assert.True(t, p.NeedsGrowth(2, 65))
	assert.Equal(t, uint64(64), p.BufferSize(2))
}

func TestEntriesInBindingOrder(t *testing.T) {
	p := NewBindGroupProvider("Circles")
	p.SetBuffer(2, nil, 256)
	p.SetBuffer(0, nil, 32)
	p.SetBuffer(1, nil, 16)

	entries := p.Entries()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, uint32(i), e.Binding)
	}
	assert.Equal(t, uint64(32), entries[0].Size)
	assert.Equal(t, uint64(16), entries[1].Size)
	assert.Equal(t, uint64(256), entries[2].Size)
}

func TestReleaseIsRepeatable(t *testing.T) {
	p := NewBindGroupProvider("Circles")
	p.SetBuffer(0, nil, 32)

	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Empty(t, p.Entries())
	assert.True(t, p.NeedsGrowth(0, 1))
}

func TestBufferWriteBounds(t *testing.T) {
	w := BufferWrite{Binding: 1, Offset: 16, Data: make([]byte, 32)}
	assert.Equal(t, uint64(32), w.Len())
	assert.Equal(t, uint64(48), w.End())
}

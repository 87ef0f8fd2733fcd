package bind_group_provider

import (
	"maps"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string
	// group is the @group index this provider is bound at.
	group uint32

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the backend, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not yet created.
	bindGroup *wgpu.BindGroup
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// sizes holds the allocated byte size of each buffer, keyed by binding index.
	sizes map[int]uint64
}

// BindGroupProvider owns the buffers behind one bind group and the bind group built over them.
// The GPU backend holds a single provider for the camera uniform, the circle style and the instance storage.
//
// Usage pattern:
//  1. Backend creates a BindGroupProvider with a label and group index
//  2. Backend allocates each buffer and stores it with SetBuffer
//  3. Backend creates the bind group from the buffers and stores it with SetBindGroup
//  4. Each frame, a buffer that must grow is reallocated (NeedsGrowth), which invalidates the bind group
//  5. Backend binds BindGroup() at Group() for the draw
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. Safe to call more than once.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Group returns the @group index the bind group is set at.
	//
	// Returns:
	//   - uint32: the group index
	Group() uint32

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if the bind group has not been created or was invalidated by a buffer swap.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the buffer at the given binding.
	// Returns nil if it has not been allocated.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// BufferSize returns the allocated byte size of the buffer at the given binding, 0 if none.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - uint64: the allocated size in bytes
	BufferSize(binding int) uint64

	// NeedsGrowth reports whether the buffer at binding is missing or smaller than size bytes.
	//
	// Parameters:
	//   - binding: the binding index
	//   - size: the number of bytes about to be written
	//
	// Returns:
	//   - bool: true if the buffer must be (re)allocated before the write
	NeedsGrowth(binding int, size uint64) bool

	// SetBindGroup sets the bind group after creation, releasing any previous one.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a buffer and its allocated size at the given binding.
	// A previous buffer at that binding is released and the bind group is invalidated.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	//   - size: the allocated size in bytes
	SetBuffer(binding int, buf *wgpu.Buffer, size uint64)

	// Entries returns the bind group entries covering every stored buffer, in binding order.
	//
	// Returns:
	//   - []wgpu.BindGroupEntry: entries ready for a BindGroupDescriptor
	Entries() []wgpu.BindGroupEntry
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
		sizes:   make(map[int]uint64),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() uint32 {
	return p.group
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) BufferSize(binding int) uint64 {
	return p.sizes[binding]
}

func (p *bindGroupProvider) NeedsGrowth(binding int, size uint64) bool {
	if _, ok := p.buffers[binding]; !ok {
		return true
	}
	return p.sizes[binding] < size
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer, size uint64) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
	p.sizes[binding] = size
	p.SetBindGroup(nil)
}

func (p *bindGroupProvider) Entries() []wgpu.BindGroupEntry {
	entries := make([]wgpu.BindGroupEntry, 0, len(p.buffers))
	for _, binding := range slices.Sorted(maps.Keys(p.buffers)) {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: uint32(binding),
			Buffer:  p.buffers[binding],
			Size:    p.sizes[binding],
		})
	}
	return entries
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
		delete(p.sizes, i)
	}
}

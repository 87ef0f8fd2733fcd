package bind_group_provider

// BufferWrite describes a single GPU buffer write targeting a binding of a BindGroupProvider
// at a given byte offset. The backend collects them per frame and flushes them through the queue.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Len returns the number of bytes written, as a buffer size.
func (w BufferWrite) Len() uint64 {
	return uint64(len(w.Data))
}

// End returns the first byte past the write.
func (w BufferWrite) End() uint64 {
	return w.Offset + w.Len()
}

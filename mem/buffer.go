package mem

import (
	pyruntime "github.com/pyembed/py-runtime"
)

// Buffer owns exactly one allocation in the tracked allocator domain.
// The zero value owns nothing.
type Buffer struct {
	alloc pyruntime.Allocator
	ptr   pyruntime.Ptr
	size  uint32
}

// NewBuffer allocates size bytes from the tracked domain.
func NewBuffer(a pyruntime.Allocator, size uint32) (*Buffer, error) {
	ptr, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{alloc: a, ptr: ptr, size: size}, nil
}

// AdoptBuffer takes ownership of an existing tracked-domain allocation.
func AdoptBuffer(a pyruntime.Allocator, ptr pyruntime.Ptr, size uint32) *Buffer {
	return &Buffer{alloc: a, ptr: ptr, size: size}
}

// Ptr returns the owned pointer. It is borrowed: valid only until Free or
// Resize.
func (b *Buffer) Ptr() pyruntime.Ptr { return b.ptr }

// Size returns the size of the owned allocation in bytes.
func (b *Buffer) Size() uint32 { return b.size }

// Resize grows or shrinks the allocation, possibly relocating it. On failure
// the buffer releases its pointer: the old address must not be reused, per
// the underlying realloc contract.
func (b *Buffer) Resize(size uint32) error {
	ptr, err := b.alloc.Realloc(b.ptr, size)
	if err != nil {
		b.ptr = 0
		b.size = 0
		return err
	}
	b.ptr = ptr
	b.size = size
	return nil
}

// Free releases the allocation through the tracked domain. Idempotent.
func (b *Buffer) Free() {
	if b.ptr != 0 {
		b.alloc.Free(b.ptr)
		b.ptr = 0
		b.size = 0
	}
}

// RawBuffer owns exactly one allocation in the raw allocator domain.
// The zero value owns nothing.
type RawBuffer struct {
	alloc pyruntime.Allocator
	ptr   pyruntime.Ptr
	size  uint32
}

// NewRawBuffer allocates size bytes from the raw domain.
func NewRawBuffer(a pyruntime.Allocator, size uint32) (*RawBuffer, error) {
	ptr, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	return &RawBuffer{alloc: a, ptr: ptr, size: size}, nil
}

// AdoptRawBuffer takes ownership of an existing raw-domain allocation.
func AdoptRawBuffer(a pyruntime.Allocator, ptr pyruntime.Ptr, size uint32) *RawBuffer {
	return &RawBuffer{alloc: a, ptr: ptr, size: size}
}

// Ptr returns the owned pointer. It is borrowed: valid only until Free or
// Resize.
func (b *RawBuffer) Ptr() pyruntime.Ptr { return b.ptr }

// Size returns the size of the owned allocation in bytes.
func (b *RawBuffer) Size() uint32 { return b.size }

// Resize grows or shrinks the allocation, possibly relocating it. On failure
// the buffer releases its pointer: the old address must not be reused, per
// the underlying realloc contract.
func (b *RawBuffer) Resize(size uint32) error {
	ptr, err := b.alloc.Realloc(b.ptr, size)
	if err != nil {
		b.ptr = 0
		b.size = 0
		return err
	}
	b.ptr = ptr
	b.size = size
	return nil
}

// Free releases the allocation through the raw domain. Idempotent.
func (b *RawBuffer) Free() {
	if b.ptr != 0 {
		b.alloc.Free(b.ptr)
		b.ptr = 0
		b.size = 0
	}
}

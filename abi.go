package pyruntime

// Ref is a foreign object pointer inside the interpreter's heap.
// Ref 0 is the null reference.
type Ref uint32

// IsNull reports whether the reference is null.
func (r Ref) IsNull() bool { return r == 0 }

// Ptr is a raw address in the interpreter's heap, without object semantics.
// Ptr 0 is null.
type Ptr uint32

// Memory represents the interpreter's linear memory
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// Allocator is one allocation domain of the interpreter heap.
//
// Two domains exist per interpreter. The tracked domain participates in the
// interpreter's memory accounting and is only valid while the runtime is
// initialized; the raw domain is valid before and after initialization.
// An allocation must be freed through the domain it was obtained from.
type Allocator interface {
	// Alloc returns size bytes, or an allocation error if the domain is
	// exhausted.
	Alloc(size uint32) (Ptr, error)

	// Realloc grows or shrinks an allocation, possibly relocating it.
	// Callers must not assume the old pointer is still valid once Realloc
	// has been called, whether it succeeds or fails.
	Realloc(ptr Ptr, size uint32) (Ptr, error)

	// Free releases an allocation. Freeing Ptr 0 is a no-op.
	Free(ptr Ptr)
}

package enginetest

import (
	"encoding/binary"
	"fmt"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/errors"
)

// Domain selects one of the two allocator domains.
type Domain int

const (
	DomainTracked Domain = iota
	DomainRaw
)

func (d Domain) String() string {
	if d == DomainTracked {
		return "tracked"
	}
	return "raw"
}

type allocInfo struct {
	size   uint32
	domain Domain
}

// arena is a grow-only byte heap shared by both domains, with per-domain
// accounting. Address 0 is reserved so that Ptr 0 stays null.
type arena struct {
	data     []byte
	live     map[uint32]allocInfo
	allocs   [2]int
	frees    [2]int
	failNext [2]bool
}

func newArena() *arena {
	return &arena{
		data: make([]byte, 8), // burn low addresses, 0 must stay unused
		live: make(map[uint32]allocInfo),
	}
}

func (a *arena) alloc(d Domain, size uint32) (pyruntime.Ptr, error) {
	if a.failNext[d] {
		a.failNext[d] = false
		return 0, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	if size == 0 {
		size = 1
	}
	ptr := uint32(len(a.data))
	a.data = append(a.data, make([]byte, size)...)
	a.live[ptr] = allocInfo{size: size, domain: d}
	a.allocs[d]++
	return pyruntime.Ptr(ptr), nil
}

func (a *arena) free(d Domain, ptr pyruntime.Ptr) {
	if ptr == 0 {
		return
	}
	info, ok := a.live[uint32(ptr)]
	if !ok {
		panic(fmt.Sprintf("enginetest: free of unallocated pointer %#x", ptr))
	}
	if info.domain != d {
		panic(fmt.Sprintf("enginetest: pointer %#x allocated from %s domain, freed through %s",
			ptr, info.domain, d))
	}
	delete(a.live, uint32(ptr))
	a.frees[d]++
}

func (a *arena) realloc(d Domain, ptr pyruntime.Ptr, size uint32) (pyruntime.Ptr, error) {
	if ptr == 0 {
		return a.alloc(d, size)
	}
	info, ok := a.live[uint32(ptr)]
	if !ok || info.domain != d {
		panic(fmt.Sprintf("enginetest: realloc of pointer %#x outside %s domain", ptr, d))
	}
	next, err := a.alloc(d, size)
	if err != nil {
		// The old block is gone either way, per the realloc contract.
		a.free(d, ptr)
		return 0, err
	}
	n := info.size
	if size < n {
		n = size
	}
	copy(a.data[next:uint32(next)+n], a.data[ptr:uint32(ptr)+n])
	a.free(d, ptr)
	return next, nil
}

// domainAlloc adapts one arena domain to the Allocator interface.
type domainAlloc struct {
	ip *Interp
	d  Domain
}

func (a domainAlloc) Alloc(size uint32) (pyruntime.Ptr, error) {
	if a.d == DomainTracked && !a.ip.initialized {
		return 0, errors.NotRunning("tracked allocation")
	}
	return a.ip.arena.alloc(a.d, size)
}

func (a domainAlloc) Realloc(ptr pyruntime.Ptr, size uint32) (pyruntime.Ptr, error) {
	if a.d == DomainTracked && !a.ip.initialized {
		return 0, errors.NotRunning("tracked reallocation")
	}
	return a.ip.arena.realloc(a.d, ptr, size)
}

func (a domainAlloc) Free(ptr pyruntime.Ptr) {
	a.ip.arena.free(a.d, ptr)
}

// guestMemory exposes the arena as interpreter linear memory.
type guestMemory struct {
	ip *Interp
}

func (m guestMemory) bounds(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(m.ip.arena.data)) {
		return errors.InvalidInput(errors.PhaseRuntime,
			fmt.Sprintf("memory access [%#x, %#x) out of bounds", offset, offset+length))
	}
	return nil
}

func (m guestMemory) Read(offset, length uint32) ([]byte, error) {
	if err := m.bounds(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.ip.arena.data[offset:offset+length])
	return out, nil
}

func (m guestMemory) Write(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.ip.arena.data[offset:], data)
	return nil
}

func (m guestMemory) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.ip.arena.data[offset], nil
}

func (m guestMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.ip.arena.data[offset:]), nil
}

func (m guestMemory) ReadU64(offset uint32) (uint64, error) {
	if err := m.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.ip.arena.data[offset:]), nil
}

func (m guestMemory) WriteU8(offset uint32, value uint8) error {
	if err := m.bounds(offset, 1); err != nil {
		return err
	}
	m.ip.arena.data[offset] = value
	return nil
}

func (m guestMemory) WriteU32(offset uint32, value uint32) error {
	if err := m.bounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.ip.arena.data[offset:], value)
	return nil
}

func (m guestMemory) WriteU64(offset uint32, value uint64) error {
	if err := m.bounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.ip.arena.data[offset:], value)
	return nil
}

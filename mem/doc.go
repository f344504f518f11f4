// Package mem provides scoped owners for single allocations in the
// interpreter's two heap domains.
//
// Buffer owns an allocation in the tracked domain, which participates in the
// interpreter's memory accounting and is only valid while the runtime is
// initialized. RawBuffer owns an allocation in the raw domain, which is valid
// at any time. The two types are deliberately distinct and not convertible:
// an allocation is always freed through the domain it was obtained from.
//
//	buf, err := mem.NewRawBuffer(alloc, 16)
//	if err != nil {
//	    return err
//	}
//	defer buf.Free()
//
// Free is idempotent. After Resize the previous pointer must be considered
// invalid whether or not the call succeeded, matching the underlying realloc
// contract.
package mem

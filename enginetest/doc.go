// Package enginetest provides an in-memory interpreter backend for tests.
//
// Interp implements the same boundary surface as the wazero-backed engine —
// object.API, codec.Converter, linear memory and both allocator domains —
// over a pure-Go object table and byte arena, so ownership and encoding
// behavior can be tested without an interpreter binary.
//
// The backend instruments everything the library's contracts promise:
// reference count mutations, live objects, and per-domain allocation
// accounting.
//
//	ip := enginetest.New()
//	h, _ := object.NewStr(ip, "hello")
//	before := ip.DecRefCalls()
//	h.Release()
//	h.Release() // no-op: DecRefCalls unchanged
//
// Like the real interpreter, Interp is not safe for concurrent use.
package enginetest

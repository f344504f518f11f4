// Package pyruntime provides a Go ownership and type-safety layer over an
// embedded, reference-counted Python-style interpreter.
//
// The interpreter is compiled to WebAssembly and hosted in-process through
// wazero. Host code never touches foreign objects directly; it acquires
// reference-counted handles, inspects dynamic types, and bridges text between
// Go's UTF-8 strings and the interpreter's narrow/wide representations.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	pyruntime/       Root package with core Memory and Allocator interfaces
//	├── runtime/     Interpreter lifecycle: Start, Stop, Execute, Import
//	├── engine/      Low-level wazero binding of the interpreter ABI
//	├── object/      Reference-counted handles and typed wrappers
//	├── codec/       Narrow/wide text converters and string views
//	├── mem/         Scoped buffers for the two allocator domains
//	├── errors/      Structured error types for debugging
//	└── enginetest/  In-memory interpreter backend for tests
//
// # Quick Start
//
// Load an interpreter binary and run code:
//
//	rt, err := runtime.New(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	if err := rt.Start(true); err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Stop()
//
//	rt.Execute(`print("hello")`)
//
//	mod, err := rt.Import("json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Release()
//
// # Ownership Model
//
// Every live object.Handle holding a non-null reference contributes exactly
// one count to the foreign object's reference count. Handles are released
// explicitly, typically with defer:
//
//	h, err := object.NewStr(rt.API(), "hello")
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
// Release is idempotent and safe on null handles. Copying a Handle struct
// does NOT add a reference; use Clone for shared ownership.
//
// # Memory Model
//
// The interpreter partitions its heap into two allocator domains. The tracked
// domain participates in interpreter memory accounting and is valid only
// while the runtime is initialized; the raw domain is valid at any time.
// The mem package provides a distinct scoped owner type per domain so that an
// allocation is always freed through the domain it came from.
//
// # Thread Safety
//
// The core is synchronous. Handles referencing the same foreign object must
// not be manipulated from multiple goroutines unless the caller holds
// whatever interpreter-level exclusion the embedded runtime requires.
package pyruntime

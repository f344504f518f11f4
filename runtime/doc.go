// Package runtime provides the high-level API for embedding the
// interpreter.
//
// # Quick Start
//
//	ctx := context.Background()
//	rt, err := runtime.New(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	if err := rt.Start(false); err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Stop()
//
//	if err := rt.Execute(`print("hello")`); err != nil {
//	    log.Fatal(err)
//	}
//
// # Lifecycle
//
// Start and Stop drive the interpreter's process-wide lifecycle. Every
// object handle, typed wrapper and tracked-domain buffer obtained from the
// runtime is valid only between Start and Stop; none may outlive Stop.
// Raw-domain buffers survive the whole process lifetime.
//
// # Backends
//
// New binds a wasm interpreter binary through the engine package. Tests use
// NewWithBackend to substitute an in-memory backend such as
// enginetest.Interp.
package runtime

// Package engine binds the embedded interpreter's wasm binary through
// wazero and exposes it as the object, codec and lifecycle surfaces the
// runtime package builds on.
//
// The interpreter is an ordinary core wasm module compiled against WASI
// preview 1. Its C ABI exports are listed in names.go; the engine resolves
// them once at instantiation and caches the function handles. References and
// pointers cross the boundary as u32 values, with 0 reserved as the null
// reference and failure sentinel.
//
// When a primitive reports failure the engine consults py_err_kind to
// classify the error, but it never clears the guest's pending error
// indicator. Clearing remains the guest convention's business.
package engine

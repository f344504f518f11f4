// Package errors provides structured error types for the py-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries detail text and a cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.AllocationFailed(errors.PhaseAlloc, 64)
//	err := errors.LookupFailed(errors.PhaseLookup, "attribute", "spam")
//	err := errors.EncodingFailed(errors.PhaseEncode, '\ud800')
//
// Failures that originate inside the interpreter surface as KindPending:
// the interpreter's own error indicator is still set and it is the caller's
// responsibility to resolve it before issuing further operations.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

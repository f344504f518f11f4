// Package object provides reference-counted handles to interpreter objects.
//
// # Ownership
//
// Every live Handle holding a non-null reference contributes exactly one
// count to the foreign object's reference count. A Handle is constructed by
// wrapping a raw reference (adopting a count the caller already owns, or
// sharing by incrementing), by cloning another Handle, or through a typed
// factory that creates a fresh interpreter object.
//
//	h := object.Wrap(api, ref, true) // adopt: no increment
//	defer h.Release()
//
//	dup := h.Clone() // share: increments
//	defer dup.Release()
//
// Release decrements once and nulls the handle; it is idempotent and safe on
// null handles. Assigning or passing a Handle by value does NOT add a
// reference; the copies alias one count and only one of them may be released.
// Use Clone when both sides need ownership.
//
// # Typed handles
//
// Str, Int, Float, Tuple, List, Dict, Module and Callable narrow a Handle to
// one built-in type's operations. Narrowing via AsStr, AsInt, ... shares
// ownership and performs no dynamic type check — the interpreter's own
// convention for downcasts. Callers assert the type first:
//
//	if h.IsStr() {
//	    s := object.AsStr(h)
//	    defer s.Release()
//	    text, err := s.UTF8()
//	    ...
//	}
//
// # Reference conventions at the boundary
//
// The API interface documents, per primitive, whether a returned reference is
// new (the wrapper adopts it) or borrowed (the wrapper shares it), and
// whether an argument reference is stolen (the wrapper increments before
// handing it over). These conventions follow the interpreter's embedding
// contract primitive by primitive; they are not symmetric and must not be
// guessed.
package object

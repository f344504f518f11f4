package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAlloc   Phase = "alloc"   // allocator domain operations
	PhaseEncode  Phase = "encode"  // wide to narrow text conversion
	PhaseDecode  Phase = "decode"  // narrow to wide text conversion
	PhaseLookup  Phase = "lookup"  // attribute and mapping lookup
	PhaseConvert Phase = "convert" // foreign object to host scalar
	PhaseCall    Phase = "call"    // callable invocation
	PhaseLoad    Phase = "load"    // interpreter binary loading
	PhaseRuntime Phase = "runtime" // lifecycle and general operations
)

// Kind categorizes the error
type Kind string

const (
	KindAllocation   Kind = "allocation"    // allocator domain exhausted
	KindEncoding     Kind = "encoding"      // character unrepresentable in target encoding
	KindLookup       Kind = "lookup"        // named attribute or key does not exist
	KindConversion   Kind = "conversion"    // value not convertible to requested scalar
	KindOverflow     Kind = "overflow"      // scalar out of range for host type
	KindNullRef      Kind = "null_ref"      // operation applied to a null reference
	KindPending      Kind = "pending"       // interpreter error indicator is set
	KindNotFound     Kind = "not_found"     // export or module missing
	KindNotRunning   Kind = "not_running"   // interpreter not initialized
	KindInvalidInput Kind = "invalid_input" // malformed host-side input
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when their
// Phase and Kind agree; a zero Phase in the target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is an *Error of the given kind, at any phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Convenience constructors for common error patterns

// AllocationFailed reports an exhausted allocator domain.
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// EncodingFailed reports a character that the target encoding cannot
// represent.
func EncodingFailed(phase Phase, r rune) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Detail: fmt.Sprintf("character %U not representable in target encoding", r),
		Value:  r,
	}
}

// LookupFailed reports a missing attribute or mapping key.
func LookupFailed(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLookup,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ConversionFailed reports a foreign object that cannot be converted to the
// requested host scalar type.
func ConversionFailed(phase Phase, target string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConversion,
		Detail: fmt.Sprintf("cannot convert to %s: %s", target, detail),
	}
}

// Overflow reports a scalar out of range for the host type.
func Overflow(phase Phase, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value out of range for %s", target),
	}
}

// NullRef reports an operation applied to a null reference.
func NullRef(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullRef,
		Detail: fmt.Sprintf("%s on null reference", op),
	}
}

// Pending reports a failed interpreter primitive. The interpreter's own
// error indicator is left set for the caller to resolve.
func Pending(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPending,
		Detail: fmt.Sprintf("%s failed; interpreter error indicator is set", op),
	}
}

// NotFound reports a missing export or module.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotRunning reports an operation that requires an initialized interpreter.
func NotRunning(op string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindNotRunning,
		Detail: fmt.Sprintf("%s requires an initialized interpreter", op),
	}
}

// InvalidInput reports malformed host-side input.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load reports a failure while loading the interpreter binary.
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with phase and kind context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

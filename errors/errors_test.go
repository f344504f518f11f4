package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindEncoding,
				Detail: "character U+D800 not representable",
			},
			contains: []string{"[encode]", "encoding", "U+D800"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAlloc,
				Kind:  KindAllocation,
			},
			contains: []string{"[alloc]", "allocation"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidInput,
				Detail: "load interpreter",
				Cause:  errors.New("short read"),
			},
			contains: []string{"[load]", "invalid_input", "load interpreter", "caused by", "short read"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseRuntime, KindPending, cause, "execute")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := LookupFailed(PhaseLookup, "attribute", "spam")

	if !errors.Is(err, &Error{Phase: PhaseLookup, Kind: KindLookup}) {
		t.Error("should match same phase and kind")
	}
	if !errors.Is(err, &Error{Kind: KindLookup}) {
		t.Error("zero phase in target should match any phase")
	}
	if errors.Is(err, &Error{Phase: PhaseLookup, Kind: KindConversion}) {
		t.Error("should not match different kind")
	}
	if errors.Is(err, errors.New("lookup")) {
		t.Error("should not match a plain error")
	}
}

func TestIsKind(t *testing.T) {
	err := AllocationFailed(PhaseAlloc, 64)
	if !IsKind(err, KindAllocation) {
		t.Error("IsKind should report allocation")
	}
	if IsKind(err, KindEncoding) {
		t.Error("IsKind should not report encoding")
	}

	wrapped := Wrap(PhaseRuntime, KindPending, err, "outer")
	if !IsKind(wrapped, KindAllocation) {
		t.Error("IsKind should unwrap to find allocation")
	}
	if !IsKind(wrapped, KindPending) {
		t.Error("IsKind should match the outer kind")
	}
	if IsKind(nil, KindAllocation) {
		t.Error("IsKind on nil should be false")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		phase Phase
		kind  Kind
	}{
		{AllocationFailed(PhaseAlloc, 16), PhaseAlloc, KindAllocation},
		{EncodingFailed(PhaseEncode, 0xD800), PhaseEncode, KindEncoding},
		{LookupFailed(PhaseLookup, "attribute", "x"), PhaseLookup, KindLookup},
		{ConversionFailed(PhaseConvert, "int64", "not a number"), PhaseConvert, KindConversion},
		{Overflow(PhaseConvert, "int64"), PhaseConvert, KindOverflow},
		{NullRef(PhaseRuntime, "len"), PhaseRuntime, KindNullRef},
		{Pending(PhaseCall, "call"), PhaseCall, KindPending},
		{NotFound(PhaseLoad, "export", "py_incref"), PhaseLoad, KindNotFound},
		{NotRunning("execute"), PhaseRuntime, KindNotRunning},
		{InvalidInput(PhaseRuntime, "empty name"), PhaseRuntime, KindInvalidInput},
	}

	for _, tt := range tests {
		if tt.err.Phase != tt.phase {
			t.Errorf("%v: phase = %q, want %q", tt.err, tt.err.Phase, tt.phase)
		}
		if tt.err.Kind != tt.kind {
			t.Errorf("%v: kind = %q, want %q", tt.err, tt.err.Kind, tt.kind)
		}
	}
}

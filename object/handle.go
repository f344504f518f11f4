package object

import (
	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/errors"
)

// Handle is a reference-counted owner of one interpreter object.
//
// The zero Handle is null. Handles are released explicitly; Release is
// idempotent and releasing a null Handle is a no-op. See the package
// documentation for the copy/clone contract.
type Handle struct {
	api API
	ref pyruntime.Ref
}

// Wrap builds a Handle around a raw reference. With adopt true the Handle
// takes over one reference the caller already owns; with adopt false it
// increments first, leaving the caller's reference untouched. A null ref is
// legal and yields a null Handle.
func Wrap(api API, ref pyruntime.Ref, adopt bool) Handle {
	if !adopt && ref != 0 {
		api.IncRef(ref)
	}
	return Handle{api: api, ref: ref}
}

// NewNone returns a handle sharing the distinguished none singleton.
func NewNone(api API) Handle {
	return Wrap(api, api.NoneRef(), false)
}

// API returns the interpreter protocol this handle was created against.
func (h Handle) API() API { return h.api }

// Ref returns the underlying reference, borrowed: it is valid only for the
// Handle's lifetime and carries no ownership.
func (h Handle) Ref() pyruntime.Ref { return h.ref }

// IsNull reports whether the handle holds no object.
func (h Handle) IsNull() bool { return h.ref == 0 }

// Clone returns an independently owned Handle sharing the same object,
// incrementing the reference count. Cloning a null Handle is a no-op.
func (h Handle) Clone() Handle {
	if h.ref != 0 {
		h.api.IncRef(h.ref)
	}
	return h
}

// Release decrements the reference count once if the handle is non-null,
// then nulls it. Idempotent.
func (h *Handle) Release() {
	if h.ref != 0 {
		h.api.DecRef(h.ref)
		h.ref = 0
	}
}

// RefCount returns the object's live reference count. Diagnostic only;
// undefined for a null handle.
func (h Handle) RefCount() int64 {
	return h.api.RefCount(h.ref)
}

// Equal reports pointer identity: both handles reference the same object.
func (h Handle) Equal(other Handle) bool {
	return h.ref == other.ref
}

// Set replaces the handle's object with other's, releasing the old reference
// and sharing the new one.
func (h *Handle) Set(other Handle) {
	if h.ref == other.ref {
		return
	}
	if other.ref != 0 {
		other.api.IncRef(other.ref)
	}
	h.Release()
	h.api = other.api
	h.ref = other.ref
}

// GetAttr looks up a named attribute and returns a new owned Handle. A
// missing attribute is a lookup error; the receiver's own reference count is
// unchanged on failure.
func (h Handle) GetAttr(name string) (Handle, error) {
	if h.ref == 0 {
		return Handle{}, errors.NullRef(errors.PhaseLookup, "attribute lookup")
	}
	ref, err := h.api.GetAttr(h.ref, name)
	if err != nil {
		return Handle{}, err
	}
	return Wrap(h.api, ref, true), nil
}

// Len returns the object's length protocol result.
func (h Handle) Len() (int64, error) {
	if h.ref == 0 {
		return 0, errors.NullRef(errors.PhaseRuntime, "len")
	}
	return h.api.Length(h.ref)
}

// TypeName returns the object's type name in 'module.name' form.
func (h Handle) TypeName() string {
	if h.ref == 0 {
		return ""
	}
	return h.api.TypeName(h.ref)
}

// Doc returns the documentation string of the object's type.
func (h Handle) Doc() string {
	if h.ref == 0 {
		return ""
	}
	return h.api.TypeDoc(h.ref)
}

func (h Handle) is(k Kind) bool {
	return h.ref != 0 && h.api.Is(h.ref, k)
}

func (h Handle) isExact(k Kind) bool {
	return h.ref != 0 && h.api.IsExact(h.ref, k)
}

// IsNone reports whether the handle references the none singleton. A null
// handle is not none: the two concepts are distinct.
func (h Handle) IsNone() bool {
	return h.ref != 0 && h.ref == h.api.NoneRef()
}

// IsCallable reports whether the object can be called.
func (h Handle) IsCallable() bool {
	return h.ref != 0 && h.api.IsCallable(h.ref)
}

// IsNumber reports whether the object provides the numeric protocols.
func (h Handle) IsNumber() bool {
	return h.ref != 0 && h.api.IsNumber(h.ref)
}

// IsBool reports whether the object is a bool.
func (h Handle) IsBool() bool { return h.is(KindBool) }

// IsInt reports whether the object is an int or a subtype.
func (h Handle) IsInt() bool { return h.is(KindInt) }

// IsIntExact reports whether the object is exactly an int.
func (h Handle) IsIntExact() bool { return h.isExact(KindInt) }

// IsFloat reports whether the object is a float or a subtype.
func (h Handle) IsFloat() bool { return h.is(KindFloat) }

// IsFloatExact reports whether the object is exactly a float.
func (h Handle) IsFloatExact() bool { return h.isExact(KindFloat) }

// IsComplex reports whether the object is a complex or a subtype.
func (h Handle) IsComplex() bool { return h.is(KindComplex) }

// IsComplexExact reports whether the object is exactly a complex.
func (h Handle) IsComplexExact() bool { return h.isExact(KindComplex) }

// IsStr reports whether the object is a str or a subtype.
func (h Handle) IsStr() bool { return h.is(KindStr) }

// IsStrExact reports whether the object is exactly a str.
func (h Handle) IsStrExact() bool { return h.isExact(KindStr) }

// IsBytes reports whether the object is a bytes or a subtype.
func (h Handle) IsBytes() bool { return h.is(KindBytes) }

// IsBytesExact reports whether the object is exactly a bytes.
func (h Handle) IsBytesExact() bool { return h.isExact(KindBytes) }

// IsByteArray reports whether the object is a bytearray or a subtype.
func (h Handle) IsByteArray() bool { return h.is(KindByteArray) }

// IsByteArrayExact reports whether the object is exactly a bytearray.
func (h Handle) IsByteArrayExact() bool { return h.isExact(KindByteArray) }

// IsTuple reports whether the object is a tuple or a subtype.
func (h Handle) IsTuple() bool { return h.is(KindTuple) }

// IsTupleExact reports whether the object is exactly a tuple.
func (h Handle) IsTupleExact() bool { return h.isExact(KindTuple) }

// IsList reports whether the object is a list or a subtype.
func (h Handle) IsList() bool { return h.is(KindList) }

// IsListExact reports whether the object is exactly a list.
func (h Handle) IsListExact() bool { return h.isExact(KindList) }

// IsDict reports whether the object is a dict or a subtype.
func (h Handle) IsDict() bool { return h.is(KindDict) }

// IsDictExact reports whether the object is exactly a dict.
func (h Handle) IsDictExact() bool { return h.isExact(KindDict) }

// IsSet reports whether the object is a set or a subtype.
func (h Handle) IsSet() bool { return h.is(KindSet) }

// IsFrozenSet reports whether the object is a frozenset or a subtype.
func (h Handle) IsFrozenSet() bool { return h.is(KindFrozenSet) }

// IsModule reports whether the object is a module.
func (h Handle) IsModule() bool { return h.is(KindModule) }

// IsFunction reports whether the object is a function object.
func (h Handle) IsFunction() bool { return h.isExact(KindFunction) }

// IsMethod reports whether the object is a method object.
func (h Handle) IsMethod() bool { return h.isExact(KindMethod) }

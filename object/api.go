package object

import (
	pyruntime "github.com/pyembed/py-runtime"
)

// Kind identifies one of the interpreter's built-in dynamic types.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindComplex
	KindStr
	KindBytes
	KindByteArray
	KindTuple
	KindList
	KindDict
	KindSet
	KindFrozenSet
	KindModule
	KindFunction
	KindMethod
	KindCode
	KindCapsule
)

// API is the object protocol of the embedded interpreter.
//
// Reference ownership is stated per primitive: "new" means the caller owns
// the returned reference and must release it; "borrowed" means the reference
// is owned by the container or the runtime and the caller must increment to
// keep it; "steals" means the primitive consumes one reference from the
// caller. Primitives that fail leave the interpreter's error indicator set
// and surface a structured error; this package never clears that indicator.
type API interface {
	// Reference counting. IncRef and DecRef tolerate the null reference.
	IncRef(ref pyruntime.Ref)
	DecRef(ref pyruntime.Ref)
	RefCount(ref pyruntime.Ref) int64

	// Dynamic type queries. Is allows subtypes, IsExact does not.
	Is(ref pyruntime.Ref, k Kind) bool
	IsExact(ref pyruntime.Ref, k Kind) bool
	IsCallable(ref pyruntime.Ref) bool
	IsNumber(ref pyruntime.Ref) bool

	// NoneRef returns the distinguished none singleton. Borrowed.
	NoneRef() pyruntime.Ref

	// GetAttr looks up a named attribute. New.
	GetAttr(obj pyruntime.Ref, name string) (pyruntime.Ref, error)

	// Length returns the object's length protocol result.
	Length(ref pyruntime.Ref) (int64, error)

	TypeName(ref pyruntime.Ref) string
	TypeDoc(ref pyruntime.Ref) string

	// Factories. All return a new reference.
	StrFromUTF8(s string) (pyruntime.Ref, error)
	StrFromWide(text []rune) (pyruntime.Ref, error)
	IntFromInt64(v int64) (pyruntime.Ref, error)
	IntFromUint64(v uint64) (pyruntime.Ref, error)
	IntFromString(s string, base int) (pyruntime.Ref, error)
	FloatFromFloat64(v float64) (pyruntime.Ref, error)
	FloatFromStr(s pyruntime.Ref) (pyruntime.Ref, error)
	TupleNew(n int) (pyruntime.Ref, error)
	ListNew(n int) (pyruntime.Ref, error)
	DictNew() (pyruntime.Ref, error)

	// Scalar extraction. StrUTF8 returns the object's cached narrow form;
	// the result is host-owned. StrWide copies into a fresh tracked-domain
	// wide buffer owned by the caller; size includes the NUL terminator.
	StrUTF8(ref pyruntime.Ref) (string, error)
	StrWide(ref pyruntime.Ref) (pyruntime.Ptr, uint32, error)
	IntAsInt64(ref pyruntime.Ref) (int64, error)
	IntAsUint64(ref pyruntime.Ref) (uint64, error)
	FloatAsFloat64(ref pyruntime.Ref) (float64, error)

	// Sequence protocol. Getters return borrowed references. Setters steal
	// one reference from the caller; Append and Insert do not.
	TupleSize(t pyruntime.Ref) (int, error)
	TupleGet(t pyruntime.Ref, i int) (pyruntime.Ref, error)
	TupleSet(t pyruntime.Ref, i int, v pyruntime.Ref) error
	ListSize(l pyruntime.Ref) (int, error)
	ListGet(l pyruntime.Ref, i int) (pyruntime.Ref, error)
	ListSet(l pyruntime.Ref, i int, v pyruntime.Ref) error
	ListAppend(l pyruntime.Ref, v pyruntime.Ref) error
	ListInsert(l pyruntime.Ref, i int, v pyruntime.Ref) error
	ListSlice(l pyruntime.Ref, lo, hi int) (pyruntime.Ref, error) // new
	ListSort(l pyruntime.Ref) error
	ListReverse(l pyruntime.Ref) error
	ListAsTuple(l pyruntime.Ref) (pyruntime.Ref, error) // new

	// Mapping protocol. DictGet and DictSetDefault return borrowed
	// references; DictSet does not steal. Copies and the items/keys/values
	// lists are new.
	DictSize(d pyruntime.Ref) (int, error)
	DictGet(d, key pyruntime.Ref) (pyruntime.Ref, error)
	DictSet(d, key, v pyruntime.Ref) error
	DictDel(d, key pyruntime.Ref) error
	DictContains(d, key pyruntime.Ref) (bool, error)
	DictClear(d pyruntime.Ref) error
	DictCopy(d pyruntime.Ref) (pyruntime.Ref, error)
	DictItems(d pyruntime.Ref) (pyruntime.Ref, error)
	DictKeys(d pyruntime.Ref) (pyruntime.Ref, error)
	DictValues(d pyruntime.Ref) (pyruntime.Ref, error)
	DictSetDefault(d, key, def pyruntime.Ref) (pyruntime.Ref, error)

	// Call protocol. Results are new references. A null args reference in
	// CallObject means no arguments; a null kwargs reference in Call means
	// no keyword arguments.
	CallNoArgs(fn pyruntime.Ref) (pyruntime.Ref, error)
	CallOneArg(fn, arg pyruntime.Ref) (pyruntime.Ref, error)
	CallObject(fn, args pyruntime.Ref) (pyruntime.Ref, error)
	Call(fn, args, kwargs pyruntime.Ref) (pyruntime.Ref, error)

	// Modules. Import resolves through the interpreter's import machinery;
	// the result and the filename object are new references.
	Import(name pyruntime.Ref) (pyruntime.Ref, error)
	ModuleFilename(m pyruntime.Ref) (pyruntime.Ref, error)
}

package engine

import (
	"math"

	pyruntime "github.com/pyembed/py-runtime"
	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/errors"
	"github.com/pyembed/py-runtime/object"
)

// writeNarrow copies a NUL-terminated narrow string into the raw domain.
// The caller frees it through RawMem.
func (e *Engine) writeNarrow(s string) (pyruntime.Ptr, error) {
	buf := append([]byte(s), 0)
	ptr, err := e.RawMem().Alloc(uint32(len(buf)))
	if err != nil {
		return 0, err
	}
	if err := e.Memory().Write(uint32(ptr), buf); err != nil {
		e.RawMem().Free(ptr)
		return 0, err
	}
	return ptr, nil
}

// writeWide copies NUL-terminated wide text into the raw domain.
func (e *Engine) writeWide(text []rune) (pyruntime.Ptr, error) {
	buf := make([]byte, 0, (len(text)+1)*4)
	for _, r := range text {
		buf = append(buf, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	buf = append(buf, 0, 0, 0, 0)
	ptr, err := e.RawMem().Alloc(uint32(len(buf)))
	if err != nil {
		return 0, err
	}
	if err := e.Memory().Write(uint32(ptr), buf); err != nil {
		e.RawMem().Free(ptr)
		return 0, err
	}
	return ptr, nil
}

// Reference counting.

func (e *Engine) IncRef(ref pyruntime.Ref) {
	if ref == 0 {
		return
	}
	_ = e.call0(fnIncRef, uint64(ref))
}

func (e *Engine) DecRef(ref pyruntime.Ref) {
	if ref == 0 {
		return
	}
	_ = e.call0(fnDecRef, uint64(ref))
}

func (e *Engine) RefCount(ref pyruntime.Ref) int64 {
	v, err := e.call1(fnRefCount, uint64(ref))
	if err != nil {
		return 0
	}
	return int64(v)
}

// Dynamic type queries.

func (e *Engine) Is(ref pyruntime.Ref, k object.Kind) bool {
	v, err := e.call1(fnCheck, uint64(ref), uint64(k))
	return err == nil && v != 0
}

func (e *Engine) IsExact(ref pyruntime.Ref, k object.Kind) bool {
	v, err := e.call1(fnCheckExact, uint64(ref), uint64(k))
	return err == nil && v != 0
}

func (e *Engine) IsCallable(ref pyruntime.Ref) bool {
	v, err := e.call1(fnCallableCheck, uint64(ref))
	return err == nil && v != 0
}

func (e *Engine) IsNumber(ref pyruntime.Ref) bool {
	v, err := e.call1(fnNumberCheck, uint64(ref))
	return err == nil && v != 0
}

func (e *Engine) NoneRef() pyruntime.Ref {
	v, err := e.call1(fnNone)
	if err != nil {
		return 0
	}
	return pyruntime.Ref(v)
}

// Attributes, length, type introspection.

func (e *Engine) GetAttr(obj pyruntime.Ref, name string) (pyruntime.Ref, error) {
	ptr, err := e.writeNarrow(name)
	if err != nil {
		return 0, err
	}
	defer e.RawMem().Free(ptr)
	return e.refResult(fnGetAttr, errors.PhaseLookup, name, uint64(obj), uint64(ptr))
}

func (e *Engine) Length(ref pyruntime.Ref) (int64, error) {
	v, err := e.call1(fnLen, uint64(ref))
	if err != nil {
		return 0, err
	}
	n := int64(v)
	if n < 0 {
		return 0, e.pendingError(errors.PhaseRuntime, "len")
	}
	return n, nil
}

// readStaticNarrow reads a guest-owned narrow string the host must not free.
func (e *Engine) readStaticNarrow(name string, params ...uint64) string {
	v, err := e.call1(name, params...)
	if err != nil || v == 0 {
		return ""
	}
	s, err := codec.ReadNarrow(e.Memory(), pyruntime.Ptr(v))
	if err != nil {
		return ""
	}
	return s
}

func (e *Engine) TypeName(ref pyruntime.Ref) string {
	return e.readStaticNarrow(fnTypeName, uint64(ref))
}

func (e *Engine) TypeDoc(ref pyruntime.Ref) string {
	return e.readStaticNarrow(fnTypeDoc, uint64(ref))
}

// Factories.

func (e *Engine) StrFromUTF8(s string) (pyruntime.Ref, error) {
	ptr, err := e.writeNarrow(s)
	if err != nil {
		return 0, err
	}
	defer e.RawMem().Free(ptr)
	return e.refResult(fnStrFromUTF8, errors.PhaseDecode, "str", uint64(ptr))
}

func (e *Engine) StrFromWide(text []rune) (pyruntime.Ref, error) {
	ptr, err := e.writeWide(text)
	if err != nil {
		return 0, err
	}
	defer e.RawMem().Free(ptr)
	return e.refResult(fnStrFromWide, errors.PhaseDecode, "str", uint64(ptr))
}

func (e *Engine) IntFromInt64(v int64) (pyruntime.Ref, error) {
	return e.refResult(fnLongFromI64, errors.PhaseConvert, "int", uint64(v))
}

func (e *Engine) IntFromUint64(v uint64) (pyruntime.Ref, error) {
	return e.refResult(fnLongFromU64, errors.PhaseConvert, "int", v)
}

func (e *Engine) IntFromString(s string, base int) (pyruntime.Ref, error) {
	ptr, err := e.writeNarrow(s)
	if err != nil {
		return 0, err
	}
	defer e.RawMem().Free(ptr)
	return e.refResult(fnLongFromString, errors.PhaseConvert, "int", uint64(ptr), uint64(uint32(base)))
}

func (e *Engine) FloatFromFloat64(v float64) (pyruntime.Ref, error) {
	return e.refResult(fnFloatFromF64, errors.PhaseConvert, "float", f64arg(v))
}

func (e *Engine) FloatFromStr(s pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnFloatFromStr, errors.PhaseConvert, "float", uint64(s))
}

func (e *Engine) TupleNew(n int) (pyruntime.Ref, error) {
	return e.refResult(fnTupleNew, errors.PhaseAlloc, "tuple", uint64(int64(n)))
}

func (e *Engine) ListNew(n int) (pyruntime.Ref, error) {
	return e.refResult(fnListNew, errors.PhaseAlloc, "list", uint64(int64(n)))
}

func (e *Engine) DictNew() (pyruntime.Ref, error) {
	return e.refResult(fnDictNew, errors.PhaseAlloc, "dict")
}

// Scalar extraction.

func (e *Engine) StrUTF8(ref pyruntime.Ref) (string, error) {
	v, err := e.call1(fnStrUTF8, uint64(ref))
	if err != nil {
		return "", err
	}
	if v == 0 {
		return "", e.pendingError(errors.PhaseConvert, "string")
	}
	return codec.ReadNarrow(e.Memory(), pyruntime.Ptr(v))
}

func (e *Engine) StrWide(ref pyruntime.Ref) (pyruntime.Ptr, uint32, error) {
	v, err := e.call1(fnStrWide, uint64(ref))
	if err != nil {
		return 0, 0, err
	}
	if v == 0 {
		return 0, 0, e.pendingError(errors.PhaseConvert, "wide string")
	}
	ptr := pyruntime.Ptr(v)
	text, err := codec.ReadWide(e.Memory(), ptr)
	if err != nil {
		e.Mem().Free(ptr)
		return 0, 0, err
	}
	return ptr, uint32((len(text) + 1) * 4), nil
}

func (e *Engine) IntAsInt64(ref pyruntime.Ref) (int64, error) {
	v, err := e.call1(fnLongAsI64, uint64(ref))
	if err != nil {
		return 0, err
	}
	if int64(v) == -1 && e.errOccurred() {
		return 0, e.pendingError(errors.PhaseConvert, "int64")
	}
	return int64(v), nil
}

func (e *Engine) IntAsUint64(ref pyruntime.Ref) (uint64, error) {
	v, err := e.call1(fnLongAsU64, uint64(ref))
	if err != nil {
		return 0, err
	}
	if v == math.MaxUint64 && e.errOccurred() {
		return 0, e.pendingError(errors.PhaseConvert, "uint64")
	}
	return v, nil
}

func (e *Engine) FloatAsFloat64(ref pyruntime.Ref) (float64, error) {
	v, err := e.call1(fnFloatAsF64, uint64(ref))
	if err != nil {
		return 0, err
	}
	f := math.Float64frombits(v)
	if f == -1.0 && e.errOccurred() {
		return 0, e.pendingError(errors.PhaseConvert, "float64")
	}
	return f, nil
}

// Sequence protocol.

func (e *Engine) size(name string, ref pyruntime.Ref, op string) (int, error) {
	v, err := e.call1(name, uint64(ref))
	if err != nil {
		return 0, err
	}
	n := int64(v)
	if n < 0 {
		return 0, e.pendingError(errors.PhaseRuntime, op)
	}
	return int(n), nil
}

func (e *Engine) TupleSize(t pyruntime.Ref) (int, error) {
	return e.size(fnTupleSize, t, "tuple size")
}

func (e *Engine) TupleGet(t pyruntime.Ref, i int) (pyruntime.Ref, error) {
	return e.refResult(fnTupleGet, errors.PhaseLookup, "tuple item", uint64(t), uint64(int64(i)))
}

func (e *Engine) TupleSet(t pyruntime.Ref, i int, v pyruntime.Ref) error {
	return e.statusResult(fnTupleSet, errors.PhaseLookup, "tuple item", uint64(t), uint64(int64(i)), uint64(v))
}

func (e *Engine) ListSize(l pyruntime.Ref) (int, error) {
	return e.size(fnListSize, l, "list size")
}

func (e *Engine) ListGet(l pyruntime.Ref, i int) (pyruntime.Ref, error) {
	return e.refResult(fnListGet, errors.PhaseLookup, "list item", uint64(l), uint64(int64(i)))
}

func (e *Engine) ListSet(l pyruntime.Ref, i int, v pyruntime.Ref) error {
	return e.statusResult(fnListSet, errors.PhaseLookup, "list item", uint64(l), uint64(int64(i)), uint64(v))
}

func (e *Engine) ListAppend(l, v pyruntime.Ref) error {
	return e.statusResult(fnListAppend, errors.PhaseRuntime, "list append", uint64(l), uint64(v))
}

func (e *Engine) ListInsert(l pyruntime.Ref, i int, v pyruntime.Ref) error {
	return e.statusResult(fnListInsert, errors.PhaseRuntime, "list insert", uint64(l), uint64(int64(i)), uint64(v))
}

func (e *Engine) ListSlice(l pyruntime.Ref, lo, hi int) (pyruntime.Ref, error) {
	return e.refResult(fnListSlice, errors.PhaseRuntime, "list slice", uint64(l), uint64(int64(lo)), uint64(int64(hi)))
}

func (e *Engine) ListSort(l pyruntime.Ref) error {
	return e.statusResult(fnListSort, errors.PhaseRuntime, "list sort", uint64(l))
}

func (e *Engine) ListReverse(l pyruntime.Ref) error {
	return e.statusResult(fnListReverse, errors.PhaseRuntime, "list reverse", uint64(l))
}

func (e *Engine) ListAsTuple(l pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnListAsTuple, errors.PhaseRuntime, "list to tuple", uint64(l))
}

// Mapping protocol.

func (e *Engine) DictSize(d pyruntime.Ref) (int, error) {
	return e.size(fnDictSize, d, "dict size")
}

func (e *Engine) DictGet(d, key pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictGet, errors.PhaseLookup, "dict key", uint64(d), uint64(key))
}

func (e *Engine) DictSet(d, key, v pyruntime.Ref) error {
	return e.statusResult(fnDictSet, errors.PhaseRuntime, "dict set", uint64(d), uint64(key), uint64(v))
}

func (e *Engine) DictDel(d, key pyruntime.Ref) error {
	return e.statusResult(fnDictDel, errors.PhaseLookup, "dict key", uint64(d), uint64(key))
}

func (e *Engine) DictContains(d, key pyruntime.Ref) (bool, error) {
	v, err := e.call1(fnDictContains, uint64(d), uint64(key))
	if err != nil {
		return false, err
	}
	switch int32(v) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, e.pendingError(errors.PhaseRuntime, "dict membership")
}

func (e *Engine) DictClear(d pyruntime.Ref) error {
	return e.statusResult(fnDictClear, errors.PhaseRuntime, "dict clear", uint64(d))
}

func (e *Engine) DictCopy(d pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictCopy, errors.PhaseRuntime, "dict copy", uint64(d))
}

func (e *Engine) DictItems(d pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictItems, errors.PhaseRuntime, "dict items", uint64(d))
}

func (e *Engine) DictKeys(d pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictKeys, errors.PhaseRuntime, "dict keys", uint64(d))
}

func (e *Engine) DictValues(d pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictValues, errors.PhaseRuntime, "dict values", uint64(d))
}

func (e *Engine) DictSetDefault(d, key, def pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnDictSetDefault, errors.PhaseRuntime, "dict setdefault", uint64(d), uint64(key), uint64(def))
}

// Call protocol.

func (e *Engine) CallNoArgs(fn pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnCallNoArgs, errors.PhaseCall, "call", uint64(fn))
}

func (e *Engine) CallOneArg(fn, arg pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnCallOneArg, errors.PhaseCall, "call", uint64(fn), uint64(arg))
}

func (e *Engine) CallObject(fn, args pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnCallObject, errors.PhaseCall, "call", uint64(fn), uint64(args))
}

func (e *Engine) Call(fn, args, kwargs pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnCall, errors.PhaseCall, "call", uint64(fn), uint64(args), uint64(kwargs))
}

// Modules.

func (e *Engine) Import(name pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnImport, errors.PhaseRuntime, "import", uint64(name))
}

func (e *Engine) ModuleFilename(m pyruntime.Ref) (pyruntime.Ref, error) {
	return e.refResult(fnModuleFilename, errors.PhaseLookup, "__file__", uint64(m))
}
